package aoef

import "soundcore/pkg/domain"

// TagRecord is the flat form of a tag. Tags are referenced by their integer
// id everywhere else in the document.
type TagRecord struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TagAdapter deduplicates tags by (key, value) and hands out dense integer
// ids in first-seen order.
type TagAdapter struct {
	*store[domain.Tag, TagRecord, domain.Tag, int]
}

func NewTagAdapter() *TagAdapter {
	return &TagAdapter{newStore(storeConfig[domain.Tag, TagRecord, domain.Tag, int]{
		Key:      func(t domain.Tag) domain.Tag { return t },
		RecordID: func(r TagRecord) int { return r.ID },
		NewID:    func(_ domain.Tag, n int) int { return n },
		Assemble: func(t domain.Tag, id int) (TagRecord, error) {
			return TagRecord{ID: id, Key: t.Key, Value: t.Value}, nil
		},
		Restore: func(r TagRecord) (domain.Tag, error) {
			return domain.Tag{Key: r.Key, Value: r.Value}, nil
		},
	})}
}

func (a *TagAdapter) refs(tags []domain.Tag) ([]int, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	ids := make([]int, 0, len(tags))
	for _, t := range tags {
		rec, err := a.ToRecord(t)
		if err != nil {
			return nil, err
		}
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

func (a *TagAdapter) resolve(referencing string, ids []int) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tags := make([]domain.Tag, 0, len(ids))
	for _, id := range ids {
		t, ok := a.FromID(id)
		if !ok {
			return nil, missingRef(referencing, "tag", id)
		}
		tags = append(tags, t)
	}
	return tags, nil
}
