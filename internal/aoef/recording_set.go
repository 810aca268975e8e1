package aoef

import (
	"time"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// RecordingSetRecord is the document payload of a bare recording set. The
// tag and user tables hold every entity referenced anywhere in the payload.
type RecordingSetRecord struct {
	UUID           uuid.UUID         `json:"uuid"`
	CollectionType CollectionKind    `json:"collection_type"`
	Recordings     []RecordingRecord `json:"recordings,omitempty"`
	Tags           []TagRecord       `json:"tags,omitempty"`
	Users          []UserRecord      `json:"users,omitempty"`
	CreatedOn      time.Time         `json:"created_on"`
}

// RecordingSetAdapter converts recording sets. It is also the base for the
// dataset adapter.
type RecordingSetAdapter struct {
	tree *adapterTree
}

func NewRecordingSetAdapter(tree *adapterTree) *RecordingSetAdapter {
	return &RecordingSetAdapter{tree: tree}
}

func (a *RecordingSetAdapter) Export(set *domain.RecordingSet) (*RecordingSetRecord, error) {
	var recordings []RecordingRecord
	for _, r := range set.Recordings {
		rec, err := a.tree.recordings.ToRecord(r)
		if err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}
	return &RecordingSetRecord{
		UUID:           set.UUID,
		CollectionType: KindRecordingSet,
		Recordings:     recordings,
		Tags:           a.tree.tags.Values(),
		Users:          a.tree.users.Values(),
		CreatedOn:      set.CreatedOn,
	}, nil
}

func (a *RecordingSetAdapter) Import(rec *RecordingSetRecord) (*domain.RecordingSet, error) {
	for _, u := range rec.Users {
		if _, err := a.tree.users.ToDomain(u); err != nil {
			return nil, err
		}
	}
	for _, t := range rec.Tags {
		if _, err := a.tree.tags.ToDomain(t); err != nil {
			return nil, err
		}
	}
	var recordings []*domain.Recording
	for _, r := range rec.Recordings {
		recording, err := a.tree.recordings.ToDomain(r)
		if err != nil {
			return nil, err
		}
		recordings = append(recordings, recording)
	}
	return &domain.RecordingSet{
		UUID:       rec.UUID,
		Recordings: recordings,
		CreatedOn:  rec.CreatedOn,
	}, nil
}
