package aoef

import (
	"encoding/json"
	"fmt"

	"soundcore/pkg/domain"
)

// ScoredTagRecord is a tag reference with a confidence score, serialized as
// a two-element array [id, score].
type ScoredTagRecord struct {
	TagID int
	Score float64
}

func (s ScoredTagRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{s.TagID, s.Score})
}

func (s *ScoredTagRecord) UnmarshalJSON(b []byte) error {
	var arr []float64
	if err := json.Unmarshal(b, &arr); err != nil {
		return err
	}
	if len(arr) != 2 {
		return fmt.Errorf("scored tag must be a [id, score] pair, got %d elements", len(arr))
	}
	s.TagID = int(arr[0])
	s.Score = arr[1]
	return nil
}

func scoredTagRecords(tags *TagAdapter, predicted []domain.PredictedTag) ([]ScoredTagRecord, error) {
	if len(predicted) == 0 {
		return nil, nil
	}
	recs := make([]ScoredTagRecord, 0, len(predicted))
	for _, pt := range predicted {
		rec, err := tags.ToRecord(pt.Tag)
		if err != nil {
			return nil, err
		}
		recs = append(recs, ScoredTagRecord{TagID: rec.ID, Score: pt.Score})
	}
	return recs, nil
}

func scoredTagDomains(tags *TagAdapter, referencing string, recs []ScoredTagRecord) ([]domain.PredictedTag, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	out := make([]domain.PredictedTag, 0, len(recs))
	for _, rec := range recs {
		t, ok := tags.FromID(rec.TagID)
		if !ok {
			return nil, missingRef(referencing, "tag", rec.TagID)
		}
		out = append(out, domain.PredictedTag{Tag: t, Score: rec.Score})
	}
	return out, nil
}
