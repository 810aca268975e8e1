package aoef

import (
	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// SequencePredictionRecord is the flat form of a predicted sequence.
type SequencePredictionRecord struct {
	UUID     uuid.UUID         `json:"uuid"`
	Sequence uuid.UUID         `json:"sequence"`
	Score    float64           `json:"score"`
	Tags     []ScoredTagRecord `json:"tags,omitempty"`
}

// SequencePredictionAdapter deduplicates sequence predictions by uuid.
type SequencePredictionAdapter struct {
	*store[*domain.SequencePrediction, SequencePredictionRecord, uuid.UUID, uuid.UUID]
}

func NewSequencePredictionAdapter(tags *TagAdapter, sequences *SequenceAdapter) *SequencePredictionAdapter {
	return &SequencePredictionAdapter{newStore(storeConfig[*domain.SequencePrediction, SequencePredictionRecord, uuid.UUID, uuid.UUID]{
		Key:      func(p *domain.SequencePrediction) uuid.UUID { return p.UUID },
		RecordID: func(rec SequencePredictionRecord) uuid.UUID { return rec.UUID },
		NewID:    func(p *domain.SequencePrediction, _ int) uuid.UUID { return p.UUID },
		Assemble: func(pred *domain.SequencePrediction, _ uuid.UUID) (SequencePredictionRecord, error) {
			seq, err := sequences.ToRecord(pred.Sequence)
			if err != nil {
				return SequencePredictionRecord{}, err
			}
			scored, err := scoredTagRecords(tags, pred.Tags)
			if err != nil {
				return SequencePredictionRecord{}, err
			}
			return SequencePredictionRecord{
				UUID:     pred.UUID,
				Sequence: seq.UUID,
				Score:    pred.Score,
				Tags:     scored,
			}, nil
		},
		Restore: func(rec SequencePredictionRecord) (*domain.SequencePrediction, error) {
			seq, ok := sequences.FromID(rec.Sequence)
			if !ok {
				return nil, missingRef("sequence prediction", "sequence", rec.Sequence)
			}
			scored, err := scoredTagDomains(tags, "sequence prediction", rec.Tags)
			if err != nil {
				return nil, err
			}
			return &domain.SequencePrediction{
				UUID:     rec.UUID,
				Sequence: seq,
				Score:    rec.Score,
				Tags:     scored,
			}, nil
		},
	})}
}
