package aoef

import (
	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// ClipPredictionsRecord aggregates the machine outputs of one clip.
type ClipPredictionsRecord struct {
	UUID        uuid.UUID          `json:"uuid"`
	Clip        uuid.UUID          `json:"clip"`
	SoundEvents []uuid.UUID        `json:"sound_events,omitempty"`
	Sequences   []uuid.UUID        `json:"sequences,omitempty"`
	Tags        []ScoredTagRecord  `json:"tags,omitempty"`
	Features    map[string]float64 `json:"features,omitempty"`
}

// ClipPredictionsAdapter deduplicates per-clip prediction aggregates by uuid.
type ClipPredictionsAdapter struct {
	*store[*domain.ClipPredictions, ClipPredictionsRecord, uuid.UUID, uuid.UUID]
}

func NewClipPredictionsAdapter(
	tags *TagAdapter,
	clips *ClipAdapter,
	soundEventPredictions *SoundEventPredictionAdapter,
	sequencePredictions *SequencePredictionAdapter,
) *ClipPredictionsAdapter {
	return &ClipPredictionsAdapter{newStore(storeConfig[*domain.ClipPredictions, ClipPredictionsRecord, uuid.UUID, uuid.UUID]{
		Key:      func(c *domain.ClipPredictions) uuid.UUID { return c.UUID },
		RecordID: func(rec ClipPredictionsRecord) uuid.UUID { return rec.UUID },
		NewID:    func(c *domain.ClipPredictions, _ int) uuid.UUID { return c.UUID },
		Assemble: func(cp *domain.ClipPredictions, _ uuid.UUID) (ClipPredictionsRecord, error) {
			clip, err := clips.ToRecord(cp.Clip)
			if err != nil {
				return ClipPredictionsRecord{}, err
			}
			var events []uuid.UUID
			for _, pred := range cp.SoundEvents {
				rec, err := soundEventPredictions.ToRecord(pred)
				if err != nil {
					return ClipPredictionsRecord{}, err
				}
				events = append(events, rec.UUID)
			}
			var seqs []uuid.UUID
			for _, pred := range cp.Sequences {
				rec, err := sequencePredictions.ToRecord(pred)
				if err != nil {
					return ClipPredictionsRecord{}, err
				}
				seqs = append(seqs, rec.UUID)
			}
			scored, err := scoredTagRecords(tags, cp.Tags)
			if err != nil {
				return ClipPredictionsRecord{}, err
			}
			return ClipPredictionsRecord{
				UUID:        cp.UUID,
				Clip:        clip.UUID,
				SoundEvents: events,
				Sequences:   seqs,
				Tags:        scored,
				Features:    featureMap(cp.Features),
			}, nil
		},
		Restore: func(rec ClipPredictionsRecord) (*domain.ClipPredictions, error) {
			clip, ok := clips.FromID(rec.Clip)
			if !ok {
				return nil, missingRef("clip predictions", "clip", rec.Clip)
			}
			var events []*domain.SoundEventPrediction
			for _, id := range rec.SoundEvents {
				pred, ok := soundEventPredictions.FromID(id)
				if !ok {
					return nil, missingRef("clip predictions", "sound event prediction", id)
				}
				events = append(events, pred)
			}
			var seqs []*domain.SequencePrediction
			for _, id := range rec.Sequences {
				pred, ok := sequencePredictions.FromID(id)
				if !ok {
					return nil, missingRef("clip predictions", "sequence prediction", id)
				}
				seqs = append(seqs, pred)
			}
			scored, err := scoredTagDomains(tags, "clip predictions", rec.Tags)
			if err != nil {
				return nil, err
			}
			return &domain.ClipPredictions{
				UUID:        rec.UUID,
				Clip:        clip,
				SoundEvents: events,
				Sequences:   seqs,
				Tags:        scored,
				Features:    featureList(rec.Features),
			}, nil
		},
	})}
}
