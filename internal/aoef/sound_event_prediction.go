package aoef

import (
	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// SoundEventPredictionRecord is the flat form of a machine detection.
type SoundEventPredictionRecord struct {
	UUID       uuid.UUID         `json:"uuid"`
	SoundEvent uuid.UUID         `json:"sound_event"`
	Score      float64           `json:"score"`
	Tags       []ScoredTagRecord `json:"tags,omitempty"`
}

// SoundEventPredictionAdapter deduplicates sound event predictions by uuid.
type SoundEventPredictionAdapter struct {
	*store[*domain.SoundEventPrediction, SoundEventPredictionRecord, uuid.UUID, uuid.UUID]
}

func NewSoundEventPredictionAdapter(tags *TagAdapter, soundEvents *SoundEventAdapter) *SoundEventPredictionAdapter {
	return &SoundEventPredictionAdapter{newStore(storeConfig[*domain.SoundEventPrediction, SoundEventPredictionRecord, uuid.UUID, uuid.UUID]{
		Key:      func(p *domain.SoundEventPrediction) uuid.UUID { return p.UUID },
		RecordID: func(rec SoundEventPredictionRecord) uuid.UUID { return rec.UUID },
		NewID:    func(p *domain.SoundEventPrediction, _ int) uuid.UUID { return p.UUID },
		Assemble: func(pred *domain.SoundEventPrediction, _ uuid.UUID) (SoundEventPredictionRecord, error) {
			event, err := soundEvents.ToRecord(pred.SoundEvent)
			if err != nil {
				return SoundEventPredictionRecord{}, err
			}
			scored, err := scoredTagRecords(tags, pred.Tags)
			if err != nil {
				return SoundEventPredictionRecord{}, err
			}
			return SoundEventPredictionRecord{
				UUID:       pred.UUID,
				SoundEvent: event.UUID,
				Score:      pred.Score,
				Tags:       scored,
			}, nil
		},
		Restore: func(rec SoundEventPredictionRecord) (*domain.SoundEventPrediction, error) {
			event, ok := soundEvents.FromID(rec.SoundEvent)
			if !ok {
				return nil, missingRef("sound event prediction", "sound event", rec.SoundEvent)
			}
			scored, err := scoredTagDomains(tags, "sound event prediction", rec.Tags)
			if err != nil {
				return nil, err
			}
			return &domain.SoundEventPrediction{
				UUID:       rec.UUID,
				SoundEvent: event,
				Score:      rec.Score,
				Tags:       scored,
			}, nil
		},
	})}
}
