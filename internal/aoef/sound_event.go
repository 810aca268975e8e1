package aoef

import (
	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// SoundEventRecord is the flat form of a sound event. The geometry is
// carried verbatim; the engine never interprets coordinates.
type SoundEventRecord struct {
	UUID     uuid.UUID          `json:"uuid"`
	Geometry *domain.Geometry   `json:"geometry,omitempty"`
	Features map[string]float64 `json:"features,omitempty"`
}

// SoundEventAdapter deduplicates sound events by uuid.
type SoundEventAdapter struct {
	*store[*domain.SoundEvent, SoundEventRecord, uuid.UUID, uuid.UUID]
}

func NewSoundEventAdapter() *SoundEventAdapter {
	return &SoundEventAdapter{newStore(storeConfig[*domain.SoundEvent, SoundEventRecord, uuid.UUID, uuid.UUID]{
		Key:      func(s *domain.SoundEvent) uuid.UUID { return s.UUID },
		RecordID: func(rec SoundEventRecord) uuid.UUID { return rec.UUID },
		NewID:    func(s *domain.SoundEvent, _ int) uuid.UUID { return s.UUID },
		Assemble: func(s *domain.SoundEvent, _ uuid.UUID) (SoundEventRecord, error) {
			return SoundEventRecord{
				UUID:     s.UUID,
				Geometry: s.Geometry,
				Features: featureMap(s.Features),
			}, nil
		},
		Restore: func(rec SoundEventRecord) (*domain.SoundEvent, error) {
			return &domain.SoundEvent{
				UUID:     rec.UUID,
				Geometry: rec.Geometry,
				Features: featureList(rec.Features),
			}, nil
		},
	})}
}
