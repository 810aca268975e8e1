package aoef

import (
	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// MatchRecord is the flat form of a prediction-to-annotation pairing. Either
// side may be absent for false positives and misses.
type MatchRecord struct {
	UUID     uuid.UUID          `json:"uuid"`
	Source   *uuid.UUID         `json:"source,omitempty"`
	Target   *uuid.UUID         `json:"target,omitempty"`
	Affinity float64            `json:"affinity"`
	Score    *float64           `json:"score,omitempty"`
	Metrics  map[string]float64 `json:"metrics,omitempty"`
}

// matchKey identifies a match by its endpoint pair. The boolean flags keep
// an absent endpoint distinct from the zero uuid.
type matchKey struct {
	hasSource bool
	source    uuid.UUID
	hasTarget bool
	target    uuid.UUID
}

// MatchAdapter deduplicates matches by their (source, target) pair.
type MatchAdapter struct {
	*store[*domain.Match, MatchRecord, matchKey, uuid.UUID]
}

func NewMatchAdapter(soundEventPredictions *SoundEventPredictionAdapter, soundEventAnnotations *SoundEventAnnotationAdapter) *MatchAdapter {
	return &MatchAdapter{newStore(storeConfig[*domain.Match, MatchRecord, matchKey, uuid.UUID]{
		Key: func(m *domain.Match) matchKey {
			var k matchKey
			if m.Source != nil {
				k.hasSource = true
				k.source = m.Source.UUID
			}
			if m.Target != nil {
				k.hasTarget = true
				k.target = m.Target.UUID
			}
			return k
		},
		RecordID: func(rec MatchRecord) uuid.UUID { return rec.UUID },
		NewID:    func(m *domain.Match, _ int) uuid.UUID { return m.UUID },
		Assemble: func(m *domain.Match, _ uuid.UUID) (MatchRecord, error) {
			var source, target *uuid.UUID
			if m.Source != nil {
				rec, err := soundEventPredictions.ToRecord(m.Source)
				if err != nil {
					return MatchRecord{}, err
				}
				id := rec.UUID
				source = &id
			}
			if m.Target != nil {
				rec, err := soundEventAnnotations.ToRecord(m.Target)
				if err != nil {
					return MatchRecord{}, err
				}
				id := rec.UUID
				target = &id
			}
			return MatchRecord{
				UUID:     m.UUID,
				Source:   source,
				Target:   target,
				Affinity: m.Affinity,
				Score:    m.Score,
				Metrics:  featureMap(m.Metrics),
			}, nil
		},
		Restore: func(rec MatchRecord) (*domain.Match, error) {
			m := &domain.Match{
				UUID:     rec.UUID,
				Affinity: rec.Affinity,
				Score:    rec.Score,
				Metrics:  featureList(rec.Metrics),
			}
			if rec.Source != nil {
				pred, ok := soundEventPredictions.FromID(*rec.Source)
				if !ok {
					return nil, missingRef("match", "sound event prediction", *rec.Source)
				}
				m.Source = pred
			}
			if rec.Target != nil {
				ann, ok := soundEventAnnotations.FromID(*rec.Target)
				if !ok {
					return nil, missingRef("match", "sound event annotation", *rec.Target)
				}
				m.Target = ann
			}
			return m, nil
		},
	})}
}
