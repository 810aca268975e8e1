package domain

import (
	"github.com/google/uuid"
)

// SoundEventPrediction is a machine detection of a sound event with an
// overall confidence and optional per-tag scores.
type SoundEventPrediction struct {
	UUID       uuid.UUID      `json:"uuid"`
	SoundEvent *SoundEvent    `json:"sound_event"`
	Score      float64        `json:"score"`
	Tags       []PredictedTag `json:"tags,omitempty"`
}

// SequencePrediction is a machine detection of a sequence of sound events.
type SequencePrediction struct {
	UUID     uuid.UUID      `json:"uuid"`
	Sequence *Sequence      `json:"sequence"`
	Score    float64        `json:"score"`
	Tags     []PredictedTag `json:"tags,omitempty"`
}

// ClipPredictions aggregates every machine output produced for one clip.
type ClipPredictions struct {
	UUID        uuid.UUID               `json:"uuid"`
	Clip        *Clip                   `json:"clip"`
	SoundEvents []*SoundEventPrediction `json:"sound_events,omitempty"`
	Sequences   []*SequencePrediction   `json:"sequences,omitempty"`
	Tags        []PredictedTag          `json:"tags,omitempty"`
	Features    []Feature               `json:"features,omitempty"`
}
