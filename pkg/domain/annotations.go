package domain

import (
	"time"

	"github.com/google/uuid"
)

// AnnotationState tracks the workflow position of an annotation task.
type AnnotationState string

// Canonical annotation task states.
const (
	StateAssigned  AnnotationState = "assigned"
	StateCompleted AnnotationState = "completed"
	StateVerified  AnnotationState = "verified"
	StateRejected  AnnotationState = "rejected"
)

// SoundEventAnnotation is a human label on a single sound event.
type SoundEventAnnotation struct {
	UUID       uuid.UUID   `json:"uuid"`
	SoundEvent *SoundEvent `json:"sound_event"`
	Tags       []Tag       `json:"tags,omitempty"`
	Notes      []Note      `json:"notes,omitempty"`
	CreatedBy  *User       `json:"created_by,omitempty"`
	CreatedOn  time.Time   `json:"created_on"`
}

// SequenceAnnotation is a human label on a sequence of sound events.
type SequenceAnnotation struct {
	UUID      uuid.UUID `json:"uuid"`
	Sequence  *Sequence `json:"sequence"`
	Tags      []Tag     `json:"tags,omitempty"`
	Notes     []Note    `json:"notes,omitempty"`
	CreatedBy *User     `json:"created_by,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}

// ClipAnnotations aggregates every human label produced for one clip.
type ClipAnnotations struct {
	UUID                uuid.UUID               `json:"uuid"`
	Clip                *Clip                   `json:"clip"`
	Tags                []Tag                   `json:"tags,omitempty"`
	Annotations         []*SoundEventAnnotation `json:"annotations,omitempty"`
	SequenceAnnotations []*SequenceAnnotation   `json:"sequence_annotations,omitempty"`
	Notes               []Note                  `json:"notes,omitempty"`
	CreatedOn           time.Time               `json:"created_on"`
}

// StatusBadge records one state transition of an annotation task and who
// caused it.
type StatusBadge struct {
	State     AnnotationState `json:"state"`
	Owner     *User           `json:"owner,omitempty"`
	CreatedOn time.Time       `json:"created_on"`
}

// AnnotationTask is a unit of annotation work over a clip.
type AnnotationTask struct {
	UUID         uuid.UUID     `json:"uuid"`
	Clip         *Clip         `json:"clip"`
	StatusBadges []StatusBadge `json:"status_badges,omitempty"`
	CreatedOn    time.Time     `json:"created_on"`
}
