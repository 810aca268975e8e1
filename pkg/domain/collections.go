package domain

import (
	"time"

	"github.com/google/uuid"
)

// Collection is the closed set of top-level objects the exchange format can
// carry. The marker method keeps the set closed to this package.
type Collection interface {
	collection()
}

// RecordingSet is a bare group of recordings.
type RecordingSet struct {
	UUID       uuid.UUID    `json:"uuid"`
	Recordings []*Recording `json:"recordings"`
	CreatedOn  time.Time    `json:"created_on"`
}

// Dataset is a recording set with a name and provenance description. Every
// Dataset is structurally a RecordingSet.
type Dataset struct {
	RecordingSet
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// AnnotationSet is a bare group of clip annotations.
type AnnotationSet struct {
	UUID            uuid.UUID          `json:"uuid"`
	ClipAnnotations []*ClipAnnotations `json:"clip_annotations"`
	CreatedOn       time.Time          `json:"created_on"`
}

// AnnotationProject is an annotation set plus the campaign that produced it:
// instructions, the tag vocabulary, and per-clip task tracking.
type AnnotationProject struct {
	AnnotationSet
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Instructions   string            `json:"instructions,omitempty"`
	AnnotationTags []Tag             `json:"annotation_tags,omitempty"`
	Tasks          []*AnnotationTask `json:"tasks,omitempty"`
}

// EvaluationSet is an annotation set curated as ground truth for model
// evaluation, restricted to the tags under evaluation.
type EvaluationSet struct {
	AnnotationSet
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	EvaluationTags []Tag  `json:"evaluation_tags,omitempty"`
}

// PredictionSet is a bare group of clip predictions.
type PredictionSet struct {
	UUID            uuid.UUID          `json:"uuid"`
	ClipPredictions []*ClipPredictions `json:"clip_predictions"`
	CreatedOn       time.Time          `json:"created_on"`
}

// ModelRun is a prediction set attributed to a named model version.
type ModelRun struct {
	PredictionSet
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

func (*RecordingSet) collection()      {}
func (*Dataset) collection()           {}
func (*AnnotationSet) collection()     {}
func (*AnnotationProject) collection() {}
func (*EvaluationSet) collection()     {}
func (*PredictionSet) collection()     {}
func (*ModelRun) collection()          {}
func (*Evaluation) collection()        {}
