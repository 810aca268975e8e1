package domain

import (
	"time"

	"github.com/google/uuid"
)

// Match pairs a predicted sound event with the annotation it was matched
// against. Either side may be absent: a prediction with no target is a false
// positive, an annotation with no source a miss. Identity is the
// (source uuid, target uuid) pair.
type Match struct {
	UUID     uuid.UUID             `json:"uuid"`
	Source   *SoundEventPrediction `json:"source,omitempty"`
	Target   *SoundEventAnnotation `json:"target,omitempty"`
	Affinity float64               `json:"affinity"`
	Score    *float64              `json:"score,omitempty"`
	Metrics  []Feature             `json:"metrics,omitempty"`
}

// ClipEvaluation compares the annotations and predictions of one clip.
type ClipEvaluation struct {
	UUID        uuid.UUID        `json:"uuid"`
	Annotations *ClipAnnotations `json:"annotations"`
	Predictions *ClipPredictions `json:"predictions"`
	Matches     []*Match         `json:"matches,omitempty"`
	Metrics     []Feature        `json:"metrics,omitempty"`
	Score       *float64         `json:"score,omitempty"`
}

// Evaluation is the outcome of scoring a model run against an evaluation
// set for a named task.
type Evaluation struct {
	UUID            uuid.UUID         `json:"uuid"`
	EvaluationTask  string            `json:"evaluation_task"`
	ClipEvaluations []*ClipEvaluation `json:"clip_evaluations,omitempty"`
	Metrics         []Feature         `json:"metrics,omitempty"`
	Score           *float64          `json:"score,omitempty"`
	CreatedOn       time.Time         `json:"created_on"`
}
