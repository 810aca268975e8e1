package aoef

import (
	"time"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// EvaluationRecord is the document payload of a scoring outcome. It carries
// both the annotation and the prediction side of the comparison.
type EvaluationRecord struct {
	UUID                  uuid.UUID                    `json:"uuid"`
	CollectionType        CollectionKind               `json:"collection_type"`
	CreatedOn             time.Time                    `json:"created_on"`
	EvaluationTask        string                       `json:"evaluation_task"`
	Users                 []UserRecord                 `json:"users,omitempty"`
	Tags                  []TagRecord                  `json:"tags,omitempty"`
	Recordings            []RecordingRecord            `json:"recordings,omitempty"`
	Clips                 []ClipRecord                 `json:"clips,omitempty"`
	SoundEvents           []SoundEventRecord           `json:"sound_events,omitempty"`
	Sequences             []SequenceRecord             `json:"sequences,omitempty"`
	SoundEventAnnotations []SoundEventAnnotationRecord `json:"sound_event_annotations,omitempty"`
	SequenceAnnotations   []SequenceAnnotationRecord   `json:"sequence_annotations,omitempty"`
	ClipAnnotations       []ClipAnnotationsRecord      `json:"clip_annotations,omitempty"`
	SoundEventPredictions []SoundEventPredictionRecord `json:"sound_event_predictions,omitempty"`
	SequencePredictions   []SequencePredictionRecord   `json:"sequence_predictions,omitempty"`
	ClipPredictions       []ClipPredictionsRecord      `json:"clip_predictions,omitempty"`
	ClipEvaluations       []ClipEvaluationRecord       `json:"clip_evaluations,omitempty"`
	Matches               []MatchRecord                `json:"matches,omitempty"`
	Metrics               map[string]float64           `json:"metrics,omitempty"`
	Score                 *float64                     `json:"score,omitempty"`
}

// EvaluationAdapter converts evaluations.
type EvaluationAdapter struct {
	tree *adapterTree
}

func NewEvaluationAdapter(tree *adapterTree) *EvaluationAdapter {
	return &EvaluationAdapter{tree: tree}
}

func (a *EvaluationAdapter) Export(ev *domain.Evaluation) (*EvaluationRecord, error) {
	for _, ce := range ev.ClipEvaluations {
		if _, err := a.tree.clipEvaluations.ToRecord(ce); err != nil {
			return nil, err
		}
	}
	return &EvaluationRecord{
		UUID:                  ev.UUID,
		CollectionType:        KindEvaluation,
		CreatedOn:             ev.CreatedOn,
		EvaluationTask:        ev.EvaluationTask,
		Users:                 a.tree.users.Values(),
		Tags:                  a.tree.tags.Values(),
		Recordings:            a.tree.recordings.Values(),
		Clips:                 a.tree.clips.Values(),
		SoundEvents:           a.tree.soundEvents.Values(),
		Sequences:             a.tree.sequences.Values(),
		SoundEventAnnotations: a.tree.soundEventAnnotations.Values(),
		SequenceAnnotations:   a.tree.sequenceAnnotations.Values(),
		ClipAnnotations:       a.tree.clipAnnotations.Values(),
		SoundEventPredictions: a.tree.soundEventPredictions.Values(),
		SequencePredictions:   a.tree.sequencePredictions.Values(),
		ClipPredictions:       a.tree.clipPredictions.Values(),
		ClipEvaluations:       a.tree.clipEvaluations.Values(),
		Matches:               a.tree.matches.Values(),
		Metrics:               featureMap(ev.Metrics),
		Score:                 ev.Score,
	}, nil
}

func (a *EvaluationAdapter) Import(rec *EvaluationRecord) (*domain.Evaluation, error) {
	for _, u := range rec.Users {
		if _, err := a.tree.users.ToDomain(u); err != nil {
			return nil, err
		}
	}
	for _, t := range rec.Tags {
		if _, err := a.tree.tags.ToDomain(t); err != nil {
			return nil, err
		}
	}
	for _, r := range rec.Recordings {
		if _, err := a.tree.recordings.ToDomain(r); err != nil {
			return nil, err
		}
	}
	for _, ev := range rec.SoundEvents {
		if _, err := a.tree.soundEvents.ToDomain(ev); err != nil {
			return nil, err
		}
	}
	if err := a.tree.sequences.HydrateAll(rec.Sequences); err != nil {
		return nil, err
	}
	for _, c := range rec.Clips {
		if _, err := a.tree.clips.ToDomain(c); err != nil {
			return nil, err
		}
	}
	for _, ann := range rec.SoundEventAnnotations {
		if _, err := a.tree.soundEventAnnotations.ToDomain(ann); err != nil {
			return nil, err
		}
	}
	for _, ann := range rec.SequenceAnnotations {
		if _, err := a.tree.sequenceAnnotations.ToDomain(ann); err != nil {
			return nil, err
		}
	}
	for _, ca := range rec.ClipAnnotations {
		if _, err := a.tree.clipAnnotations.ToDomain(ca); err != nil {
			return nil, err
		}
	}
	for _, pred := range rec.SoundEventPredictions {
		if _, err := a.tree.soundEventPredictions.ToDomain(pred); err != nil {
			return nil, err
		}
	}
	for _, pred := range rec.SequencePredictions {
		if _, err := a.tree.sequencePredictions.ToDomain(pred); err != nil {
			return nil, err
		}
	}
	for _, cp := range rec.ClipPredictions {
		if _, err := a.tree.clipPredictions.ToDomain(cp); err != nil {
			return nil, err
		}
	}
	for _, m := range rec.Matches {
		if _, err := a.tree.matches.ToDomain(m); err != nil {
			return nil, err
		}
	}
	var evaluated []*domain.ClipEvaluation
	for _, ce := range rec.ClipEvaluations {
		clipEval, err := a.tree.clipEvaluations.ToDomain(ce)
		if err != nil {
			return nil, err
		}
		evaluated = append(evaluated, clipEval)
	}
	return &domain.Evaluation{
		UUID:            rec.UUID,
		EvaluationTask:  rec.EvaluationTask,
		ClipEvaluations: evaluated,
		Metrics:         featureList(rec.Metrics),
		Score:           rec.Score,
		CreatedOn:       rec.CreatedOn,
	}, nil
}
