package aoef

import (
	"time"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// PredictionSetRecord is the document payload of a bare prediction set.
type PredictionSetRecord struct {
	UUID                  uuid.UUID                    `json:"uuid"`
	CollectionType        CollectionKind               `json:"collection_type"`
	Users                 []UserRecord                 `json:"users,omitempty"`
	Tags                  []TagRecord                  `json:"tags,omitempty"`
	Recordings            []RecordingRecord            `json:"recordings,omitempty"`
	SoundEvents           []SoundEventRecord           `json:"sound_events,omitempty"`
	Sequences             []SequenceRecord             `json:"sequences,omitempty"`
	Clips                 []ClipRecord                 `json:"clips,omitempty"`
	SoundEventPredictions []SoundEventPredictionRecord `json:"sound_event_predictions,omitempty"`
	SequencePredictions   []SequencePredictionRecord   `json:"sequence_predictions,omitempty"`
	ClipPredictions       []ClipPredictionsRecord      `json:"clip_predictions,omitempty"`
	CreatedOn             time.Time                    `json:"created_on"`
}

// PredictionSetAdapter converts prediction sets. It is also the base for the
// model run adapter.
type PredictionSetAdapter struct {
	tree *adapterTree
}

func NewPredictionSetAdapter(tree *adapterTree) *PredictionSetAdapter {
	return &PredictionSetAdapter{tree: tree}
}

func (a *PredictionSetAdapter) Export(set *domain.PredictionSet) (*PredictionSetRecord, error) {
	var predicted []ClipPredictionsRecord
	for _, cp := range set.ClipPredictions {
		rec, err := a.tree.clipPredictions.ToRecord(cp)
		if err != nil {
			return nil, err
		}
		predicted = append(predicted, rec)
	}
	return &PredictionSetRecord{
		UUID:                  set.UUID,
		CollectionType:        KindPredictionSet,
		Users:                 a.tree.users.Values(),
		Tags:                  a.tree.tags.Values(),
		Recordings:            a.tree.recordings.Values(),
		SoundEvents:           a.tree.soundEvents.Values(),
		Sequences:             a.tree.sequences.Values(),
		Clips:                 a.tree.clips.Values(),
		SoundEventPredictions: a.tree.soundEventPredictions.Values(),
		SequencePredictions:   a.tree.sequencePredictions.Values(),
		ClipPredictions:       predicted,
		CreatedOn:             set.CreatedOn,
	}, nil
}

// hydrate fills the identity maps from the entity tables in dependency
// order.
func (a *PredictionSetAdapter) hydrate(rec *PredictionSetRecord) error {
	for _, u := range rec.Users {
		if _, err := a.tree.users.ToDomain(u); err != nil {
			return err
		}
	}
	for _, t := range rec.Tags {
		if _, err := a.tree.tags.ToDomain(t); err != nil {
			return err
		}
	}
	for _, r := range rec.Recordings {
		if _, err := a.tree.recordings.ToDomain(r); err != nil {
			return err
		}
	}
	for _, c := range rec.Clips {
		if _, err := a.tree.clips.ToDomain(c); err != nil {
			return err
		}
	}
	for _, ev := range rec.SoundEvents {
		if _, err := a.tree.soundEvents.ToDomain(ev); err != nil {
			return err
		}
	}
	if err := a.tree.sequences.HydrateAll(rec.Sequences); err != nil {
		return err
	}
	for _, pred := range rec.SoundEventPredictions {
		if _, err := a.tree.soundEventPredictions.ToDomain(pred); err != nil {
			return err
		}
	}
	for _, pred := range rec.SequencePredictions {
		if _, err := a.tree.sequencePredictions.ToDomain(pred); err != nil {
			return err
		}
	}
	return nil
}

func (a *PredictionSetAdapter) Import(rec *PredictionSetRecord) (*domain.PredictionSet, error) {
	if err := a.hydrate(rec); err != nil {
		return nil, err
	}
	var predicted []*domain.ClipPredictions
	for _, cp := range rec.ClipPredictions {
		clipPred, err := a.tree.clipPredictions.ToDomain(cp)
		if err != nil {
			return nil, err
		}
		predicted = append(predicted, clipPred)
	}
	return &domain.PredictionSet{
		UUID:            rec.UUID,
		ClipPredictions: predicted,
		CreatedOn:       rec.CreatedOn,
	}, nil
}
