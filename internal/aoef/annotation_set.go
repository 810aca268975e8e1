package aoef

import (
	"time"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// AnnotationSetRecord is the document payload of a bare annotation set. The
// entity tables hold everything the clip annotations reach transitively.
type AnnotationSetRecord struct {
	UUID                  uuid.UUID                    `json:"uuid"`
	CollectionType        CollectionKind               `json:"collection_type"`
	Users                 []UserRecord                 `json:"users,omitempty"`
	Tags                  []TagRecord                  `json:"tags,omitempty"`
	Recordings            []RecordingRecord            `json:"recordings,omitempty"`
	SoundEvents           []SoundEventRecord           `json:"sound_events,omitempty"`
	Sequences             []SequenceRecord             `json:"sequences,omitempty"`
	Clips                 []ClipRecord                 `json:"clips,omitempty"`
	SoundEventAnnotations []SoundEventAnnotationRecord `json:"sound_event_annotations,omitempty"`
	SequenceAnnotations   []SequenceAnnotationRecord   `json:"sequence_annotations,omitempty"`
	ClipAnnotations       []ClipAnnotationsRecord      `json:"clip_annotations,omitempty"`
	CreatedOn             time.Time                    `json:"created_on"`
}

// AnnotationSetAdapter converts annotation sets. It is also the base for the
// annotation project and evaluation set adapters.
type AnnotationSetAdapter struct {
	tree *adapterTree
}

func NewAnnotationSetAdapter(tree *adapterTree) *AnnotationSetAdapter {
	return &AnnotationSetAdapter{tree: tree}
}

func (a *AnnotationSetAdapter) Export(set *domain.AnnotationSet) (*AnnotationSetRecord, error) {
	var annotated []ClipAnnotationsRecord
	for _, ca := range set.ClipAnnotations {
		rec, err := a.tree.clipAnnotations.ToRecord(ca)
		if err != nil {
			return nil, err
		}
		annotated = append(annotated, rec)
	}
	return &AnnotationSetRecord{
		UUID:                  set.UUID,
		CollectionType:        KindAnnotationSet,
		Users:                 a.tree.users.Values(),
		Tags:                  a.tree.tags.Values(),
		Recordings:            a.tree.recordings.Values(),
		SoundEvents:           a.tree.soundEvents.Values(),
		Sequences:             a.tree.sequences.Values(),
		Clips:                 a.tree.clips.Values(),
		SoundEventAnnotations: a.tree.soundEventAnnotations.Values(),
		SequenceAnnotations:   a.tree.sequenceAnnotations.Values(),
		ClipAnnotations:       annotated,
		CreatedOn:             set.CreatedOn,
	}, nil
}

// hydrate fills the identity maps from the entity tables in dependency
// order, so later tables resolve every id they reference.
func (a *AnnotationSetAdapter) hydrate(rec *AnnotationSetRecord) error {
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
	for _, ann := range rec.SoundEventAnnotations {
		if _, err := a.tree.soundEventAnnotations.ToDomain(ann); err != nil {
			return err
		}
	}
	for _, ann := range rec.SequenceAnnotations {
		if _, err := a.tree.sequenceAnnotations.ToDomain(ann); err != nil {
			return err
		}
	}
	return nil
}

func (a *AnnotationSetAdapter) Import(rec *AnnotationSetRecord) (*domain.AnnotationSet, error) {
	if err := a.hydrate(rec); err != nil {
		return nil, err
	}
	var annotated []*domain.ClipAnnotations
	for _, ca := range rec.ClipAnnotations {
		clipAnn, err := a.tree.clipAnnotations.ToDomain(ca)
		if err != nil {
			return nil, err
		}
		annotated = append(annotated, clipAnn)
	}
	return &domain.AnnotationSet{
		UUID:            rec.UUID,
		ClipAnnotations: annotated,
		CreatedOn:       rec.CreatedOn,
	}, nil
}
