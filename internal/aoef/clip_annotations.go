package aoef

import (
	"time"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// ClipAnnotationsRecord aggregates the labels of one clip. Annotations are
// referenced by uuid; their records live in the document tables.
type ClipAnnotationsRecord struct {
	UUID                uuid.UUID    `json:"uuid"`
	Clip                uuid.UUID    `json:"clip"`
	Tags                []int        `json:"tags,omitempty"`
	Annotations         []uuid.UUID  `json:"annotations,omitempty"`
	SequenceAnnotations []uuid.UUID  `json:"sequence_annotations,omitempty"`
	Notes               []NoteRecord `json:"notes,omitempty"`
	CreatedOn           time.Time    `json:"created_on"`
}

// ClipAnnotationsAdapter deduplicates per-clip annotation aggregates by uuid.
type ClipAnnotationsAdapter struct {
	*store[*domain.ClipAnnotations, ClipAnnotationsRecord, uuid.UUID, uuid.UUID]
}

func NewClipAnnotationsAdapter(
	tags *TagAdapter,
	notes *NoteAdapter,
	clips *ClipAdapter,
	soundEventAnnotations *SoundEventAnnotationAdapter,
	sequenceAnnotations *SequenceAnnotationAdapter,
) *ClipAnnotationsAdapter {
	return &ClipAnnotationsAdapter{newStore(storeConfig[*domain.ClipAnnotations, ClipAnnotationsRecord, uuid.UUID, uuid.UUID]{
		Key:      func(c *domain.ClipAnnotations) uuid.UUID { return c.UUID },
		RecordID: func(rec ClipAnnotationsRecord) uuid.UUID { return rec.UUID },
		NewID:    func(c *domain.ClipAnnotations, _ int) uuid.UUID { return c.UUID },
		Assemble: func(ca *domain.ClipAnnotations, _ uuid.UUID) (ClipAnnotationsRecord, error) {
			clip, err := clips.ToRecord(ca.Clip)
			if err != nil {
				return ClipAnnotationsRecord{}, err
			}
			var events []uuid.UUID
			for _, ann := range ca.Annotations {
				rec, err := soundEventAnnotations.ToRecord(ann)
				if err != nil {
					return ClipAnnotationsRecord{}, err
				}
				events = append(events, rec.UUID)
			}
			var seqs []uuid.UUID
			for _, ann := range ca.SequenceAnnotations {
				rec, err := sequenceAnnotations.ToRecord(ann)
				if err != nil {
					return ClipAnnotationsRecord{}, err
				}
				seqs = append(seqs, rec.UUID)
			}
			tagIDs, err := tags.refs(ca.Tags)
			if err != nil {
				return ClipAnnotationsRecord{}, err
			}
			noteRecs, err := notes.records(ca.Notes)
			if err != nil {
				return ClipAnnotationsRecord{}, err
			}
			return ClipAnnotationsRecord{
				UUID:                ca.UUID,
				Clip:                clip.UUID,
				Tags:                tagIDs,
				Annotations:         events,
				SequenceAnnotations: seqs,
				Notes:               noteRecs,
				CreatedOn:           ca.CreatedOn,
			}, nil
		},
		Restore: func(rec ClipAnnotationsRecord) (*domain.ClipAnnotations, error) {
			clip, ok := clips.FromID(rec.Clip)
			if !ok {
				return nil, missingRef("clip annotations", "clip", rec.Clip)
			}
			var events []*domain.SoundEventAnnotation
			for _, id := range rec.Annotations {
				ann, ok := soundEventAnnotations.FromID(id)
				if !ok {
					return nil, missingRef("clip annotations", "sound event annotation", id)
				}
				events = append(events, ann)
			}
			var seqs []*domain.SequenceAnnotation
			for _, id := range rec.SequenceAnnotations {
				ann, ok := sequenceAnnotations.FromID(id)
				if !ok {
					return nil, missingRef("clip annotations", "sequence annotation", id)
				}
				seqs = append(seqs, ann)
			}
			tagList, err := tags.resolve("clip annotations", rec.Tags)
			if err != nil {
				return nil, err
			}
			noteList, err := notes.domains(rec.Notes)
			if err != nil {
				return nil, err
			}
			return &domain.ClipAnnotations{
				UUID:                rec.UUID,
				Clip:                clip,
				Tags:                tagList,
				Annotations:         events,
				SequenceAnnotations: seqs,
				Notes:               noteList,
				CreatedOn:           rec.CreatedOn,
			}, nil
		},
	})}
}
