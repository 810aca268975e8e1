package aoef

import (
	"time"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// SequenceAnnotationRecord is the flat form of a human label on a sequence.
type SequenceAnnotationRecord struct {
	UUID      uuid.UUID    `json:"uuid"`
	Sequence  uuid.UUID    `json:"sequence"`
	Tags      []int        `json:"tags,omitempty"`
	Notes     []NoteRecord `json:"notes,omitempty"`
	CreatedBy *int         `json:"created_by,omitempty"`
	CreatedOn time.Time    `json:"created_on"`
}

// SequenceAnnotationAdapter deduplicates sequence annotations by uuid.
type SequenceAnnotationAdapter struct {
	*store[*domain.SequenceAnnotation, SequenceAnnotationRecord, uuid.UUID, uuid.UUID]
}

func NewSequenceAnnotationAdapter(users *UserAdapter, tags *TagAdapter, notes *NoteAdapter, sequences *SequenceAdapter) *SequenceAnnotationAdapter {
	return &SequenceAnnotationAdapter{newStore(storeConfig[*domain.SequenceAnnotation, SequenceAnnotationRecord, uuid.UUID, uuid.UUID]{
		Key:      func(a *domain.SequenceAnnotation) uuid.UUID { return a.UUID },
		RecordID: func(rec SequenceAnnotationRecord) uuid.UUID { return rec.UUID },
		NewID:    func(a *domain.SequenceAnnotation, _ int) uuid.UUID { return a.UUID },
		Assemble: func(ann *domain.SequenceAnnotation, _ uuid.UUID) (SequenceAnnotationRecord, error) {
			seq, err := sequences.ToRecord(ann.Sequence)
			if err != nil {
				return SequenceAnnotationRecord{}, err
			}
			tagIDs, err := tags.refs(ann.Tags)
			if err != nil {
				return SequenceAnnotationRecord{}, err
			}
			noteRecs, err := notes.records(ann.Notes)
			if err != nil {
				return SequenceAnnotationRecord{}, err
			}
			createdBy, err := users.ref(ann.CreatedBy)
			if err != nil {
				return SequenceAnnotationRecord{}, err
			}
			return SequenceAnnotationRecord{
				UUID:      ann.UUID,
				Sequence:  seq.UUID,
				Tags:      tagIDs,
				Notes:     noteRecs,
				CreatedBy: createdBy,
				CreatedOn: ann.CreatedOn,
			}, nil
		},
		Restore: func(rec SequenceAnnotationRecord) (*domain.SequenceAnnotation, error) {
			seq, ok := sequences.FromID(rec.Sequence)
			if !ok {
				return nil, missingRef("sequence annotation", "sequence", rec.Sequence)
			}
			tagList, err := tags.resolve("sequence annotation", rec.Tags)
			if err != nil {
				return nil, err
			}
			noteList, err := notes.domains(rec.Notes)
			if err != nil {
				return nil, err
			}
			createdBy, err := users.resolve("sequence annotation", rec.CreatedBy)
			if err != nil {
				return nil, err
			}
			return &domain.SequenceAnnotation{
				UUID:      rec.UUID,
				Sequence:  seq,
				Tags:      tagList,
				Notes:     noteList,
				CreatedBy: createdBy,
				CreatedOn: rec.CreatedOn,
			}, nil
		},
	})}
}
