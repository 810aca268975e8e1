package aoef

import (
	"time"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// SoundEventAnnotationRecord is the flat form of a human label on a sound
// event.
type SoundEventAnnotationRecord struct {
	UUID       uuid.UUID    `json:"uuid"`
	SoundEvent uuid.UUID    `json:"sound_event"`
	Tags       []int        `json:"tags,omitempty"`
	Notes      []NoteRecord `json:"notes,omitempty"`
	CreatedBy  *int         `json:"created_by,omitempty"`
	CreatedOn  time.Time    `json:"created_on"`
}

// SoundEventAnnotationAdapter deduplicates sound event annotations by uuid.
type SoundEventAnnotationAdapter struct {
	*store[*domain.SoundEventAnnotation, SoundEventAnnotationRecord, uuid.UUID, uuid.UUID]
}

func NewSoundEventAnnotationAdapter(users *UserAdapter, tags *TagAdapter, notes *NoteAdapter, soundEvents *SoundEventAdapter) *SoundEventAnnotationAdapter {
	return &SoundEventAnnotationAdapter{newStore(storeConfig[*domain.SoundEventAnnotation, SoundEventAnnotationRecord, uuid.UUID, uuid.UUID]{
		Key:      func(a *domain.SoundEventAnnotation) uuid.UUID { return a.UUID },
		RecordID: func(rec SoundEventAnnotationRecord) uuid.UUID { return rec.UUID },
		NewID:    func(a *domain.SoundEventAnnotation, _ int) uuid.UUID { return a.UUID },
		Assemble: func(ann *domain.SoundEventAnnotation, _ uuid.UUID) (SoundEventAnnotationRecord, error) {
			event, err := soundEvents.ToRecord(ann.SoundEvent)
			if err != nil {
				return SoundEventAnnotationRecord{}, err
			}
			tagIDs, err := tags.refs(ann.Tags)
			if err != nil {
				return SoundEventAnnotationRecord{}, err
			}
			noteRecs, err := notes.records(ann.Notes)
			if err != nil {
				return SoundEventAnnotationRecord{}, err
			}
			createdBy, err := users.ref(ann.CreatedBy)
			if err != nil {
				return SoundEventAnnotationRecord{}, err
			}
			return SoundEventAnnotationRecord{
				UUID:       ann.UUID,
				SoundEvent: event.UUID,
				Tags:       tagIDs,
				Notes:      noteRecs,
				CreatedBy:  createdBy,
				CreatedOn:  ann.CreatedOn,
			}, nil
		},
		Restore: func(rec SoundEventAnnotationRecord) (*domain.SoundEventAnnotation, error) {
			event, ok := soundEvents.FromID(rec.SoundEvent)
			if !ok {
				return nil, missingRef("sound event annotation", "sound event", rec.SoundEvent)
			}
			tagList, err := tags.resolve("sound event annotation", rec.Tags)
			if err != nil {
				return nil, err
			}
			noteList, err := notes.domains(rec.Notes)
			if err != nil {
				return nil, err
			}
			createdBy, err := users.resolve("sound event annotation", rec.CreatedBy)
			if err != nil {
				return nil, err
			}
			return &domain.SoundEventAnnotation{
				UUID:       rec.UUID,
				SoundEvent: event,
				Tags:       tagList,
				Notes:      noteList,
				CreatedBy:  createdBy,
				CreatedOn:  rec.CreatedOn,
			}, nil
		},
	})}
}
