package aoef

import (
	"time"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// StatusBadgeRecord is the inline form of one task state transition.
type StatusBadgeRecord struct {
	State     domain.AnnotationState `json:"state"`
	Owner     *int                   `json:"owner,omitempty"`
	CreatedOn time.Time              `json:"created_on"`
}

// AnnotationTaskRecord is the flat form of an annotation work item.
type AnnotationTaskRecord struct {
	UUID         uuid.UUID           `json:"uuid"`
	Clip         uuid.UUID           `json:"clip"`
	StatusBadges []StatusBadgeRecord `json:"status_badges,omitempty"`
	CreatedOn    time.Time           `json:"created_on"`
}

// AnnotationTaskAdapter deduplicates annotation tasks by uuid.
type AnnotationTaskAdapter struct {
	*store[*domain.AnnotationTask, AnnotationTaskRecord, uuid.UUID, uuid.UUID]
}

func NewAnnotationTaskAdapter(users *UserAdapter, clips *ClipAdapter) *AnnotationTaskAdapter {
	return &AnnotationTaskAdapter{newStore(storeConfig[*domain.AnnotationTask, AnnotationTaskRecord, uuid.UUID, uuid.UUID]{
		Key:      func(t *domain.AnnotationTask) uuid.UUID { return t.UUID },
		RecordID: func(rec AnnotationTaskRecord) uuid.UUID { return rec.UUID },
		NewID:    func(t *domain.AnnotationTask, _ int) uuid.UUID { return t.UUID },
		Assemble: func(task *domain.AnnotationTask, _ uuid.UUID) (AnnotationTaskRecord, error) {
			clip, err := clips.ToRecord(task.Clip)
			if err != nil {
				return AnnotationTaskRecord{}, err
			}
			var badges []StatusBadgeRecord
			for _, b := range task.StatusBadges {
				owner, err := users.ref(b.Owner)
				if err != nil {
					return AnnotationTaskRecord{}, err
				}
				badges = append(badges, StatusBadgeRecord{
					State:     b.State,
					Owner:     owner,
					CreatedOn: b.CreatedOn,
				})
			}
			return AnnotationTaskRecord{
				UUID:         task.UUID,
				Clip:         clip.UUID,
				StatusBadges: badges,
				CreatedOn:    task.CreatedOn,
			}, nil
		},
		Restore: func(rec AnnotationTaskRecord) (*domain.AnnotationTask, error) {
			clip, ok := clips.FromID(rec.Clip)
			if !ok {
				return nil, missingRef("annotation task", "clip", rec.Clip)
			}
			var badges []domain.StatusBadge
			for _, b := range rec.StatusBadges {
				owner, err := users.resolve("status badge", b.Owner)
				if err != nil {
					return nil, err
				}
				badges = append(badges, domain.StatusBadge{
					State:     b.State,
					Owner:     owner,
					CreatedOn: b.CreatedOn,
				})
			}
			return &domain.AnnotationTask{
				UUID:         rec.UUID,
				Clip:         clip,
				StatusBadges: badges,
				CreatedOn:    rec.CreatedOn,
			}, nil
		},
	})}
}
