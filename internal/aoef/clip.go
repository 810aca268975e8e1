package aoef

import (
	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// ClipRecord is the flat form of a clip. The recording is referenced by
// uuid, never inlined.
type ClipRecord struct {
	UUID      uuid.UUID          `json:"uuid"`
	Recording uuid.UUID          `json:"recording"`
	StartTime float64            `json:"start_time"`
	EndTime   float64            `json:"end_time"`
	Features  map[string]float64 `json:"features,omitempty"`
}

// ClipAdapter deduplicates clips by uuid and registers their recordings as
// a side effect of conversion.
type ClipAdapter struct {
	*store[*domain.Clip, ClipRecord, uuid.UUID, uuid.UUID]
}

func NewClipAdapter(recordings *RecordingAdapter) *ClipAdapter {
	return &ClipAdapter{newStore(storeConfig[*domain.Clip, ClipRecord, uuid.UUID, uuid.UUID]{
		Key:      func(c *domain.Clip) uuid.UUID { return c.UUID },
		RecordID: func(rec ClipRecord) uuid.UUID { return rec.UUID },
		NewID:    func(c *domain.Clip, _ int) uuid.UUID { return c.UUID },
		Assemble: func(c *domain.Clip, _ uuid.UUID) (ClipRecord, error) {
			rec, err := recordings.ToRecord(c.Recording)
			if err != nil {
				return ClipRecord{}, err
			}
			return ClipRecord{
				UUID:      c.UUID,
				Recording: rec.UUID,
				StartTime: c.StartTime,
				EndTime:   c.EndTime,
				Features:  featureMap(c.Features),
			}, nil
		},
		Restore: func(rec ClipRecord) (*domain.Clip, error) {
			recording, ok := recordings.FromID(rec.Recording)
			if !ok {
				return nil, missingRef("clip", "recording", rec.Recording)
			}
			return &domain.Clip{
				UUID:      rec.UUID,
				Recording: recording,
				StartTime: rec.StartTime,
				EndTime:   rec.EndTime,
				Features:  featureList(rec.Features),
			}, nil
		},
	})}
}
