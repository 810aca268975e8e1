package aoef

import (
	"time"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

func mustUUID(s string) uuid.UUID {
	return uuid.MustParse(s)
}

func fptr(v float64) *float64 { return &v }

var testTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestRecording(id string, path string) *domain.Recording {
	return &domain.Recording{
		UUID:          mustUUID(id),
		Path:          path,
		Duration:      60,
		Channels:      1,
		Samplerate:    256000,
		TimeExpansion: 1,
	}
}

func newTestClip(id string, rec *domain.Recording) *domain.Clip {
	return &domain.Clip{
		UUID:      mustUUID(id),
		Recording: rec,
		StartTime: 0,
		EndTime:   3,
	}
}

func newTestSoundEvent(id string) *domain.SoundEvent {
	return &domain.SoundEvent{
		UUID:     mustUUID(id),
		Geometry: domain.BoxGeometry(0.1, 42000, 0.4, 96000),
	}
}
