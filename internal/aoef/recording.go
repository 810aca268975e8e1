package aoef

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// RecordingRecord is the flat form of a recording. Paths are stored relative
// to the audio directory of the conversion session when one is set.
type RecordingRecord struct {
	UUID          uuid.UUID          `json:"uuid"`
	Path          string             `json:"path"`
	Duration      float64            `json:"duration"`
	Channels      int                `json:"channels"`
	Samplerate    int                `json:"samplerate"`
	TimeExpansion *float64           `json:"time_expansion,omitempty"`
	Hash          string             `json:"hash,omitempty"`
	Date          *domain.Date       `json:"date,omitempty"`
	Time          *domain.TimeOfDay  `json:"time,omitempty"`
	Latitude      *float64           `json:"latitude,omitempty"`
	Longitude     *float64           `json:"longitude,omitempty"`
	Tags          []int              `json:"tags,omitempty"`
	Features      map[string]float64 `json:"features,omitempty"`
	Notes         []NoteRecord       `json:"notes,omitempty"`
	Owners        []int              `json:"owners,omitempty"`
	Rights        string             `json:"rights,omitempty"`
}

// RecordingAdapter deduplicates recordings by uuid.
type RecordingAdapter struct {
	*store[*domain.Recording, RecordingRecord, uuid.UUID, uuid.UUID]
}

func NewRecordingAdapter(users *UserAdapter, tags *TagAdapter, notes *NoteAdapter, audioDir string) *RecordingAdapter {
	a := &RecordingAdapter{}
	a.store = newStore(storeConfig[*domain.Recording, RecordingRecord, uuid.UUID, uuid.UUID]{
		Key:      func(r *domain.Recording) uuid.UUID { return r.UUID },
		RecordID: func(rec RecordingRecord) uuid.UUID { return rec.UUID },
		NewID:    func(r *domain.Recording, _ int) uuid.UUID { return r.UUID },
		Assemble: func(r *domain.Recording, _ uuid.UUID) (RecordingRecord, error) {
			path := r.Path
			if audioDir != "" {
				rel, err := filepath.Rel(audioDir, path)
				if err != nil {
					return RecordingRecord{}, fmt.Errorf("aoef: recording %s: path %q is not inside %q: %w", r.UUID, path, audioDir, err)
				}
				path = rel
			}
			tagIDs, err := tags.refs(r.Tags)
			if err != nil {
				return RecordingRecord{}, err
			}
			noteRecs, err := notes.records(r.Notes)
			if err != nil {
				return RecordingRecord{}, err
			}
			var owners []int
			for _, o := range r.Owners {
				rec, err := users.ToRecord(o)
				if err != nil {
					return RecordingRecord{}, err
				}
				owners = append(owners, rec.ID)
			}
			var te *float64
			if r.TimeExpansion != 0 && r.TimeExpansion != 1 {
				v := r.TimeExpansion
				te = &v
			}
			return RecordingRecord{
				UUID:          r.UUID,
				Path:          path,
				Duration:      r.Duration,
				Channels:      r.Channels,
				Samplerate:    r.Samplerate,
				TimeExpansion: te,
				Hash:          r.Hash,
				Date:          r.Date,
				Time:          r.Time,
				Latitude:      r.Latitude,
				Longitude:     r.Longitude,
				Tags:          tagIDs,
				Features:      featureMap(r.Features),
				Notes:         noteRecs,
				Owners:        owners,
				Rights:        r.Rights,
			}, nil
		},
		Restore: func(rec RecordingRecord) (*domain.Recording, error) {
			path := rec.Path
			if audioDir != "" {
				path = filepath.Join(audioDir, path)
			}
			tagList, err := tags.resolve("recording", rec.Tags)
			if err != nil {
				return nil, err
			}
			noteList, err := notes.domains(rec.Notes)
			if err != nil {
				return nil, err
			}
			var owners []domain.User
			for _, id := range rec.Owners {
				u, ok := users.FromID(id)
				if !ok {
					return nil, missingRef("recording", "user", id)
				}
				owners = append(owners, u)
			}
			te := 1.0
			if rec.TimeExpansion != nil {
				te = *rec.TimeExpansion
			}
			return &domain.Recording{
				UUID:          rec.UUID,
				Path:          path,
				Duration:      rec.Duration,
				Channels:      rec.Channels,
				Samplerate:    rec.Samplerate,
				TimeExpansion: te,
				Hash:          rec.Hash,
				Date:          rec.Date,
				Time:          rec.Time,
				Latitude:      rec.Latitude,
				Longitude:     rec.Longitude,
				Tags:          tagList,
				Features:      featureList(rec.Features),
				Notes:         noteList,
				Owners:        owners,
				Rights:        rec.Rights,
			}, nil
		},
	})
	return a
}
