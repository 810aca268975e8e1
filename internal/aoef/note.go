package aoef

import (
	"time"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// NoteRecord is the inline form of a note. Notes are never shared, so they
// are embedded in the record that owns them rather than stored in a table.
type NoteRecord struct {
	UUID      uuid.UUID `json:"uuid"`
	Message   string    `json:"message"`
	CreatedBy *int      `json:"created_by,omitempty"`
	IsIssue   bool      `json:"is_issue,omitempty"`
	CreatedOn time.Time `json:"created_on"`
}

// NoteAdapter converts notes inline. It keeps no identity map of its own and
// only resolves the author through the user adapter.
type NoteAdapter struct {
	users *UserAdapter
}

func NewNoteAdapter(users *UserAdapter) *NoteAdapter {
	return &NoteAdapter{users: users}
}

func (a *NoteAdapter) ToRecord(n domain.Note) (NoteRecord, error) {
	createdBy, err := a.users.ref(n.CreatedBy)
	if err != nil {
		return NoteRecord{}, err
	}
	return NoteRecord{
		UUID:      n.UUID,
		Message:   n.Message,
		CreatedBy: createdBy,
		IsIssue:   n.IsIssue,
		CreatedOn: n.CreatedOn,
	}, nil
}

func (a *NoteAdapter) ToDomain(r NoteRecord) (domain.Note, error) {
	createdBy, err := a.users.resolve("note", r.CreatedBy)
	if err != nil {
		return domain.Note{}, err
	}
	return domain.Note{
		UUID:      r.UUID,
		Message:   r.Message,
		CreatedBy: createdBy,
		IsIssue:   r.IsIssue,
		CreatedOn: r.CreatedOn,
	}, nil
}

func (a *NoteAdapter) records(notes []domain.Note) ([]NoteRecord, error) {
	if len(notes) == 0 {
		return nil, nil
	}
	recs := make([]NoteRecord, 0, len(notes))
	for _, n := range notes {
		rec, err := a.ToRecord(n)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (a *NoteAdapter) domains(recs []NoteRecord) ([]domain.Note, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	notes := make([]domain.Note, 0, len(recs))
	for _, rec := range recs {
		n, err := a.ToDomain(rec)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}
