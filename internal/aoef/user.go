package aoef

import "soundcore/pkg/domain"

// UserRecord is the flat form of a user. Users carry no uuid; identity is
// the full set of content fields.
type UserRecord struct {
	ID          int    `json:"id"`
	Username    string `json:"username,omitempty"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// UserAdapter deduplicates users by value and hands out dense integer ids
// in first-seen order.
type UserAdapter struct {
	*store[domain.User, UserRecord, domain.User, int]
}

func NewUserAdapter() *UserAdapter {
	return &UserAdapter{newStore(storeConfig[domain.User, UserRecord, domain.User, int]{
		Key:      func(u domain.User) domain.User { return u },
		RecordID: func(r UserRecord) int { return r.ID },
		NewID:    func(_ domain.User, n int) int { return n },
		Assemble: func(u domain.User, id int) (UserRecord, error) {
			return UserRecord{
				ID:          id,
				Username:    u.Username,
				Email:       u.Email,
				Name:        u.Name,
				Institution: u.Institution,
			}, nil
		},
		Restore: func(r UserRecord) (domain.User, error) {
			return domain.User{
				Username:    r.Username,
				Email:       r.Email,
				Name:        r.Name,
				Institution: r.Institution,
			}, nil
		},
	})}
}

// ref converts an optional user to an optional id reference.
func (a *UserAdapter) ref(u *domain.User) (*int, error) {
	if u == nil {
		return nil, nil
	}
	rec, err := a.ToRecord(*u)
	if err != nil {
		return nil, err
	}
	id := rec.ID
	return &id, nil
}

func (a *UserAdapter) resolve(referencing string, id *int) (*domain.User, error) {
	if id == nil {
		return nil, nil
	}
	u, ok := a.FromID(*id)
	if !ok {
		return nil, missingRef(referencing, "user", *id)
	}
	return &u, nil
}
