package aoef

// store is a memoizing two-way map between domain objects of type D and
// their flat records of type R. Each object is identified by a key K derived
// from the object itself and by a record id I carried in the document.
// Converting the same object twice yields the same id and the cached record,
// which is what keeps shared entities deduplicated.
type store[D any, R any, K comparable, I comparable] struct {
	key      func(D) K
	recordID func(R) I
	newID    func(D, int) I
	assemble func(D, I) (R, error)
	restore  func(R) (D, error)

	ids     map[K]I
	objects map[I]D
	records map[I]R
	order   []I
}

type storeConfig[D any, R any, K comparable, I comparable] struct {
	// Key derives the identity of a domain object. Objects with equal keys
	// are the same entity and share one record.
	Key func(D) K
	// RecordID extracts the id a record carries in the document.
	RecordID func(R) I
	// NewID allocates an id for an object seen for the first time. The int
	// argument is the number of ids handed out so far.
	NewID func(D, int) I
	// Assemble builds the flat record for an object under its assigned id.
	Assemble func(D, I) (R, error)
	// Restore rebuilds the domain object from its record.
	Restore func(R) (D, error)
}

func newStore[D any, R any, K comparable, I comparable](cfg storeConfig[D, R, K, I]) *store[D, R, K, I] {
	return &store[D, R, K, I]{
		key:      cfg.Key,
		recordID: cfg.RecordID,
		newID:    cfg.NewID,
		assemble: cfg.Assemble,
		restore:  cfg.Restore,
		ids:      make(map[K]I),
		objects:  make(map[I]D),
		records:  make(map[I]R),
	}
}

// id returns the id assigned to obj, allocating one on first sight.
func (s *store[D, R, K, I]) id(obj D) I {
	k := s.key(obj)
	if id, ok := s.ids[k]; ok {
		return id
	}
	id := s.newID(obj, len(s.ids))
	s.ids[k] = id
	s.objects[id] = obj
	return id
}

// ToRecord converts obj to its record, reusing the cached record when the
// object was converted before.
func (s *store[D, R, K, I]) ToRecord(obj D) (R, error) {
	id := s.id(obj)
	if rec, ok := s.records[id]; ok {
		return rec, nil
	}
	rec, err := s.assemble(obj, id)
	if err != nil {
		var zero R
		return zero, err
	}
	s.records[id] = rec
	s.order = append(s.order, id)
	return rec, nil
}

// ToDomain converts a record back to its domain object, reusing the cached
// object when a record with the same id was hydrated before.
func (s *store[D, R, K, I]) ToDomain(rec R) (D, error) {
	id := s.recordID(rec)
	if obj, ok := s.objects[id]; ok {
		return obj, nil
	}
	obj, err := s.restore(rec)
	if err != nil {
		var zero D
		return zero, err
	}
	s.objects[id] = obj
	if _, ok := s.records[id]; !ok {
		s.records[id] = rec
		s.order = append(s.order, id)
	}
	return obj, nil
}

// FromID looks up the domain object hydrated or converted under id.
func (s *store[D, R, K, I]) FromID(id I) (D, bool) {
	obj, ok := s.objects[id]
	return obj, ok
}

// Values returns every record the store holds, in the order the records
// were first created. The order is what makes document output deterministic.
func (s *store[D, R, K, I]) Values() []R {
	out := make([]R, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id])
	}
	return out
}

func (s *store[D, R, K, I]) Len() int { return len(s.order) }
