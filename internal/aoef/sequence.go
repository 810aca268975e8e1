package aoef

import (
	"fmt"

	"github.com/google/uuid"

	"soundcore/pkg/domain"
)

// SequenceRecord is the flat form of a sequence. The parent link references
// another sequence record in the same document by uuid.
type SequenceRecord struct {
	UUID        uuid.UUID          `json:"uuid"`
	SoundEvents []uuid.UUID        `json:"sound_events,omitempty"`
	Features    map[string]float64 `json:"features,omitempty"`
	Parent      *uuid.UUID         `json:"parent,omitempty"`
}

// SequenceAdapter deduplicates sequences by uuid. Parent chains are walked
// iteratively in both directions, so arbitrarily deep chains convert without
// recursion and cycles are rejected instead of looping.
type SequenceAdapter struct {
	*store[*domain.Sequence, SequenceRecord, uuid.UUID, uuid.UUID]
}

func NewSequenceAdapter(soundEvents *SoundEventAdapter) *SequenceAdapter {
	return &SequenceAdapter{newStore(storeConfig[*domain.Sequence, SequenceRecord, uuid.UUID, uuid.UUID]{
		Key:      func(s *domain.Sequence) uuid.UUID { return s.UUID },
		RecordID: func(rec SequenceRecord) uuid.UUID { return rec.UUID },
		NewID:    func(s *domain.Sequence, _ int) uuid.UUID { return s.UUID },
		Assemble: func(s *domain.Sequence, _ uuid.UUID) (SequenceRecord, error) {
			var events []uuid.UUID
			for _, ev := range s.SoundEvents {
				rec, err := soundEvents.ToRecord(ev)
				if err != nil {
					return SequenceRecord{}, err
				}
				events = append(events, rec.UUID)
			}
			var parent *uuid.UUID
			if s.Parent != nil {
				id := s.Parent.UUID
				parent = &id
			}
			return SequenceRecord{
				UUID:        s.UUID,
				SoundEvents: events,
				Features:    featureMap(s.Features),
				Parent:      parent,
			}, nil
		},
		Restore: func(rec SequenceRecord) (*domain.Sequence, error) {
			seq := &domain.Sequence{
				UUID:     rec.UUID,
				Features: featureList(rec.Features),
			}
			for _, id := range rec.SoundEvents {
				ev, ok := soundEvents.FromID(id)
				if !ok {
					return nil, missingRef("sequence", "sound event", id)
				}
				seq.SoundEvents = append(seq.SoundEvents, ev)
			}
			return seq, nil
		},
	})}
}

// ToRecord converts seq and every ancestor on its parent chain, root first,
// so each parent record exists before the sequence that references it.
func (a *SequenceAdapter) ToRecord(seq *domain.Sequence) (SequenceRecord, error) {
	chain := make([]*domain.Sequence, 0, 4)
	seen := make(map[uuid.UUID]bool)
	for cur := seq; cur != nil; cur = cur.Parent {
		if seen[cur.UUID] {
			return SequenceRecord{}, fmt.Errorf("aoef: sequence %s has a cyclic parent chain", cur.UUID)
		}
		seen[cur.UUID] = true
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if _, err := a.store.ToRecord(chain[i]); err != nil {
			return SequenceRecord{}, err
		}
	}
	return a.store.ToRecord(seq)
}

// HydrateAll restores a batch of sequence records, deferring each record
// until its parent is available. A pass with no progress means the records
// left either reference a parent missing from the document or form a cycle.
func (a *SequenceAdapter) HydrateAll(records []SequenceRecord) error {
	inDoc := make(map[uuid.UUID]bool, len(records))
	for _, rec := range records {
		inDoc[rec.UUID] = true
	}
	pending := records
	for len(pending) > 0 {
		var next []SequenceRecord
		for _, rec := range pending {
			if rec.Parent != nil {
				if _, ok := a.FromID(*rec.Parent); !ok {
					next = append(next, rec)
					continue
				}
			}
			seq, err := a.ToDomain(rec)
			if err != nil {
				return err
			}
			if rec.Parent != nil {
				parent, _ := a.FromID(*rec.Parent)
				seq.Parent = parent
			}
		}
		if len(next) == len(pending) {
			for _, rec := range next {
				if !inDoc[*rec.Parent] {
					return missingRef("sequence", "sequence", *rec.Parent)
				}
			}
			return &MalformedDocumentError{
				Reason: fmt.Sprintf("cyclic sequence parent chain over %d records", len(next)),
			}
		}
		pending = next
	}
	return nil
}
