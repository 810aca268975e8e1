package aoef

import (
	"testing"

	"soundcore/pkg/domain"
)

func TestTagAdapterAssignsDenseIDsInFirstSeenOrder(t *testing.T) {
	a := NewTagAdapter()
	first, err := a.ToRecord(domain.Tag{Key: "species", Value: "Myotis myotis"})
	if err != nil {
		t.Fatalf("ToRecord: %v", err)
	}
	second, err := a.ToRecord(domain.Tag{Key: "species", Value: "Pipistrellus pipistrellus"})
	if err != nil {
		t.Fatalf("ToRecord: %v", err)
	}
	if first.ID != 0 || second.ID != 1 {
		t.Fatalf("ids = %d, %d, want 0, 1", first.ID, second.ID)
	}

	again, err := a.ToRecord(domain.Tag{Key: "species", Value: "Myotis myotis"})
	if err != nil {
		t.Fatalf("ToRecord: %v", err)
	}
	if again.ID != first.ID {
		t.Fatalf("repeated tag got id %d, want %d", again.ID, first.ID)
	}
	if got := len(a.Values()); got != 2 {
		t.Fatalf("Values() holds %d records, want 2", got)
	}
}

func TestTagAdapterValuesKeepCreationOrder(t *testing.T) {
	a := NewTagAdapter()
	tags := []domain.Tag{
		{Key: "site", Value: "pond"},
		{Key: "site", Value: "forest"},
		{Key: "species", Value: "Bufo bufo"},
	}
	for _, tag := range tags {
		if _, err := a.ToRecord(tag); err != nil {
			t.Fatalf("ToRecord(%v): %v", tag, err)
		}
	}
	for i, rec := range a.Values() {
		if rec.ID != i {
			t.Errorf("Values()[%d].ID = %d, want %d", i, rec.ID, i)
		}
		if rec.Key != tags[i].Key || rec.Value != tags[i].Value {
			t.Errorf("Values()[%d] = %+v, want %+v", i, rec, tags[i])
		}
	}
}

func TestUserAdapterDeduplicatesByContent(t *testing.T) {
	a := NewUserAdapter()
	u := domain.User{Username: "maria", Institution: "INPA"}
	first, err := a.ToRecord(u)
	if err != nil {
		t.Fatalf("ToRecord: %v", err)
	}
	second, err := a.ToRecord(domain.User{Username: "maria", Institution: "INPA"})
	if err != nil {
		t.Fatalf("ToRecord: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("equal users got ids %d and %d", first.ID, second.ID)
	}
	other, err := a.ToRecord(domain.User{Username: "maria"})
	if err != nil {
		t.Fatalf("ToRecord: %v", err)
	}
	if other.ID == first.ID {
		t.Fatalf("different user shares id %d", other.ID)
	}
}

func TestStoreToDomainReusesHydratedObjects(t *testing.T) {
	a := NewSoundEventAdapter()
	rec := SoundEventRecord{UUID: mustUUID("6f1c2f7e-9d4f-4a4a-8b77-1d1a0c6f0001")}
	first, err := a.ToDomain(rec)
	if err != nil {
		t.Fatalf("ToDomain: %v", err)
	}
	second, err := a.ToDomain(rec)
	if err != nil {
		t.Fatalf("ToDomain: %v", err)
	}
	if first != second {
		t.Fatal("hydrating the same record twice produced distinct objects")
	}
}
