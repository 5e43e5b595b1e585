package session

import (
	"errors"
	"testing"
)

func TestTrackerCap(t *testing.T) {
	tr := NewTracker(2)

	a, err := tr.Add("alice", "10.0.0.1:5000")
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if _, err := tr.Add("bob", "10.0.0.2:5000"); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if _, err := tr.Add("carol", "10.0.0.3:5000"); !errors.Is(err, ErrServerFull) {
		t.Fatalf("expected ErrServerFull, got %v", err)
	}

	tr.Remove(a.ID)
	tr.Remove("missing")
	if tr.Count() != 1 {
		t.Errorf("expected 1 player, got %d", tr.Count())
	}
	if _, err := tr.Add("carol", "10.0.0.3:5000"); err != nil {
		t.Errorf("expected free slot after remove, got %v", err)
	}
}

func TestTrackerUnlimitedAndList(t *testing.T) {
	tr := NewTracker(0)
	ids := map[string]bool{}
	for _, u := range []string{"a", "b", "c", "d"} {
		p, err := tr.Add(u, "")
		if err != nil {
			t.Fatalf("Add(%q) failed: %v", u, err)
		}
		if ids[p.ID] {
			t.Fatalf("duplicate ID %s", p.ID)
		}
		ids[p.ID] = true
	}

	list := tr.List()
	if len(list) != 4 {
		t.Fatalf("expected 4 players, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].JoinedAt.Before(list[i-1].JoinedAt) {
			t.Errorf("list not ordered by join time at %d", i)
		}
	}
}
