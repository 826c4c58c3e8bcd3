package batch

import (
	"errors"
	"testing"
)

func TestNewOK(t *testing.T) {
	r := NewOK("nb-1", "トヨタ", 3)
	if r.ID() != "nb-1" || r.Title() != "トヨタ" {
		t.Errorf("unexpected identity: %q %q", r.ID(), r.Title())
	}
	if r.Status() != StatusOK {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusOK)
	}
	if r.Entries() != 3 {
		t.Errorf("Entries() = %d, want 3", r.Entries())
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v, want nil", r.Err())
	}
}

func TestNewSkippedAndPending(t *testing.T) {
	if r := NewSkipped("nb-1", "x"); r.Status() != StatusSkipped || r.Entries() != 0 {
		t.Errorf("unexpected skipped result: %+v", r)
	}
	if r := NewPending("nb-1", "x", 2); r.Status() != StatusPending || r.Entries() != 2 {
		t.Errorf("unexpected pending result: %+v", r)
	}
}

func TestNewError(t *testing.T) {
	err := errors.New("something failed")
	r := NewError("nb-2", "ソニー", err)
	if r.ID() != "nb-2" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", r.Status(), StatusError)
	}
	if !errors.Is(r.Err(), err) {
		t.Errorf("Err() = %v, want %v", r.Err(), err)
	}
}
