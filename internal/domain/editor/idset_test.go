package editor_test

import (
	"testing"

	"courtside/internal/domain/editor"
)

// TestIDSet_Immutability verifies With/Without never touch the receiver.
func TestIDSet_Immutability(t *testing.T) {
	base := editor.NewIDSet("a", "b")

	grown := base.With("c")
	if base.Has("c") {
		t.Error("With mutated the receiver")
	}
	if !grown.Has("a") || !grown.Has("b") || !grown.Has("c") {
		t.Errorf("grown = %v, want a, b, c", grown.IDs())
	}

	shrunk := grown.Without("a")
	if !grown.Has("a") {
		t.Error("Without mutated the receiver")
	}
	if shrunk.Has("a") || shrunk.Len() != 2 {
		t.Errorf("shrunk = %v, want b, c", shrunk.IDs())
	}
}

// TestIDSet_NoopsShareStorage verifies redundant edits return the receiver.
func TestIDSet_NoopsShareStorage(t *testing.T) {
	s := editor.NewIDSet("a")
	if got := s.With("a"); got.Len() != 1 {
		t.Errorf("With existing member: len = %d, want 1", got.Len())
	}
	if got := s.Without("missing"); got.Len() != 1 {
		t.Errorf("Without non-member: len = %d, want 1", got.Len())
	}
}

// TestIDSet_NilReceiver verifies the zero value behaves as an empty set.
func TestIDSet_NilReceiver(t *testing.T) {
	var s editor.IDSet
	if s.Has("x") || s.Len() != 0 {
		t.Error("nil set is not empty")
	}
	if got := s.With("x"); !got.Has("x") {
		t.Error("With on nil set lost the id")
	}
}

// TestIDSet_IDsSorted verifies stable ordering.
func TestIDSet_IDsSorted(t *testing.T) {
	s := editor.NewIDSet("c", "a", "b")
	ids := s.IDs()
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("IDs() = %v, want [a b c]", ids)
	}
}
