package source

import "testing"

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("x")
	b := in.Intern("x")
	if a != b {
		t.Fatalf("same string must intern to the same ID: %d vs %d", a, b)
	}
	if a == NoStringID {
		t.Fatalf("non-empty string must not map to NoStringID")
	}
}

func TestInternerEmptyStringIsNoStringID(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id != NoStringID {
		t.Fatalf("empty string must map to NoStringID, got %d", id)
	}
	s, ok := in.Lookup(NoStringID)
	if !ok || s != "" {
		t.Fatalf("NoStringID must resolve to empty string")
	}
}

func TestInternerLookupInvalid(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(StringID(999)); ok {
		t.Fatalf("out-of-range ID must not resolve")
	}
}

func TestInternerBytesRoundTrip(t *testing.T) {
	in := NewInterner()
	id := in.InternBytes([]byte{'h', 'i'})
	if got := in.MustLookup(id); got != "hi" {
		t.Fatalf("expected %q, got %q", "hi", got)
	}
}
