package booking

import (
	"testing"

	"github.com/amir01mn/parking-space-reservation/internal/pricing"
)

func TestOverlapping_IntersectingWindow(t *testing.T) {
	f := newFixture(t, stubUsers{1004: pricing.CategoryStudent})
	b := f.create(t, studentRequest(t)) // 10:00-12:00
	x := NewOverlapIndex(f.store)

	got := x.Overlapping(mustClock(t, "11:00"), mustClock(t, "13:00"))
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("Overlapping returned %d bookings, want the 10:00-12:00 booking", len(got))
	}
}

func TestOverlapping_TouchingBoundariesCount(t *testing.T) {
	f := newFixture(t, stubUsers{1004: pricing.CategoryStudent})
	f.create(t, studentRequest(t)) // 10:00-12:00
	x := NewOverlapIndex(f.store)

	// Booking ends exactly at the query start.
	if got := x.Overlapping(mustClock(t, "12:00"), mustClock(t, "13:00")); len(got) != 1 {
		t.Fatalf("end-touching query returned %d bookings, want 1", len(got))
	}
	// Booking starts exactly at the query end.
	if got := x.Overlapping(mustClock(t, "08:00"), mustClock(t, "10:00")); len(got) != 1 {
		t.Fatalf("start-touching query returned %d bookings, want 1", len(got))
	}
}

func TestOverlapping_DisjointWindowExcluded(t *testing.T) {
	f := newFixture(t, stubUsers{1004: pricing.CategoryStudent})
	f.create(t, studentRequest(t)) // 10:00-12:00
	x := NewOverlapIndex(f.store)

	if got := x.Overlapping(mustClock(t, "12:01"), mustClock(t, "14:00")); len(got) != 0 {
		t.Fatalf("disjoint query returned %d bookings, want 0", len(got))
	}
	if got := x.Overlapping(mustClock(t, "07:00"), mustClock(t, "09:59")); len(got) != 0 {
		t.Fatalf("disjoint query returned %d bookings, want 0", len(got))
	}
}

func TestOverlapping_InvertedQueryEvaluatesNaturally(t *testing.T) {
	f := newFixture(t, stubUsers{1004: pricing.CategoryStudent})
	f.create(t, studentRequest(t)) // 10:00-12:00
	x := NewOverlapIndex(f.store)

	// qs > qe is not rejected; the predicate runs as written.  For a window
	// fully containing both bounds the booking still matches.
	if got := x.Overlapping(mustClock(t, "11:30"), mustClock(t, "11:00")); len(got) != 1 {
		t.Fatalf("inverted query returned %d bookings, want 1", len(got))
	}
	// Bounds inverted around a disjoint range match nothing.
	if got := x.Overlapping(mustClock(t, "14:00"), mustClock(t, "13:00")); len(got) != 0 {
		t.Fatalf("inverted disjoint query returned %d bookings, want 0", len(got))
	}
}

func TestOverlapping_ScansCurrentFileContents(t *testing.T) {
	f := newFixture(t, stubUsers{1004: pricing.CategoryStudent})
	x := NewOverlapIndex(f.store)

	if got := x.Overlapping(mustClock(t, "00:00"), mustClock(t, "23:59")); len(got) != 0 {
		t.Fatalf("empty store returned %d bookings", len(got))
	}
	f.create(t, studentRequest(t))
	if got := x.Overlapping(mustClock(t, "00:00"), mustClock(t, "23:59")); len(got) != 1 {
		t.Fatalf("scan after append returned %d bookings, want 1", len(got))
	}
}
