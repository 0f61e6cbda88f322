package store

import (
	"testing"
)

func TestNextID_StrictlyIncreasing(t *testing.T) {
	s := newTestStore(t)
	a := NewIDAllocator(s, "N2S")

	prev := ""
	for i := 0; i < 5; i++ {
		id := a.NextID()
		if id <= prev {
			t.Fatalf("allocation %d: %q not greater than %q", i, id, prev)
		}
		prev = id
	}
	if prev != "N2S000005" {
		t.Fatalf("fifth id = %q, want N2S000005", prev)
	}
}

func TestNextID_ReconcilesWithStoreMax(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append(testBooking(t, "N2S000041")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	a := NewIDAllocator(s, "N2S")
	if id := a.NextID(); id != "N2S000042" {
		t.Fatalf("NextID = %q, want N2S000042", id)
	}
}

func TestNextID_StoreReportingLowerMaxDoesNotRegress(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append(testBooking(t, "N2S000002")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	a := NewIDAllocator(s, "N2S")
	a.last = 10 // in-process counter already ahead of the store

	if id := a.NextID(); id != "N2S000011" {
		t.Fatalf("NextID = %q, want N2S000011", id)
	}
}

func TestNextID_IgnoresForeignAndMalformedIDs(t *testing.T) {
	s := newTestStore(t)
	if err := s.Append(testBooking(t, "OTHER000099")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Append(testBooking(t, "N2SXYZ")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	a := NewIDAllocator(s, "N2S")
	if id := a.NextID(); id != "N2S000001" {
		t.Fatalf("NextID = %q, want N2S000001", id)
	}
}

func TestLastAllocatedID(t *testing.T) {
	s := newTestStore(t)
	a := NewIDAllocator(s, "N2S")

	if got := a.LastAllocatedID(); got != "" {
		t.Fatalf("LastAllocatedID before any allocation = %q, want empty", got)
	}
	want := a.NextID()
	if got := a.LastAllocatedID(); got != want {
		t.Fatalf("LastAllocatedID = %q, want %q", got, want)
	}
}

func TestDefaultPrefix(t *testing.T) {
	s := newTestStore(t)
	a := NewIDAllocator(s, "")
	if id := a.NextID(); id != "N2S000001" {
		t.Fatalf("NextID = %q, want default prefix N2S", id)
	}
}
