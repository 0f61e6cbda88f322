package booking

import (
	"time"

	"github.com/amir01mn/parking-space-reservation/internal/model"
	"github.com/amir01mn/parking-space-reservation/internal/store"
)

// OverlapIndex answers which bookings intersect a query window by scanning
// the record store.  There is no materialized index; every query re-reads
// the backing file.
type OverlapIndex struct {
	store *store.BookingStore
}

// NewOverlapIndex returns an index over the given store.
func NewOverlapIndex(st *store.BookingStore) *OverlapIndex {
	return &OverlapIndex{store: st}
}

// Overlapping returns every booking whose [start, end] window shares at
// least one instant with [qs, qe].  The comparisons are strict, so a
// booking ending exactly at qs (or starting exactly at qe) counts as
// overlapping.  An inverted query (qs after qe) is not rejected; the
// predicate simply evaluates it.
func (x *OverlapIndex) Overlapping(qs, qe time.Time) []*model.Booking {
	return x.store.Scan(func(b *model.Booking) bool {
		return !(b.End.Before(qs) || b.Start.After(qe))
	})
}
