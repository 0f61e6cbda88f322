package store

import (
	"fmt"
	"sync"
)

// DefaultIDPrefix is the booking ID prefix used unless configured otherwise.
const DefaultIDPrefix = "N2S"

// IDAllocator mints booking identifiers of the form PREFIX + six-digit
// zero-padded sequence, e.g. "N2S000001".  Each allocation reconciles the
// in-process counter against the store's highest existing suffix and takes
// the larger, so IDs issued within one process are strictly increasing and
// never repeat a value already present at call time.  Two processes
// allocating against the same store can still collide; there is no
// store-level locking.
type IDAllocator struct {
	mu     sync.Mutex
	last   int
	prefix string
	store  *BookingStore
}

// NewIDAllocator returns an allocator bound to the given store.  An empty
// prefix falls back to DefaultIDPrefix.
func NewIDAllocator(store *BookingStore, prefix string) *IDAllocator {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}
	return &IDAllocator{prefix: prefix, store: store}
}

// NextID allocates and returns the next booking identifier.
func (a *IDAllocator) NextID() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if fromStore := a.store.LastSequence(a.prefix); fromStore > a.last {
		a.last = fromStore
	}
	a.last++
	return fmt.Sprintf("%s%06d", a.prefix, a.last)
}

// LastAllocatedID returns the most recently issued identifier, or the empty
// string when nothing has been allocated yet in this process.
func (a *IDAllocator) LastAllocatedID() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.last == 0 {
		return ""
	}
	return fmt.Sprintf("%s%06d", a.prefix, a.last)
}
