// Package dedupe tracks submission ids that already went through resolution.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen submission ids so a record delivered again in a later
// polling window can be skipped cheaply. Resolution stays correct without it
// (re-observation of a credited win is a no-op); it only cuts redundant sink
// comparisons and log noise.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id int64) bool

	// Size returns the current number of recorded ids.
	Size() int
}

const defaultMaxSize = 4096

// ringDeduper keeps ids in a map plus a fixed-size insertion ring; once the
// bound is reached the oldest id is evicted first.
type ringDeduper struct {
	mu      sync.Mutex
	seen    map[int64]struct{}
	order   []int64
	next    int
	maxSize int
}

// New creates a bounded deduper. maxSize <= 0 selects the default bound.
func New(opts ...Option) Deduper {
	d := &ringDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	if d.maxSize <= 0 {
		d.maxSize = defaultMaxSize
	}
	d.seen = make(map[int64]struct{}, d.maxSize)
	d.order = make([]int64, d.maxSize)
	return d
}

func (d *ringDeduper) SeenAndRecord(_ context.Context, id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	// d.next points at the oldest slot once the ring has wrapped.
	if len(d.seen) >= d.maxSize {
		delete(d.seen, d.order[d.next])
	}
	d.order[d.next] = id
	d.next = (d.next + 1) % d.maxSize
	d.seen[id] = struct{}{}
	return false
}

func (d *ringDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
