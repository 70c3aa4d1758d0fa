package memo

import (
	"math"
	"time"

	"go.uber.org/atomic"
)

// entry is the stored form of one cached value. The value and
// insertion timestamp are immutable after creation; the last-touched
// timestamp and frequency counter are updated on hits and use atomic
// types so the lock-free scope can read entries without holding the
// order lock.
type entry struct {
	value      any
	size       uint64
	insertedAt time.Time
	accessedAt atomic.Int64 // unix nanoseconds
	frequency  atomic.Uint64
}

func newEntry(value any, size uint64) *entry {
	e := &entry{
		value:      value,
		size:       size,
		insertedAt: time.Now(),
	}
	e.accessedAt.Store(e.insertedAt.UnixNano())
	return e
}

// expired reports whether the entry's age exceeds ttl. A zero ttl
// means the entry never expires.
func (e *entry) expired(ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return time.Since(e.insertedAt) > ttl
}

// touch records an access. Timestamps are monotonic non-decreasing:
// a stale store is skipped if a later access already landed.
func (e *entry) touch() {
	now := time.Now().UnixNano()
	for {
		prev := e.accessedAt.Load()
		if prev >= now {
			return
		}
		if e.accessedAt.CompareAndSwap(prev, now) {
			return
		}
	}
}

// bump increments the frequency counter, saturating at the maximum
// instead of wrapping.
func (e *entry) bump() {
	for {
		f := e.frequency.Load()
		if f == math.MaxUint64 {
			return
		}
		if e.frequency.CompareAndSwap(f, f+1) {
			return
		}
	}
}

// freq returns the current frequency counter.
func (e *entry) freq() uint64 {
	return e.frequency.Load()
}
