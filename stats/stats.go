// Package stats provides a process-wide, queryable-by-name registry
// of cache hit/miss counters.
//
// Every named cache owns one set of counters, registered under the
// cache's name when the cache is created. Counters use atomic
// increments so they can be updated from any goroutine without
// additional synchronization; snapshots are point-in-time reads, not
// transactional.
//
// The registry is an explicit singleton: it is created on first
// registration and lives for the life of the process. Clear exists
// for test isolation.
package stats

import "go.uber.org/atomic"

// Counters tracks cache hits and misses for one cache instance.
// Counts increase monotonically until an explicit Reset.
type Counters struct {
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCounters returns a zeroed set of counters. Named caches obtain
// their counters through Register instead.
func NewCounters() *Counters {
	return &Counters{}
}

// RecordHit increments the hit counter.
func (c *Counters) RecordHit() {
	c.hits.Inc()
}

// RecordMiss increments the miss counter.
func (c *Counters) RecordMiss() {
	c.misses.Inc()
}

// Hits returns the number of successful lookups.
func (c *Counters) Hits() uint64 {
	return c.hits.Load()
}

// Misses returns the number of failed lookups, including expired and
// invalidated entries.
func (c *Counters) Misses() uint64 {
	return c.misses.Load()
}

// Total returns the total number of lookups.
func (c *Counters) Total() uint64 {
	return c.hits.Load() + c.misses.Load()
}

// HitRate returns the ratio of hits to total lookups, or 0 when no
// lookups have been recorded.
func (c *Counters) HitRate() float64 {
	hits := c.hits.Load()
	total := hits + c.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// MissRate returns the ratio of misses to total lookups, or 0 when no
// lookups have been recorded.
func (c *Counters) MissRate() float64 {
	misses := c.misses.Load()
	total := c.hits.Load() + misses
	if total == 0 {
		return 0
	}
	return float64(misses) / float64(total)
}

// Reset zeroes both counters.
func (c *Counters) Reset() {
	c.hits.Store(0)
	c.misses.Store(0)
}

// Snapshot takes a point-in-time reading. The hit and miss counts are
// read independently, so a snapshot under concurrent updates is
// approximate, never torn.
func (c *Counters) Snapshot() Snapshot {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses
	s := Snapshot{Hits: hits, Misses: misses, Total: total}
	if total > 0 {
		s.HitRate = float64(hits) / float64(total)
		s.MissRate = float64(misses) / float64(total)
	}
	return s
}

// Snapshot is a point-in-time reading of one cache's counters.
type Snapshot struct {
	Hits     uint64
	Misses   uint64
	Total    uint64
	HitRate  float64
	MissRate float64
}
