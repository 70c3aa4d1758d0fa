package memo

import (
	"math"
	"math/rand/v2"
	"time"
)

// orderIndex is the ordered sequence of keys backing eviction
// decisions. Its semantics are policy-specific: insertion order for
// FIFO, access order for LRU/ARC/TLRU, and an arbitrary pool for
// LFU/Random. Every key in the index references a key present in the
// store and vice versa; all mutation paths preserve that bijection.
//
// The index is not safe for concurrent use. Callers serialize access
// through the cache's order lock.
type orderIndex struct {
	keys []string
}

func (o *orderIndex) len() int { return len(o.keys) }

// pushBack appends a key at the most-recent position.
func (o *orderIndex) pushBack(key string) {
	o.keys = append(o.keys, key)
}

// remove deletes the first occurrence of key, reporting whether it
// was present. O(n) due to positional removal.
func (o *orderIndex) remove(key string) bool {
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			return true
		}
	}
	return false
}

// moveToEnd re-appends key at the most-recent position. A key not in
// the index leaves it unchanged.
func (o *orderIndex) moveToEnd(key string) {
	if o.remove(key) {
		o.keys = append(o.keys, key)
	}
}

// popFront removes and returns the oldest key.
func (o *orderIndex) popFront() (string, bool) {
	if len(o.keys) == 0 {
		return "", false
	}
	key := o.keys[0]
	o.keys = o.keys[1:]
	return key, true
}

// removeAt deletes the key at position i and returns it.
func (o *orderIndex) removeAt(i int) string {
	key := o.keys[i]
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	return key
}

func (o *orderIndex) reset() { o.keys = nil }

// applyHit applies the policy's bookkeeping for a cache hit. FIFO
// and Random only refresh the access timestamp; LRU moves the key to
// the most-recent position; LFU increments the frequency counter; ARC
// and TLRU do both. The order lock must be held for the policies that
// reorder the index (LRU, ARC, TLRU); the remaining policies touch
// only atomic entry fields.
func (c *Cache) applyHit(key string, e *entry) {
	e.touch()
	switch c.cfg.Policy {
	case PolicyLRU:
		c.order.moveToEnd(key)
	case PolicyLFU:
		e.bump()
	case PolicyARC, PolicyTLRU:
		c.order.moveToEnd(key)
		e.bump()
	}
}

// evictOne selects a victim according to the active policy and
// removes it from both the store and the order index. It returns the
// evicted key, or false when nothing could be evicted. Must be called
// with the order lock held.
func (c *Cache) evictOne() (string, bool) {
	switch c.cfg.Policy {
	case PolicyLFU:
		return c.evictKey(c.minFrequencyKey())
	case PolicyARC:
		return c.evictKey(c.minScoreKey(c.arcScore))
	case PolicyTLRU:
		return c.evictKey(c.minScoreKey(c.tlruScore))
	case PolicyRandom:
		if c.order.len() == 0 {
			return "", false
		}
		key := c.order.removeAt(rand.IntN(c.order.len()))
		c.removeStored(key)
		return key, true
	default: // FIFO, LRU: victim is the queue head
		// Skip orphaned keys until a stored entry is removed.
		for {
			key, ok := c.order.popFront()
			if !ok {
				return "", false
			}
			if c.removeStored(key) {
				return key, true
			}
		}
	}
}

// evictKey removes key from both structures.
func (c *Cache) evictKey(key string, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	c.order.remove(key)
	c.removeStored(key)
	return key, true
}

// minFrequencyKey returns the key with the lowest frequency counter,
// found by a full scan of the order index. Ties keep the first key
// encountered. Keys missing from the store are skipped.
func (c *Cache) minFrequencyKey() (string, bool) {
	var (
		minKey  string
		minFreq = uint64(math.MaxUint64)
		found   bool
	)
	for _, key := range c.order.keys {
		e, ok := c.store.lookup(key)
		if !ok {
			continue
		}
		if f := e.freq(); !found || f < minFreq {
			minFreq = f
			minKey = key
			found = true
		}
	}
	return minKey, found
}

// minScoreKey returns the key with the lowest eviction score. Ties
// keep the first key encountered. Keys missing from the store are
// skipped.
func (c *Cache) minScoreKey(score func(e *entry, idx, total int) float64) (string, bool) {
	var (
		minKey   string
		minScore = math.MaxFloat64
		found    bool
	)
	total := c.order.len()
	for idx, key := range c.order.keys {
		e, ok := c.store.lookup(key)
		if !ok {
			continue
		}
		if s := score(e, idx, total); !found || s < minScore {
			minScore = s
			minKey = key
			found = true
		}
	}
	return minKey, found
}

// arcScore is frequency weighted by queue position: older positions
// carry a larger weight, so an untouched old entry scores zero and is
// evicted first, while a frequently hit entry survives scans.
func (c *Cache) arcScore(e *entry, idx, total int) float64 {
	return float64(e.freq()) * float64(total-idx)
}

// tlruScore extends arcScore with a frequency weight exponent and an
// age factor. The age factor decays linearly from 1 (fresh) to 0
// (at or past TTL), so stale entries score lowest. Without a TTL the
// factor is constant and TLRU degrades to ARC with a weight exponent.
func (c *Cache) tlruScore(e *entry, idx, total int) float64 {
	score := math.Pow(float64(e.freq()), c.cfg.FrequencyWeight) * float64(total-idx)
	if c.cfg.TTL > 0 {
		age := time.Since(e.insertedAt)
		factor := 1 - float64(age)/float64(c.cfg.TTL)
		if factor < 0 {
			factor = 0
		}
		score *= factor
	}
	return score
}
