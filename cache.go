package memo

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/memo/invalidation"
	"github.com/jmgilman/go/memo/stats"
)

// Cache binds one store, eviction policy, expiration guard, scope,
// and configuration for one cached computation. It is the unit a
// caller interacts with.
//
// Whether a Cache is safe for concurrent use depends on its scope:
// shared scopes are safe for use by multiple goroutines, while
// ScopeIsolated must be confined to one execution context.
type Cache struct {
	cfg   Config
	store store

	// orderMu serializes every mutation that touches the order index:
	// insert, evict, expire, and invalidate. The limit check, victim
	// selection, eviction, and the final insert for a new key all
	// execute while it is held continuously; splitting the check from
	// the insert would reopen the race where concurrent inserts
	// jointly exceed the limit.
	orderMu  sync.Mutex
	order    orderIndex
	memBytes uint64 // aggregate estimated footprint, guarded by orderMu

	counters *stats.Counters
	logger   *slog.Logger
}

// New creates a cache from the given configuration. Validation
// happens once, here: a malformed configuration fails fast before the
// cache is usable, never as a per-call error.
//
// A named cache registers with the process-wide stats and
// invalidation registries; unnamed caches keep private counters and
// skip registration.
func New(cfg Config) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "invalid cache config")
	}
	cfg.SetDefaults()

	c := &Cache{
		cfg:    cfg,
		store:  newStore(cfg.Scope),
		logger: cfg.Logger,
	}

	if cfg.Name != "" {
		c.counters = stats.Register(cfg.Name)
		reg := invalidation.Default()
		reg.Register(cfg.Name, invalidation.Metadata{
			Tags:         cfg.Tags,
			Events:       cfg.Events,
			Dependencies: cfg.Dependencies,
		})
		reg.RegisterClearFunc(cfg.Name, c.Clear)
		reg.RegisterCheckFunc(cfg.Name, func(pred func(string) bool) {
			c.InvalidateIf(pred)
		})
	} else {
		c.counters = stats.NewCounters()
	}

	return c, nil
}

// GetOrCompute returns the stored value for key when a valid entry
// exists, and otherwise invokes compute, stores an accepted result,
// and returns it.
//
// A compute failure is propagated unchanged to the caller and is
// never cached; each subsequent call re-executes. A successful result
// is stored only if the CacheIf predicate (when configured) accepts
// it, and only if its estimated size fits a configured memory budget.
//
// Concurrent first-time calls for the same key may each run compute;
// exactly one computed value wins storage. The context is passed to
// compute only — the engine itself has no cancellation points.
func (c *Cache) GetOrCompute(ctx context.Context, key string, compute func(context.Context) (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	// The storage decision runs once, before any lock is taken.
	if c.cfg.CacheIf != nil && !c.cfg.CacheIf(key, value) {
		return value, nil
	}
	c.insertIfAbsent(key, value)
	return value, nil
}

// Get returns the stored value for key if a valid entry exists. An
// expired entry, or one rejected by the InvalidateOn check, is
// removed and reported as a miss. Hits update the policy's access
// bookkeeping and the hit counter; misses update the miss counter.
func (c *Cache) Get(key string) (any, bool) {
	e, ok := c.store.lookup(key)
	if !ok {
		c.counters.RecordMiss()
		return nil, false
	}

	if e.expired(c.cfg.TTL) {
		c.removeEntry(key, e)
		c.logger.Debug("entry expired", slog.String("cache", c.cfg.Name), slog.String("key", key))
		c.counters.RecordMiss()
		return nil, false
	}

	if c.cfg.InvalidateOn != nil && c.cfg.InvalidateOn(key, e.value) {
		c.removeEntry(key, e)
		c.logger.Debug("entry invalidated by check", slog.String("cache", c.cfg.Name), slog.String("key", key))
		c.counters.RecordMiss()
		return nil, false
	}

	switch c.cfg.Policy {
	case PolicyLRU, PolicyARC, PolicyTLRU:
		c.orderMu.Lock()
		c.applyHit(key, e)
		c.orderMu.Unlock()
	default:
		// FIFO, Random, and LFU hits touch only atomic entry fields,
		// so the order lock is not needed.
		c.applyHit(key, e)
	}
	c.counters.RecordHit()
	return e.value, true
}

// Insert stores a value under key, replacing any existing entry and
// moving the key to the most-recent position. It enforces the memory
// budget and entry limit like a miss-path insert. Most callers want
// GetOrCompute; Insert is the lower-level building block.
func (c *Cache) Insert(key string, value any) {
	size, ok := c.estimate(key, value)
	if !ok {
		return
	}

	c.orderMu.Lock()
	defer c.orderMu.Unlock()

	if prev, replaced := c.store.insert(key, newEntry(value, size)); replaced {
		c.memBytes -= prev.size
		c.order.remove(key)
	}
	c.order.pushBack(key)
	c.memBytes += size
	c.enforceLimits()
}

// insertIfAbsent is the miss-path insert. After computing, the writer
// re-checks under the order lock whether the key already exists; if
// so it refreshes only the access bookkeeping and discards its own
// value, so concurrent misses can never double-count order entries or
// overshoot the limit.
func (c *Cache) insertIfAbsent(key string, value any) {
	size, ok := c.estimate(key, value)
	if !ok {
		return
	}

	c.orderMu.Lock()
	defer c.orderMu.Unlock()

	if e, ok := c.store.lookup(key); ok {
		c.applyHit(key, e)
		return
	}

	c.store.insert(key, newEntry(value, size))
	c.order.pushBack(key)
	c.memBytes += size
	c.enforceLimits()
}

// estimate returns the value's estimated size when a memory budget is
// configured. It reports false when the value alone exceeds the
// budget: such a value is never stored and triggers no eviction,
// which prevents unbounded eviction looping.
func (c *Cache) estimate(key string, value any) (uint64, bool) {
	if c.cfg.MaxMemory == 0 {
		return 0, true
	}
	size := c.cfg.Estimator(value)
	if size > c.cfg.MaxMemory {
		c.logger.Debug("value exceeds memory budget, not stored",
			slog.String("cache", c.cfg.Name),
			slog.String("key", key),
			slog.Uint64("size", size),
			slog.Uint64("max_memory", c.cfg.MaxMemory))
		return 0, false
	}
	return size, true
}

// enforceLimits evicts until the memory budget and then the entry
// limit are satisfied. Must be called with the order lock held.
func (c *Cache) enforceLimits() {
	if c.cfg.MaxMemory > 0 {
		for c.memBytes > c.cfg.MaxMemory {
			key, ok := c.evictOne()
			if !ok {
				break
			}
			c.logger.Debug("evicted entry",
				slog.String("cache", c.cfg.Name),
				slog.String("key", key),
				slog.String("reason", "memory"))
		}
	}
	if c.cfg.Limit > 0 {
		for c.order.len() > c.cfg.Limit {
			key, ok := c.evictOne()
			if !ok {
				break
			}
			c.logger.Debug("evicted entry",
				slog.String("cache", c.cfg.Name),
				slog.String("key", key),
				slog.String("reason", "limit"))
		}
	}
}

// removeStored deletes key from the store and releases its memory
// accounting. Must be called with the order lock held.
func (c *Cache) removeStored(key string) bool {
	e, ok := c.store.remove(key)
	if ok {
		c.memBytes -= e.size
	}
	return ok
}

// removeEntry deletes key from both the store and the order index,
// but only while the store still holds the observed entry: a
// concurrent insert may have replaced it with a fresh one, which must
// survive. The order index removal is unconditional so expiration
// cannot leave an orphan even when no limit is configured.
func (c *Cache) removeEntry(key string, observed *entry) {
	c.orderMu.Lock()
	defer c.orderMu.Unlock()
	if cur, ok := c.store.lookup(key); !ok || cur != observed {
		return
	}
	c.removeStored(key)
	c.order.remove(key)
}

// InvalidateIf removes every entry whose key satisfies pred and
// returns the number removed.
func (c *Cache) InvalidateIf(pred func(key string) bool) int {
	c.orderMu.Lock()
	defer c.orderMu.Unlock()

	removed := 0
	kept := c.order.keys[:0]
	for _, key := range c.order.keys {
		if pred(key) {
			c.removeStored(key)
			removed++
			continue
		}
		kept = append(kept, key)
	}
	c.order.keys = kept
	if removed > 0 {
		c.logger.Debug("invalidated entries",
			slog.String("cache", c.cfg.Name),
			slog.Int("removed", removed))
	}
	return removed
}

// Clear removes all entries. Statistics are not reset; use the stats
// registry for that.
func (c *Cache) Clear() {
	c.orderMu.Lock()
	defer c.orderMu.Unlock()
	c.store.clear()
	c.order.reset()
	c.memBytes = 0
	c.logger.Debug("cache cleared", slog.String("cache", c.cfg.Name))
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	return c.store.len()
}

// Name returns the cache's registered name, or "" for an unnamed
// cache.
func (c *Cache) Name() string {
	return c.cfg.Name
}

// Stats returns the cache's live hit/miss counters. For named caches
// the same counters are reachable by name through the stats registry.
func (c *Cache) Stats() *stats.Counters {
	return c.counters
}
