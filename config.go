package memo

import (
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jmgilman/go/errors"
)

// Policy selects how a cache chooses an eviction victim when a
// capacity or memory limit is reached.
type Policy int

const (
	// PolicyFIFO evicts entries in insertion order. Hits do not change
	// an entry's position. O(1) for all operations.
	PolicyFIFO Policy = iota

	// PolicyLRU evicts the least recently used entry. Hits move the
	// entry to the most-recent position, which costs O(n).
	PolicyLRU

	// PolicyLFU evicts the entry with the lowest access frequency,
	// found by a full scan at eviction time. Hits are O(1).
	PolicyLFU

	// PolicyARC blends recency and frequency: the eviction score is
	// frequency multiplied by a positional recency weight, and the
	// lowest score is evicted. Scan-resistant against sequential
	// access patterns. O(n) hits and evictions.
	PolicyARC

	// PolicyRandom evicts an arbitrary entry with no per-access
	// bookkeeping. O(1) for all operations.
	PolicyRandom

	// PolicyTLRU is a time-aware LRU: the eviction score is
	// frequency^weight × position × age factor. Without a configured
	// TTL the age factor is constant and TLRU behaves like ARC.
	PolicyTLRU
)

// String returns the lowercase policy name accepted by ParsePolicy.
func (p Policy) String() string {
	switch p {
	case PolicyFIFO:
		return "fifo"
	case PolicyLRU:
		return "lru"
	case PolicyLFU:
		return "lfu"
	case PolicyARC:
		return "arc"
	case PolicyRandom:
		return "random"
	case PolicyTLRU:
		return "tlru"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a policy name to a Policy. Matching is
// case-insensitive. Unrecognized names are rejected so that malformed
// configuration fails at construction rather than silently defaulting.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "fifo":
		return PolicyFIFO, nil
	case "lru":
		return PolicyLRU, nil
	case "lfu":
		return PolicyLFU, nil
	case "arc":
		return PolicyARC, nil
	case "random":
		return PolicyRandom, nil
	case "tlru":
		return PolicyTLRU, nil
	default:
		return 0, errors.Newf(errors.CodeInvalidInput, "unknown eviction policy %q", s)
	}
}

// Scope determines the sharing domain of a cache instance.
type Scope int

const (
	// ScopeSharedLocked shares the cache across goroutines with a
	// reader-writer lock: concurrent lookups, exclusive writes.
	ScopeSharedLocked Scope = iota

	// ScopeSharedLockFree shares the cache across goroutines with a
	// concurrent map supporting non-blocking lookups and inserts.
	ScopeSharedLockFree

	// ScopeIsolated performs no synchronization. The cache must be
	// owned exclusively by one execution context (one goroutine);
	// operations never block or contend.
	ScopeIsolated
)

// String returns the scope name accepted by ParseScope.
func (s Scope) String() string {
	switch s {
	case ScopeSharedLocked:
		return "shared-locked"
	case ScopeSharedLockFree:
		return "shared-lockfree"
	case ScopeIsolated:
		return "isolated"
	default:
		return "unknown"
	}
}

// ParseScope converts a scope name to a Scope. Matching is
// case-insensitive.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(s) {
	case "shared-locked", "shared_locked", "global":
		return ScopeSharedLocked, nil
	case "shared-lockfree", "shared_lockfree", "lockfree":
		return ScopeSharedLockFree, nil
	case "isolated", "local":
		return ScopeIsolated, nil
	default:
		return 0, errors.Newf(errors.CodeInvalidInput, "unknown cache scope %q", s)
	}
}

// ParseTTL converts a duration string such as "30s" or "5m" to a
// time-to-live. Negative durations are rejected.
func ParseTTL(s string) (time.Duration, error) {
	ttl, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, errors.CodeInvalidInput, "invalid ttl %q", s)
	}
	if ttl < 0 {
		return 0, errors.Newf(errors.CodeInvalidInput, "ttl must not be negative, got %s", ttl)
	}
	return ttl, nil
}

// ParseMemorySize converts a human-readable size such as "100MB" or
// "1.5GiB" to a byte count. It accepts anything humanize.ParseBytes
// accepts and is intended for configuration layers that carry memory
// limits as strings.
func ParseMemorySize(s string) (uint64, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, errors.Wrapf(err, errors.CodeInvalidInput, "invalid memory size %q", s)
	}
	return n, nil
}

// Config holds the configuration for one cache instance. A zero
// Config is valid: an unnamed, unbounded FIFO cache in the
// shared-locked scope.
type Config struct {
	// Name identifies the cache in the stats and invalidation
	// registries. Unnamed caches skip registration.
	Name string

	// Limit is the maximum number of entries. Zero means unlimited.
	Limit int

	// MaxMemory is the maximum aggregate estimated footprint of all
	// stored values, in bytes. Zero means unlimited. Use
	// ParseMemorySize to accept human-readable sizes.
	MaxMemory uint64

	// Policy selects the eviction victim when a limit is reached.
	Policy Policy

	// FrequencyWeight tunes PolicyTLRU: values below 1 emphasize
	// recency, values above 1 emphasize frequency. Zero means the
	// balanced default of 1.0. Ignored by other policies.
	FrequencyWeight float64

	// TTL is the time-to-live for entries. Zero means entries never
	// expire. Expired entries are removed lazily on lookup.
	TTL time.Duration

	// Scope determines the sharing domain and synchronization
	// discipline of the cache.
	Scope Scope

	// Tags, Events, and Dependencies attach invalidation metadata to
	// a named cache. They have no effect on unnamed caches.
	Tags         []string
	Events       []string
	Dependencies []string

	// InvalidateOn, when set, is evaluated on every lookup. Returning
	// true treats the access as a miss: the stored entry is removed
	// and the computation re-runs.
	InvalidateOn func(key string, value any) bool

	// CacheIf, when set, decides after a successful computation
	// whether the result is stored. It runs once, before any lock is
	// taken for insertion. A computation failure is never stored
	// regardless of this predicate.
	CacheIf func(key string, value any) bool

	// Estimator overrides the built-in value size estimation used for
	// memory-budgeted eviction. See EstimateSize for the default.
	Estimator func(value any) uint64

	// Logger receives debug-level records for evictions, expirations,
	// and invalidations. Nil disables logging.
	Logger *slog.Logger
}

// Validate checks that the configuration is well formed. It is called
// by New; validation happens once, at construction, not per call.
func (c *Config) Validate() error {
	if c.Limit < 0 {
		return errors.Newf(errors.CodeInvalidConfig, "limit must not be negative, got %d", c.Limit)
	}
	if c.TTL < 0 {
		return errors.Newf(errors.CodeInvalidConfig, "ttl must not be negative, got %s", c.TTL)
	}
	if c.FrequencyWeight < 0 {
		return errors.Newf(errors.CodeInvalidConfig, "frequency weight must not be negative, got %g", c.FrequencyWeight)
	}
	if c.Policy < PolicyFIFO || c.Policy > PolicyTLRU {
		return errors.Newf(errors.CodeInvalidConfig, "unknown eviction policy %d", c.Policy)
	}
	if c.Scope < ScopeSharedLocked || c.Scope > ScopeIsolated {
		return errors.Newf(errors.CodeInvalidConfig, "unknown cache scope %d", c.Scope)
	}
	return nil
}

// SetDefaults applies default values to unset fields.
func (c *Config) SetDefaults() {
	if c.FrequencyWeight == 0 {
		c.FrequencyWeight = 1.0
	}
	if c.Estimator == nil {
		c.Estimator = EstimateSize
	}
	if c.Logger == nil {
		c.Logger = nopLogger()
	}
}
