package memo

import (
	"log/slog"
	"time"
)

// Option configures a cache built with NewWithOptions. Options that
// parse string-typed inputs return the parse error, which fails
// construction.
type Option func(*Config) error

// NewWithOptions creates a cache from functional options applied to a
// zero Config. It is equivalent to filling a Config by hand and
// calling New, and exists for configuration layers that assemble
// settings incrementally or carry them as strings.
//
// Example:
//
//	cache, err := memo.NewWithOptions(
//		memo.WithName("users"),
//		memo.WithLimit(1000),
//		memo.WithPolicyString("lru"),
//		memo.WithMaxMemoryString("100MB"),
//	)
func NewWithOptions(opts ...Option) (*Cache, error) {
	var cfg Config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return New(cfg)
}

// WithName registers the cache under name in the stats and
// invalidation registries.
func WithName(name string) Option {
	return func(c *Config) error {
		c.Name = name
		return nil
	}
}

// WithLimit sets the maximum number of entries.
func WithLimit(limit int) Option {
	return func(c *Config) error {
		c.Limit = limit
		return nil
	}
}

// WithMaxMemory sets the memory budget in bytes.
func WithMaxMemory(bytes uint64) Option {
	return func(c *Config) error {
		c.MaxMemory = bytes
		return nil
	}
}

// WithMaxMemoryString sets the memory budget from a human-readable
// size such as "100MB" or "1.5GiB".
func WithMaxMemoryString(s string) Option {
	return func(c *Config) error {
		n, err := ParseMemorySize(s)
		if err != nil {
			return err
		}
		c.MaxMemory = n
		return nil
	}
}

// WithPolicy sets the eviction policy.
func WithPolicy(p Policy) Option {
	return func(c *Config) error {
		c.Policy = p
		return nil
	}
}

// WithPolicyString sets the eviction policy by name ("fifo", "lru",
// "lfu", "arc", "random", or "tlru").
func WithPolicyString(s string) Option {
	return func(c *Config) error {
		p, err := ParsePolicy(s)
		if err != nil {
			return err
		}
		c.Policy = p
		return nil
	}
}

// WithFrequencyWeight tunes PolicyTLRU: values below 1 emphasize
// recency, values above 1 emphasize frequency.
func WithFrequencyWeight(w float64) Option {
	return func(c *Config) error {
		c.FrequencyWeight = w
		return nil
	}
}

// WithTTL sets the time-to-live for entries.
func WithTTL(ttl time.Duration) Option {
	return func(c *Config) error {
		c.TTL = ttl
		return nil
	}
}

// WithTTLString sets the time-to-live from a duration string such as
// "30s" or "5m".
func WithTTLString(s string) Option {
	return func(c *Config) error {
		ttl, err := ParseTTL(s)
		if err != nil {
			return err
		}
		c.TTL = ttl
		return nil
	}
}

// WithScope sets the sharing domain of the cache.
func WithScope(s Scope) Option {
	return func(c *Config) error {
		c.Scope = s
		return nil
	}
}

// WithScopeString sets the scope by name ("shared-locked",
// "shared-lockfree", or "isolated").
func WithScopeString(s string) Option {
	return func(c *Config) error {
		scope, err := ParseScope(s)
		if err != nil {
			return err
		}
		c.Scope = scope
		return nil
	}
}

// WithTags attaches invalidation tags to a named cache.
func WithTags(tags ...string) Option {
	return func(c *Config) error {
		c.Tags = append(c.Tags, tags...)
		return nil
	}
}

// WithEvents attaches invalidation events to a named cache.
func WithEvents(events ...string) Option {
	return func(c *Config) error {
		c.Events = append(c.Events, events...)
		return nil
	}
}

// WithDependencies declares the producers a named cache derives from.
func WithDependencies(names ...string) Option {
	return func(c *Config) error {
		c.Dependencies = append(c.Dependencies, names...)
		return nil
	}
}

// WithInvalidateOn sets a per-lookup check. Returning true treats the
// access as a miss and recomputes.
func WithInvalidateOn(pred func(key string, value any) bool) Option {
	return func(c *Config) error {
		c.InvalidateOn = pred
		return nil
	}
}

// WithCacheIf sets the storage predicate evaluated after a successful
// computation.
func WithCacheIf(pred func(key string, value any) bool) Option {
	return func(c *Config) error {
		c.CacheIf = pred
		return nil
	}
}

// WithEstimator overrides the built-in value size estimation used for
// memory-budgeted eviction.
func WithEstimator(estimate func(value any) uint64) Option {
	return func(c *Config) error {
		c.Estimator = estimate
		return nil
	}
}

// WithLogger sets the logger receiving debug-level records for
// evictions, expirations, and invalidations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}
