// Package memo provides an in-process memoization and caching engine.
//
// A Cache binds a key-value store, an eviction policy, optional TTL
// expiration, and a sharing scope for one cached computation. Callers
// interact through GetOrCompute, which returns a previously stored
// result when valid and otherwise invokes the computation, validates
// the result, stores it, and returns it.
//
// # Basic Usage
//
// Create a cache and memoize a computation:
//
//	cache, err := memo.New(memo.Config{
//		Name:   "fibonacci",
//		Limit:  1000,
//		Policy: memo.PolicyLRU,
//		Scope:  memo.ScopeSharedLocked,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	v, err := cache.GetOrCompute(ctx, memo.Key(40), func(ctx context.Context) (any, error) {
//		return fib(40), nil
//	})
//
// # Eviction Policies
//
// Six policies are supported, trading bookkeeping cost against hit
// behavior: FIFO and Random are O(1) everywhere, LRU and ARC pay O(n)
// on hits for reordering, LFU scans for the minimum frequency on
// eviction, and TLRU blends frequency, recency, and age into a single
// score. See the Policy constants for details.
//
// # Scopes
//
// A cache operates in one of three scopes. ScopeIsolated performs no
// synchronization and must be confined to a single goroutine.
// ScopeSharedLocked guards the store with a reader-writer lock, so
// concurrent lookups proceed in parallel while writes are exclusive.
// ScopeSharedLockFree backs the store with a concurrent map for
// non-blocking lookups; order bookkeeping remains serialized in every
// scope because its mutation is inherently sequential.
//
// # Memory Budgets
//
// When Config.MaxMemory is set, each insert evicts entries (selected
// by the active policy) until the aggregate estimated footprint fits
// the budget. A value whose estimated size alone exceeds the budget
// is never stored; GetOrCompute still returns it to the caller.
//
// # Registries
//
// Named caches register with two process-wide registries: the
// stats registry (github.com/jmgilman/go/memo/stats) exposes hit and
// miss counters queryable by name, and the invalidation registry
// (github.com/jmgilman/go/memo/invalidation) clears caches by name,
// tag, event, dependency, or key predicate.
//
// # Error Handling
//
// The engine never transforms a computation's own success or failure;
// a failed computation is propagated unchanged and never cached.
// Configuration errors fail New before the cache is usable.
// Registry operations on unknown names report false or zero rather
// than failing, since "nothing to invalidate" is a normal outcome.
//
// # Limitations
//
// Concurrent misses for the same key may each run the computation;
// only one computed value wins storage. The engine does not coalesce
// these computations, does not cache across processes, and does not
// persist entries across restarts.
package memo
