// Package invalidation provides a process-wide registry for
// invalidating caches beyond TTL expiration.
//
// Caches register under a name together with invalidation metadata:
// tags group related caches, events tie caches to application events,
// and dependencies declare that a cache derives from another named
// computation. Invalidating a tag, event, or dependency clears every
// registered cache whose metadata contains it.
//
// Dependency propagation is single-level: invalidating a producer
// clears its direct dependents only and does not cascade further.
//
// The registry holds callbacks, not caches: it references a cache by
// name and the clear/check functions the cache supplied, so the
// registry never owns cache state. Operations on unknown names return
// false or zero, since "nothing to invalidate" is a normal outcome.
package invalidation

import "sync"

// Metadata describes how a cache participates in invalidation.
type Metadata struct {
	// Tags group related caches for bulk invalidation.
	Tags []string
	// Events name application events that clear this cache.
	Events []string
	// Dependencies name the producers this cache derives from.
	Dependencies []string
}

// IsEmpty reports whether the metadata carries no invalidation rules.
func (m Metadata) IsEmpty() bool {
	return len(m.Tags) == 0 && len(m.Events) == 0 && len(m.Dependencies) == 0
}

// Registry maps tags, events, and dependencies to cache names and
// holds per-cache invalidation callbacks. It is safe for concurrent
// use; map-level additions use the registry's own lock while entry
// removal is delegated to the owning cache through its callbacks.
type Registry struct {
	mu sync.RWMutex

	tagToCaches   map[string]map[string]struct{}
	eventToCaches map[string]map[string]struct{}
	depToCaches   map[string]map[string]struct{}
	metadata      map[string]Metadata

	// clearFns clear a whole cache; checkFns apply a key predicate to
	// one cache, removing matching entries.
	clearFns map[string]func()
	checkFns map[string]func(pred func(key string) bool)
}

// NewRegistry returns an empty registry. Most callers use the
// process-wide registry via Default and the package-level functions.
func NewRegistry() *Registry {
	return &Registry{
		tagToCaches:   make(map[string]map[string]struct{}),
		eventToCaches: make(map[string]map[string]struct{}),
		depToCaches:   make(map[string]map[string]struct{}),
		metadata:      make(map[string]Metadata),
		clearFns:      make(map[string]func()),
		checkFns:      make(map[string]func(pred func(key string) bool)),
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry, creating it on first
// use.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register records a cache's invalidation metadata under its name.
// Re-registering a name adds to the tag, event, and dependency
// mappings and replaces the stored metadata.
func (r *Registry) Register(name string, meta Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tag := range meta.Tags {
		addName(r.tagToCaches, tag, name)
	}
	for _, event := range meta.Events {
		addName(r.eventToCaches, event, name)
	}
	for _, dep := range meta.Dependencies {
		addName(r.depToCaches, dep, name)
	}
	r.metadata[name] = meta
}

func addName(m map[string]map[string]struct{}, key, name string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]struct{})
		m[key] = set
	}
	set[name] = struct{}{}
}

// RegisterClearFunc records the function that clears the named cache.
// Re-registration replaces the previous function.
func (r *Registry) RegisterClearFunc(name string, clear func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearFns[name] = clear
}

// RegisterCheckFunc records the function that applies a key predicate
// to the named cache, removing entries whose key matches.
// Re-registration replaces the previous function.
func (r *Registry) RegisterCheckFunc(name string, check func(pred func(key string) bool)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkFns[name] = check
}

// InvalidateCache clears the named cache, reporting whether it was
// registered.
func (r *Registry) InvalidateCache(name string) bool {
	r.mu.RLock()
	clear, ok := r.clearFns[name]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	clear()
	return true
}

// InvalidateByTag clears every cache whose metadata contains tag and
// returns the number cleared.
func (r *Registry) InvalidateByTag(tag string) int {
	return r.invalidateNames(r.namesFor(r.tagToCaches, tag))
}

// InvalidateByEvent clears every cache whose metadata contains event
// and returns the number cleared.
func (r *Registry) InvalidateByEvent(event string) int {
	return r.invalidateNames(r.namesFor(r.eventToCaches, event))
}

// InvalidateByDependency clears every cache that declared a
// dependency on the named producer and returns the number cleared.
// Propagation is single-level: dependents of the cleared caches are
// not themselves cleared.
func (r *Registry) InvalidateByDependency(producer string) int {
	return r.invalidateNames(r.namesFor(r.depToCaches, producer))
}

// InvalidateWith removes entries in the named cache whose key
// satisfies pred, reporting whether the cache was registered.
func (r *Registry) InvalidateWith(name string, pred func(key string) bool) bool {
	r.mu.RLock()
	check, ok := r.checkFns[name]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	check(pred)
	return true
}

// InvalidateAllWith applies pred across every registered cache,
// removing entries whose (cache name, key) pair satisfies it. Returns
// the number of caches the predicate was applied to.
func (r *Registry) InvalidateAllWith(pred func(cacheName, key string) bool) int {
	r.mu.RLock()
	checks := make(map[string]func(func(string) bool), len(r.checkFns))
	for name, check := range r.checkFns {
		checks[name] = check
	}
	r.mu.RUnlock()

	for name, check := range checks {
		boundName := name
		check(func(key string) bool { return pred(boundName, key) })
	}
	return len(checks)
}

// CachesByTag returns the names of caches registered with tag.
func (r *Registry) CachesByTag(tag string) []string {
	return r.namesFor(r.tagToCaches, tag)
}

// CachesByEvent returns the names of caches registered with event.
func (r *Registry) CachesByEvent(event string) []string {
	return r.namesFor(r.eventToCaches, event)
}

// DependentCaches returns the names of caches that declared a
// dependency on the named producer.
func (r *Registry) DependentCaches(producer string) []string {
	return r.namesFor(r.depToCaches, producer)
}

// Clear removes every registration. Intended for test isolation; it
// does not touch entries stored in the caches themselves.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tagToCaches = make(map[string]map[string]struct{})
	r.eventToCaches = make(map[string]map[string]struct{})
	r.depToCaches = make(map[string]map[string]struct{})
	r.metadata = make(map[string]Metadata)
	r.clearFns = make(map[string]func())
	r.checkFns = make(map[string]func(pred func(key string) bool))
}

func (r *Registry) namesFor(m map[string]map[string]struct{}, key string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := m[key]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	return names
}

func (r *Registry) invalidateNames(names []string) int {
	r.mu.RLock()
	clears := make([]func(), 0, len(names))
	for _, name := range names {
		if clear, ok := r.clearFns[name]; ok {
			clears = append(clears, clear)
		}
	}
	r.mu.RUnlock()

	// Callbacks run outside the registry lock: a clear takes the
	// owning cache's order lock, and holding both invites deadlock.
	for _, clear := range clears {
		clear()
	}
	return len(clears)
}
