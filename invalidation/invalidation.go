package invalidation

// Package-level functions delegate to the process-wide registry
// returned by Default.

// Register records a cache's invalidation metadata in the default
// registry.
func Register(name string, meta Metadata) {
	Default().Register(name, meta)
}

// InvalidateCache clears the named cache in the default registry.
func InvalidateCache(name string) bool {
	return Default().InvalidateCache(name)
}

// InvalidateByTag clears every cache registered with tag in the
// default registry.
func InvalidateByTag(tag string) int {
	return Default().InvalidateByTag(tag)
}

// InvalidateByEvent clears every cache registered with event in the
// default registry.
func InvalidateByEvent(event string) int {
	return Default().InvalidateByEvent(event)
}

// InvalidateByDependency clears every direct dependent of the named
// producer in the default registry.
func InvalidateByDependency(producer string) int {
	return Default().InvalidateByDependency(producer)
}

// InvalidateWith removes matching entries from the named cache in the
// default registry.
func InvalidateWith(name string, pred func(key string) bool) bool {
	return Default().InvalidateWith(name, pred)
}

// InvalidateAllWith removes matching entries from every cache in the
// default registry.
func InvalidateAllWith(pred func(cacheName, key string) bool) int {
	return Default().InvalidateAllWith(pred)
}

// CachesByTag returns the names of caches registered with tag in the
// default registry.
func CachesByTag(tag string) []string {
	return Default().CachesByTag(tag)
}

// CachesByEvent returns the names of caches registered with event in
// the default registry.
func CachesByEvent(event string) []string {
	return Default().CachesByEvent(event)
}

// DependentCaches returns the names of caches that declared a
// dependency on the named producer in the default registry.
func DependentCaches(producer string) []string {
	return Default().DependentCaches(producer)
}

// Clear removes every registration from the default registry.
// Intended for test isolation.
func Clear() {
	Default().Clear()
}
