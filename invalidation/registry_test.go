package invalidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache stands in for a cache instance: it records clears and
// applies key predicates to a key set, the way a real cache's
// registered callbacks do.
type fakeCache struct {
	cleared int
	keys    map[string]bool
}

func newFakeCache(keys ...string) *fakeCache {
	f := &fakeCache{keys: make(map[string]bool)}
	for _, k := range keys {
		f.keys[k] = true
	}
	return f
}

func (f *fakeCache) register(r *Registry, name string, meta Metadata) {
	r.Register(name, meta)
	r.RegisterClearFunc(name, func() {
		f.cleared++
		f.keys = make(map[string]bool)
	})
	r.RegisterCheckFunc(name, func(pred func(string) bool) {
		for k := range f.keys {
			if pred(k) {
				delete(f.keys, k)
			}
		}
	})
}

func TestMetadataIsEmpty(t *testing.T) {
	assert.True(t, Metadata{}.IsEmpty())
	assert.False(t, Metadata{Tags: []string{"t"}}.IsEmpty())
	assert.False(t, Metadata{Events: []string{"e"}}.IsEmpty())
	assert.False(t, Metadata{Dependencies: []string{"d"}}.IsEmpty())
}

func TestInvalidateCache(t *testing.T) {
	r := NewRegistry()
	f := newFakeCache("a", "b")
	f.register(r, "users", Metadata{})

	assert.True(t, r.InvalidateCache("users"))
	assert.Equal(t, 1, f.cleared)
	assert.Empty(t, f.keys)

	assert.False(t, r.InvalidateCache("unknown"), "unknown names report false, not an error")
}

func TestInvalidateByTag(t *testing.T) {
	r := NewRegistry()
	a := newFakeCache("k")
	a.register(r, "a", Metadata{Tags: []string{"shared", "only-a"}})
	b := newFakeCache("k")
	b.register(r, "b", Metadata{Tags: []string{"shared"}})
	c := newFakeCache("k")
	c.register(r, "c", Metadata{Tags: []string{"other"}})

	assert.Equal(t, 2, r.InvalidateByTag("shared"))
	assert.Equal(t, 1, a.cleared)
	assert.Equal(t, 1, b.cleared)
	assert.Equal(t, 0, c.cleared)

	assert.Equal(t, 1, r.InvalidateByTag("only-a"))
	assert.Equal(t, 0, r.InvalidateByTag("unknown"))
}

func TestInvalidateByEvent(t *testing.T) {
	r := NewRegistry()
	a := newFakeCache("k")
	a.register(r, "a", Metadata{Events: []string{"login"}})
	b := newFakeCache("k")
	b.register(r, "b", Metadata{Events: []string{"login", "logout"}})

	assert.Equal(t, 2, r.InvalidateByEvent("login"))
	assert.Equal(t, 1, r.InvalidateByEvent("logout"))
	assert.Equal(t, 0, r.InvalidateByEvent("signup"))
}

func TestInvalidateByDependency(t *testing.T) {
	r := NewRegistry()

	// "profile" and "feed" derive from "users"; "audit" derives from
	// "feed". Propagation is single-level: invalidating "users" must
	// not cascade to "audit".
	profile := newFakeCache("k")
	profile.register(r, "profile", Metadata{Dependencies: []string{"users"}})
	feed := newFakeCache("k")
	feed.register(r, "feed", Metadata{Dependencies: []string{"users"}})
	audit := newFakeCache("k")
	audit.register(r, "audit", Metadata{Dependencies: []string{"feed"}})

	assert.Equal(t, 2, r.InvalidateByDependency("users"))
	assert.Equal(t, 1, profile.cleared)
	assert.Equal(t, 1, feed.cleared)
	assert.Equal(t, 0, audit.cleared, "propagation does not cascade")

	assert.Equal(t, 0, r.InvalidateByDependency("unknown"))
}

func TestInvalidateWith(t *testing.T) {
	r := NewRegistry()
	f := newFakeCache("user:1", "user:2", "group:1")
	f.register(r, "users", Metadata{})

	ok := r.InvalidateWith("users", func(key string) bool {
		return key == "user:1"
	})
	require.True(t, ok)
	assert.Equal(t, map[string]bool{"user:2": true, "group:1": true}, f.keys)

	assert.False(t, r.InvalidateWith("unknown", func(string) bool { return true }))
}

func TestInvalidateAllWith(t *testing.T) {
	r := NewRegistry()
	a := newFakeCache("stale", "fresh")
	a.register(r, "a", Metadata{})
	b := newFakeCache("stale")
	b.register(r, "b", Metadata{})

	count := r.InvalidateAllWith(func(cacheName, key string) bool {
		return key == "stale"
	})
	assert.Equal(t, 2, count, "predicate applied to every registered cache")
	assert.Equal(t, map[string]bool{"fresh": true}, a.keys)
	assert.Empty(t, b.keys)
}

func TestInvalidateAllWithSeesCacheName(t *testing.T) {
	r := NewRegistry()
	a := newFakeCache("k")
	a.register(r, "a", Metadata{})
	b := newFakeCache("k")
	b.register(r, "b", Metadata{})

	r.InvalidateAllWith(func(cacheName, _ string) bool {
		return cacheName == "a"
	})
	assert.Empty(t, a.keys)
	assert.Equal(t, map[string]bool{"k": true}, b.keys)
}

func TestRegistryIntrospection(t *testing.T) {
	r := NewRegistry()
	a := newFakeCache()
	a.register(r, "a", Metadata{Tags: []string{"t"}, Events: []string{"e"}, Dependencies: []string{"p"}})
	b := newFakeCache()
	b.register(r, "b", Metadata{Tags: []string{"t"}})

	assert.ElementsMatch(t, []string{"a", "b"}, r.CachesByTag("t"))
	assert.ElementsMatch(t, []string{"a"}, r.CachesByEvent("e"))
	assert.ElementsMatch(t, []string{"a"}, r.DependentCaches("p"))
	assert.Empty(t, r.CachesByTag("unknown"))
}

func TestReRegistrationReplacesCallbacks(t *testing.T) {
	r := NewRegistry()
	old := newFakeCache("k")
	old.register(r, "users", Metadata{Tags: []string{"t"}})
	fresh := newFakeCache("k")
	fresh.register(r, "users", Metadata{Tags: []string{"t"}})

	assert.Equal(t, 1, r.InvalidateByTag("t"), "one name, one clear")
	assert.Equal(t, 0, old.cleared)
	assert.Equal(t, 1, fresh.cleared)
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry()
	f := newFakeCache("k")
	f.register(r, "users", Metadata{Tags: []string{"t"}})

	r.Clear()
	assert.False(t, r.InvalidateCache("users"))
	assert.Equal(t, 0, r.InvalidateByTag("t"))
	assert.Equal(t, map[string]bool{"k": true}, f.keys, "clearing the registry does not touch cache entries")
}

func TestDefaultRegistryPackageFunctions(t *testing.T) {
	f := newFakeCache("k1", "k2")
	f.register(Default(), "invalidation-test-default", Metadata{Tags: []string{"invalidation-test-tag"}})

	assert.Equal(t, 1, InvalidateByTag("invalidation-test-tag"))
	assert.Equal(t, 1, f.cleared)

	f.keys["k3"] = true
	assert.True(t, InvalidateWith("invalidation-test-default", func(key string) bool {
		return key == "k3"
	}))
	assert.Empty(t, f.keys)

	assert.True(t, InvalidateCache("invalidation-test-default"))
	assert.False(t, InvalidateCache("invalidation-test-missing"))
	assert.Equal(t, 0, InvalidateByEvent("invalidation-test-missing"))
	assert.Equal(t, 0, InvalidateByDependency("invalidation-test-missing"))
	assert.GreaterOrEqual(t, InvalidateAllWith(func(string, string) bool { return false }), 1)
}
