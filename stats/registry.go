package stats

import (
	"sort"
	"sync"
)

// registry is the process-wide name→counters map. Map-level additions
// use the registry's own lock; per-counter reads and writes are
// atomic and need no registry involvement.
type registry struct {
	mu       sync.RWMutex
	counters map[string]*Counters
}

var global = &registry{counters: make(map[string]*Counters)}

// Register returns the counters registered under name, creating them
// on first registration. Repeated registrations under the same name
// share one set of counters.
func Register(name string) *Counters {
	global.mu.Lock()
	defer global.mu.Unlock()
	if c, ok := global.counters[name]; ok {
		return c
	}
	c := NewCounters()
	global.counters[name] = c
	return c
}

// Get returns a point-in-time snapshot of the counters registered
// under name.
func Get(name string) (Snapshot, bool) {
	c, ok := GetRef(name)
	if !ok {
		return Snapshot{}, false
	}
	return c.Snapshot(), true
}

// GetRef returns the live counters registered under name. Unlike Get,
// subsequent reads observe ongoing updates.
func GetRef(name string) (*Counters, bool) {
	global.mu.RLock()
	defer global.mu.RUnlock()
	c, ok := global.counters[name]
	return c, ok
}

// List returns the registered names in sorted order.
func List() []string {
	global.mu.RLock()
	defer global.mu.RUnlock()
	names := make([]string, 0, len(global.counters))
	for name := range global.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset zeroes the counters registered under name, reporting whether
// the name was registered. The registration itself is kept.
func Reset(name string) bool {
	c, ok := GetRef(name)
	if !ok {
		return false
	}
	c.Reset()
	return true
}

// Clear removes every registration. Intended for test isolation;
// caches created before a Clear keep updating their own counters but
// are no longer reachable by name.
func Clear() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.counters = make(map[string]*Counters)
}
