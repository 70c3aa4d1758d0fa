package memo

import (
	"sync"

	"go.uber.org/atomic"
)

// store is the key→entry mapping behind a cache instance. Each scope
// supplies its own synchronization discipline; order bookkeeping is
// handled above the store, under the cache's order lock, so store
// implementations only need to make individual operations safe for
// their scope.
type store interface {
	// lookup returns the entry for key, if present.
	lookup(key string) (*entry, bool)

	// insert stores an entry, overwriting any existing entry for key,
	// and returns the replaced entry if there was one.
	insert(key string, e *entry) (*entry, bool)

	// remove deletes the entry for key and returns it if it existed.
	remove(key string) (*entry, bool)

	// len returns the number of stored entries.
	len() int

	// clear removes all entries.
	clear()
}

// newStore returns the store backing for the given scope.
func newStore(scope Scope) store {
	switch scope {
	case ScopeIsolated:
		return &isolatedStore{entries: make(map[string]*entry)}
	case ScopeSharedLockFree:
		return &lockFreeStore{}
	default:
		return &lockedStore{entries: make(map[string]*entry)}
	}
}

// isolatedStore backs the isolated scope: a plain map owned
// exclusively by one execution context. Operations never block or
// contend, and no synchronization is performed.
type isolatedStore struct {
	entries map[string]*entry
}

func (s *isolatedStore) lookup(key string) (*entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

func (s *isolatedStore) insert(key string, e *entry) (*entry, bool) {
	prev, ok := s.entries[key]
	s.entries[key] = e
	return prev, ok
}

func (s *isolatedStore) remove(key string) (*entry, bool) {
	e, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return e, ok
}

func (s *isolatedStore) len() int { return len(s.entries) }

func (s *isolatedStore) clear() { s.entries = make(map[string]*entry) }

// lockedStore backs the shared-locked scope: a map guarded by a
// reader-writer lock, allowing concurrent lookups and exclusive
// writes.
type lockedStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func (s *lockedStore) lookup(key string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

func (s *lockedStore) insert(key string, e *entry) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.entries[key]
	s.entries[key] = e
	return prev, ok
}

func (s *lockedStore) remove(key string) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	return e, ok
}

func (s *lockedStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *lockedStore) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}

// lockFreeStore backs the shared-lockfree scope with a concurrent map
// supporting non-blocking lookups and inserts. A separate counter
// tracks the entry count since sync.Map provides no cheap length.
type lockFreeStore struct {
	entries sync.Map // map[string]*entry
	n       atomic.Int64
}

func (s *lockFreeStore) lookup(key string) (*entry, bool) {
	v, ok := s.entries.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*entry), true
}

func (s *lockFreeStore) insert(key string, e *entry) (*entry, bool) {
	prev, loaded := s.entries.Swap(key, e)
	if !loaded {
		s.n.Inc()
		return nil, false
	}
	return prev.(*entry), true
}

func (s *lockFreeStore) remove(key string) (*entry, bool) {
	v, loaded := s.entries.LoadAndDelete(key)
	if !loaded {
		return nil, false
	}
	s.n.Dec()
	return v.(*entry), true
}

func (s *lockFreeStore) len() int {
	return int(s.n.Load())
}

func (s *lockFreeStore) clear() {
	s.entries.Range(func(k, _ any) bool {
		if _, loaded := s.entries.LoadAndDelete(k); loaded {
			s.n.Dec()
		}
		return true
	})
}
