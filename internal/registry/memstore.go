// internal/registry/memstore.go
//
// In-process KV backend: an LRU with per-entry expiry.
//
// Context
// -------
// Single-process deployments do not need Redis; an in-memory store with
// the same Get/SetWithTTL contract is enough, because registry entries are
// disposable (a miss only forces the client to re-render).  Capacity bounds
// memory under heavy render volume; expired entries read as misses and are
// dropped lazily on access or eviction.

package registry

import (
	"container/list"
	"context"
	"sync"
	"time"
)

var _ KV = (*MemStore)(nil)

// MemStore is a TTL-aware LRU satisfying KV.  Safe for concurrent use.
type MemStore struct {
	mu   sync.Mutex
	cap  int
	ll   *list.List
	dict map[string]*list.Element

	// now is swappable in tests.
	now func() time.Time
}

type memEntry struct {
	key     string
	val     []byte
	expires time.Time
}

// NewMemStore returns a store holding at most capacity live entries.
// Panics on capacity < 1.
func NewMemStore(capacity int) *MemStore {
	if capacity < 1 {
		panic("registry: memstore capacity must be ≥1")
	}
	return &MemStore{
		cap:  capacity,
		ll:   list.New(),
		dict: make(map[string]*list.Element, capacity),
		now:  time.Now,
	}
}

// Get returns the value or ErrKeyNotFound.  Expired entries are removed
// and read as misses.
func (s *MemStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ele, hit := s.dict[key]
	if !hit {
		return nil, ErrKeyNotFound
	}
	ent := ele.Value.(memEntry)
	if s.now().After(ent.expires) {
		s.ll.Remove(ele)
		delete(s.dict, key)
		return nil, ErrKeyNotFound
	}
	s.ll.MoveToFront(ele)
	return ent.val, nil
}

// SetWithTTL inserts or refreshes an entry and evicts the LRU tail when the
// capacity is exceeded.
func (s *MemStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent := memEntry{key: key, val: value, expires: s.now().Add(ttl)}
	if ele, hit := s.dict[key]; hit {
		ele.Value = ent
		s.ll.MoveToFront(ele)
		return nil
	}

	ele := s.ll.PushFront(ent)
	s.dict[key] = ele
	if s.ll.Len() > s.cap {
		last := s.ll.Back()
		s.ll.Remove(last)
		delete(s.dict, last.Value.(memEntry).key)
	}
	return nil
}

// Len reports the current entry count, expired entries included.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}
