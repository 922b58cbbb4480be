package flightreduce

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// IntermediateStore groups emitted values by key.
// Every mutation holds the lock for the whole append, and once frozen the
// store rejects further writes.
type IntermediateStore struct {
	groups map[string][]int
	total  int
	frozen bool
	mu     sync.RWMutex
}

// NewIntermediateStore creates an empty store
func NewIntermediateStore() *IntermediateStore {
	return &IntermediateStore{
		groups: make(map[string][]int),
	}
}

// Append adds value to the list for key, creating the list if absent.
func (s *IntermediateStore) Append(key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrStoreFrozen
	}

	s.groups[key] = append(s.groups[key], value)
	s.total++

	return nil
}

// Merge appends every value of a task-local partial grouping in one
// critical section.
func (s *IntermediateStore) Merge(partial map[string][]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrStoreFrozen
	}

	for key, values := range partial {
		s.groups[key] = append(s.groups[key], values...)
		s.total += len(values)
	}

	return nil
}

// Freeze marks the store read-only.
func (s *IntermediateStore) Freeze() {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (s *IntermediateStore) Frozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.frozen
}

// Keys returns the distinct keys in ascending order.
func (s *IntermediateStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.groups))
	for key := range s.groups {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys
}

// Values returns a copy of the values emitted for key.
func (s *IntermediateStore) Values(key string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.groups[key])
}

// Len returns the number of distinct keys.
func (s *IntermediateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.groups)
}

// TotalValues returns the sum of all list lengths.
func (s *IntermediateStore) TotalValues() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.total
}

// ResultSet is the append-only collection of reduced outputs.
type ResultSet struct {
	entries []KeyValue
	seen    map[string]struct{}
	mu      sync.Mutex
}

// NewResultSet creates an empty result set
func NewResultSet() *ResultSet {
	return &ResultSet{
		seen: make(map[string]struct{}),
	}
}

// Add appends kv, rejecting a key that was already added.
func (r *ResultSet) Add(kv KeyValue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.seen[kv.Key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, kv.Key)
	}

	r.seen[kv.Key] = struct{}{}
	r.entries = append(r.entries, kv)

	return nil
}

// Entries returns a copy of the results sorted by key.
func (r *ResultSet) Entries() []KeyValue {
	r.mu.Lock()
	entries := slices.Clone(r.entries)
	r.mu.Unlock()

	slices.SortFunc(entries, func(a, b KeyValue) int {
		return strings.Compare(a.Key, b.Key)
	})

	return entries
}

// Len returns the number of results.
func (r *ResultSet) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}
