package goshape

import (
	"iter"
	"slices"
	"sort"
)

// Store maps unique string keys to values. It is created empty, entries are
// added or overwritten by key and removed explicitly. A Store is not safe for
// concurrent mutation; callers that share one must serialize access.
type Store[V any] struct {
	m map[string]V
}

// NewStore returns an empty store.
func NewStore[V any]() *Store[V] { return &Store[V]{m: map[string]V{}} }

// Set inserts or overwrites the entry for key.
func (s *Store[V]) Set(key string, v V) {
	if s.m == nil {
		s.m = map[string]V{}
	}
	s.m[key] = v
}

// Get returns the entry for key, or None when absent.
func (s *Store[V]) Get(key string) Opt[V] {
	v, ok := s.m[key]
	if !ok {
		return None[V]()
	}
	return Some(v)
}

// Delete removes the entry for key and reports whether it existed.
func (s *Store[V]) Delete(key string) bool {
	if _, ok := s.m[key]; !ok {
		return false
	}
	delete(s.m, key)
	return true
}

func (s *Store[V]) Len() int { return len(s.m) }

// Keys returns the keys present at call time in ascending order. The sequence
// can be ranged over any number of times and does not observe later writes.
func (s *Store[V]) Keys() iter.Seq[string] {
	keys := s.sortedKeys()
	return slices.Values(keys)
}

// All yields the entries present at call time in ascending key order.
func (s *Store[V]) All() iter.Seq2[string, V] {
	keys := s.sortedKeys()
	vals := make([]V, len(keys))
	for i, k := range keys {
		vals[i] = s.m[k]
	}
	return func(yield func(string, V) bool) {
		for i, k := range keys {
			if !yield(k, vals[i]) {
				return
			}
		}
	}
}

func (s *Store[V]) sortedKeys() []string {
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
