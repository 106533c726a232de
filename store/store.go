/*
Copyright 2013 Google Inc.
Copyright 2026 Megaprog

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package store implements the entry table behind a bounded cache.
package store // import "github.com/Megaprog/simplest-cache/store"

// Entry is a live key with its value and its current meter.
type Entry[K comparable, V any, M any] struct {
	Key   K
	Value V
	Meter M
}

// Store maps keys to entries and remembers the order in which keys were
// inserted. Enumeration follows that order. It is not safe for concurrent
// access.
//
// Pointers returned by Get and Insert stay valid until the entry is
// deleted; callers update Value and Meter through them.
type Store[K comparable, V any, M any] struct {
	// entries comes first so the GC marks the map contents before the
	// linked list, as with the LRU this is modeled on.
	entries map[K]*llElem[Entry[K, V, M]]
	ll      linkedList[Entry[K, V, M]]
}

// New creates an empty Store with room for sizeHint entries.
func New[K comparable, V any, M any](sizeHint int) *Store[K, V, M] {
	return &Store[K, V, M]{
		entries: make(map[K]*llElem[Entry[K, V, M]], sizeHint),
	}
}

// Get looks up the entry for key.
func (s *Store[K, V, M]) Get(key K) (*Entry[K, V, M], bool) {
	if ele, hit := s.entries[key]; hit {
		return &ele.value, true
	}
	return nil, false
}

// Insert adds an entry for key with the given value and meter. If key is
// already present only its value is replaced; its meter and position are
// kept.
func (s *Store[K, V, M]) Insert(key K, value V, meter M) *Entry[K, V, M] {
	if s.entries == nil {
		s.entries = make(map[K]*llElem[Entry[K, V, M]])
	}
	if ele, hit := s.entries[key]; hit {
		ele.value.Value = value
		return &ele.value
	}
	ele := s.ll.PushBack(Entry[K, V, M]{Key: key, Value: value, Meter: meter})
	s.entries[key] = ele
	return &ele.value
}

// Delete removes the entry for key and reports whether it was present.
func (s *Store[K, V, M]) Delete(key K) bool {
	ele, hit := s.entries[key]
	if !hit {
		return false
	}
	s.ll.Remove(ele)
	delete(s.entries, key)
	return true
}

// Len returns the number of entries.
func (s *Store[K, V, M]) Len() int {
	return s.ll.Len()
}

// Clear removes all entries.
func (s *Store[K, V, M]) Clear() {
	s.ll = linkedList[Entry[K, V, M]]{}
	s.entries = make(map[K]*llElem[Entry[K, V, M]])
}

// Range calls f for each entry in insertion order until f returns false.
// f must not insert or delete entries.
func (s *Store[K, V, M]) Range(f func(e *Entry[K, V, M]) bool) {
	for ele := s.ll.Front(); ele != nil; ele = ele.Next() {
		if !f(&ele.value) {
			return
		}
	}
}
