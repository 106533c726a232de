/*
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

package cache

import (
	"context"
	"sync"

	"github.com/Megaprog/simplest-cache/meter"
	"github.com/Megaprog/simplest-cache/singleflight"
)

// A LoaderFunc loads the value for a key missing from the cache.
type LoaderFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Synchronized is a Cache guarded by a mutex, for use from several
// goroutines. Eviction victim selection runs under the same lock as the
// insert that triggers it.
type Synchronized[K comparable, V any, M meter.Ordered[M]] struct {
	mu    sync.Mutex
	cache *Cache[K, V, M]

	// loads ensures that each key is only loaded once at a time,
	// regardless of the number of concurrent callers.
	loads singleflight.TypedGroup[K, V]
}

// NewSynchronized creates a Synchronized cache; see New for the arguments.
func NewSynchronized[K comparable, V any, M meter.Ordered[M]](strategy meter.Strategy[M], capacity int, opts ...Option) *Synchronized[K, V, M] {
	return &Synchronized[K, V, M]{
		cache: New[K, V, M](strategy, capacity, opts...),
	}
}

// SetOnEvicted sets the eviction callback. f runs with the lock held and
// must not call back into s.
func (s *Synchronized[K, V, M]) SetOnEvicted(f func(key K, value V)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.OnEvicted = f
}

// Get is the locked variant of Cache.Get.
func (s *Synchronized[K, V, M]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(key)
}

// Put is the locked variant of Cache.Put.
func (s *Synchronized[K, V, M]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Put(key, value)
}

// Remove is the locked variant of Cache.Remove.
func (s *Synchronized[K, V, M]) Remove(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Remove(key)
}

// Contains is the locked variant of Cache.Contains.
func (s *Synchronized[K, V, M]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Contains(key)
}

// Keys is the locked variant of Cache.Keys.
func (s *Synchronized[K, V, M]) Keys() map[K]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Keys()
}

// Clear is the locked variant of Cache.Clear.
func (s *Synchronized[K, V, M]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Clear()
}

// Len is the locked variant of Cache.Len.
func (s *Synchronized[K, V, M]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Stats is the locked variant of Cache.Stats.
func (s *Synchronized[K, V, M]) Stats() CacheStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Stats()
}

// GetOrLoad returns the cached value for key, calling load on a miss and
// caching its result. Concurrent misses for the same key share a single
// call to load. A load error is returned to every waiting caller and
// nothing is cached.
func (s *Synchronized[K, V, M]) GetOrLoad(ctx context.Context, key K, load LoaderFunc[K, V]) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}
	return s.loads.Do(key, func() (V, error) {
		// Check the cache again because singleflight can only dedup
		// calls that overlap concurrently; a load that finished just
		// before this one started has already filled the cache. The
		// lookup above was already counted, so this one is not.
		s.mu.Lock()
		if e, hit := s.cache.entries.Get(key); hit {
			v := e.Value
			s.mu.Unlock()
			return v, nil
		}
		s.mu.Unlock()

		v, err := load(ctx, key)
		if err != nil {
			return v, err
		}
		s.Put(key, v)
		return v, nil
	})
}
