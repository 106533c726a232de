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

// Package cache provides a bounded key/value cache whose eviction policy is
// supplied by the caller.
//
// A Cache holds at most a fixed number of entries. Each entry carries a
// meter computed by a meter.Strategy on insertion and on every access,
// including reads. When a new key is put into a full cache, the entry with
// the lowest meter is evicted first.
package cache // import "github.com/Megaprog/simplest-cache"

import (
	"context"
	"fmt"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"go.uber.org/zap"

	"github.com/Megaprog/simplest-cache/meter"
	"github.com/Megaprog/simplest-cache/store"
)

// Cache is a bounded key/value cache. It is not safe for concurrent
// access; see Synchronized for a locked variant.
type Cache[K comparable, V any, M meter.Ordered[M]] struct {
	// OnEvicted optionally specifies a callback executed when an entry
	// is evicted to make room for a new key. It runs once the new key is
	// stored, so it may call back into the cache. It is not called for
	// Remove or Clear.
	OnEvicted func(key K, value V)

	strategy meter.Strategy[M]
	capacity int
	entries  *store.Store[K, V, M]

	name     string
	log      *zap.Logger
	recorder stats.Recorder
	// ctx only carries the name tag for stats recording.
	ctx context.Context

	nget, nhit, nput, nevict, nremove int64
}

// New creates a Cache holding at most capacity entries, metered by
// strategy. The strategy is fixed for the lifetime of the cache.
//
// New panics if strategy is nil or capacity is not positive.
func New[K comparable, V any, M meter.Ordered[M]](strategy meter.Strategy[M], capacity int, opts ...Option) *Cache[K, V, M] {
	if strategy == nil {
		panic("cache: nil Strategy")
	}
	if capacity <= 0 {
		panic(fmt.Sprintf("cache: capacity must be positive, got %d", capacity))
	}

	o := cacheOpts{
		name:   "default",
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt.apply(&o)
	}

	c := &Cache[K, V, M]{
		strategy: strategy,
		capacity: capacity,
		entries:  store.New[K, V, M](capacity),
		name:     o.name,
		log:      o.logger.With(zap.String("cache", o.name)),
		recorder: o.recorder,
	}
	ctx, err := tag.New(context.Background(), tag.Upsert(CacheNameKey, o.name))
	if err != nil {
		c.log.Warn("cache name is not a valid tag value; recording untagged stats", zap.Error(err))
		ctx = context.Background()
	}
	c.ctx = ctx
	return c
}

// Name returns the name the cache was created with.
func (c *Cache[K, V, M]) Name() string {
	return c.name
}

// Capacity returns the maximum number of entries.
func (c *Cache[K, V, M]) Capacity() int {
	return c.capacity
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V, M]) Len() int {
	return c.entries.Len()
}

// Get looks up a key's value from the cache. A hit refreshes the entry's
// meter, so reads affect which entry is evicted next.
func (c *Cache[K, V, M]) Get(key K) (value V, ok bool) {
	c.nget++
	e, hit := c.entries.Get(key)
	if !hit {
		c.record(MGets.M(1), MCacheMisses.M(1))
		return value, false
	}
	c.nhit++
	c.record(MGets.M(1), MCacheHits.M(1))
	e.Meter = c.strategy.Next(e.Meter, true)
	return e.Value, true
}

// Contains reports whether key is in the cache without touching its meter.
func (c *Cache[K, V, M]) Contains(key K) bool {
	_, hit := c.entries.Get(key)
	return hit
}

// Put stores value under key. Replacing the value of an existing key
// refreshes its meter as Get would and never evicts. Adding a new key to a
// full cache first evicts the entry with the lowest meter.
func (c *Cache[K, V, M]) Put(key K, value V) {
	c.nput++
	c.record(MPuts.M(1))
	if e, hit := c.entries.Get(key); hit {
		e.Value = value
		e.Meter = c.strategy.Next(e.Meter, true)
		return
	}
	var evicted *store.Entry[K, V, M]
	if c.entries.Len() >= c.capacity {
		evicted = c.evict()
	}
	var none M
	c.entries.Insert(key, value, c.strategy.Next(none, false))
	if evicted != nil && c.OnEvicted != nil {
		c.OnEvicted(evicted.Key, evicted.Value)
	}
}

// Remove removes the provided key from the cache. Removing an absent key
// is a no-op.
func (c *Cache[K, V, M]) Remove(key K) {
	if c.entries.Delete(key) {
		c.nremove++
		c.record(MRemoves.M(1))
	}
}

// Keys returns the set of keys currently in the cache. The set is a copy;
// changing it does not affect the cache and later cache operations do not
// show up in it.
func (c *Cache[K, V, M]) Keys() map[K]struct{} {
	keys := make(map[K]struct{}, c.entries.Len())
	c.entries.Range(func(e *store.Entry[K, V, M]) bool {
		keys[e.Key] = struct{}{}
		return true
	})
	return keys
}

// Clear purges all stored items from the cache. The capacity is unchanged.
func (c *Cache[K, V, M]) Clear() {
	n := c.entries.Len()
	c.entries.Clear()
	c.record(MClears.M(1))
	c.log.Debug("cleared cache", zap.Int("entries", n))
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache[K, V, M]) Stats() CacheStats {
	return CacheStats{
		Items:     c.entries.Len(),
		Capacity:  c.capacity,
		Gets:      c.nget,
		Hits:      c.nhit,
		Puts:      c.nput,
		Evictions: c.nevict,
		Removes:   c.nremove,
	}
}

// victim returns the entry with the lowest meter. Among equal meters the
// earliest inserted entry wins. An empty cache has no victim, which can
// only happen if the capacity bound is already broken, so victim panics.
func (c *Cache[K, V, M]) victim() *store.Entry[K, V, M] {
	var lowest *store.Entry[K, V, M]
	c.entries.Range(func(e *store.Entry[K, V, M]) bool {
		if lowest == nil || e.Meter.Compare(lowest.Meter) < 0 {
			lowest = e
		}
		return true
	})
	if lowest == nil {
		panic("cache: no eviction victim in an empty cache")
	}
	return lowest
}

// evict removes the victim and returns it. The returned entry is detached
// from the store.
func (c *Cache[K, V, M]) evict() *store.Entry[K, V, M] {
	v := c.victim()
	c.entries.Delete(v.Key)
	c.nevict++
	c.record(MEvictions.M(1))
	if ce := c.log.Check(zap.DebugLevel, "evicted entry"); ce != nil {
		ce.Write(zap.Any("key", v.Key))
	}
	return v
}

func (c *Cache[K, V, M]) record(ms ...stats.Measurement) {
	if c.recorder == nil {
		stats.Record(c.ctx, ms...)
		return
	}
	stats.RecordWithOptions(c.ctx, stats.WithRecorder(c.recorder), stats.WithMeasurements(ms...))
}
