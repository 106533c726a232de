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

package promstats

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	cache "github.com/Megaprog/simplest-cache"
	"github.com/Megaprog/simplest-cache/meter"
)

type fixedStats cache.CacheStats

func (f fixedStats) Stats() cache.CacheStats { return cache.CacheStats(f) }

func TestCollectFromCache(t *testing.T) {
	c := cache.New[string, int, meter.Sequence](meter.NewFIFO(), 2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Get("a")
	c.Get("c")

	coll := NewCollector("simplestcache")
	coll.Add("main", c)

	expected := `
# HELP simplestcache_evictions_total Number of entries evicted to make room for a new key.
# TYPE simplestcache_evictions_total counter
simplestcache_evictions_total{cache="main"} 1
# HELP simplestcache_gets_total Number of Get calls.
# TYPE simplestcache_gets_total counter
simplestcache_gets_total{cache="main"} 2
# HELP simplestcache_hits_total Number of Get calls that found their key.
# TYPE simplestcache_hits_total counter
simplestcache_hits_total{cache="main"} 1
# HELP simplestcache_items Number of entries currently in the cache.
# TYPE simplestcache_items gauge
simplestcache_items{cache="main"} 2
`
	if err := testutil.CollectAndCompare(coll, strings.NewReader(expected),
		"simplestcache_evictions_total", "simplestcache_gets_total", "simplestcache_hits_total", "simplestcache_items"); err != nil {
		t.Fatalf("unexpected metrics: %s", err)
	}
}

func TestCollectSeveralCaches(t *testing.T) {
	coll := NewCollector("test")
	coll.Add("a", fixedStats{Items: 1, Capacity: 4})
	coll.Add("b", fixedStats{Items: 2, Capacity: 4})

	if n := testutil.CollectAndCount(coll); n != 14 {
		t.Fatalf("collected %d metrics; want 14", n)
	}

	coll.Delete("a")
	if n := testutil.CollectAndCount(coll, "test_items"); n != 1 {
		t.Fatalf("collected %d item gauges after Delete; want 1", n)
	}
}

func TestRegister(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	coll := NewCollector("test")
	coll.Add("sync", cache.NewSynchronized[int, int, meter.Frequency](meter.LFU{}, 8))
	if err := reg.Register(coll); err != nil {
		t.Fatalf("registering collector: %s", err)
	}
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gathering: %s", err)
	}
	if len(mfs) != 7 {
		t.Fatalf("gathered %d metric families; want 7", len(mfs))
	}
}
