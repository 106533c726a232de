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

// Package promstats exports cache statistics as prometheus metrics.
package promstats

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	cache "github.com/Megaprog/simplest-cache"
)

// StatsSource is anything that can report a CacheStats snapshot, such as a
// *cache.Cache or a *cache.Synchronized. Sources scraped while other
// goroutines use them must be safe for concurrent use.
type StatsSource interface {
	Stats() cache.CacheStats
}

// Collector is a prometheus.Collector reporting the stats of a set of
// named caches, one label value per cache.
type Collector struct {
	mu      sync.RWMutex
	sources map[string]StatsSource

	items     *prometheus.Desc
	capacity  *prometheus.Desc
	gets      *prometheus.Desc
	hits      *prometheus.Desc
	puts      *prometheus.Desc
	evictions *prometheus.Desc
	removes   *prometheus.Desc
}

// NewCollector creates a Collector whose metric names are prefixed with
// namespace.
func NewCollector(namespace string) *Collector {
	labels := []string{"cache"}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, labels, nil)
	}
	return &Collector{
		sources:   make(map[string]StatsSource),
		items:     desc("items", "Number of entries currently in the cache."),
		capacity:  desc("capacity", "Maximum number of entries."),
		gets:      desc("gets_total", "Number of Get calls."),
		hits:      desc("hits_total", "Number of Get calls that found their key."),
		puts:      desc("puts_total", "Number of Put calls."),
		evictions: desc("evictions_total", "Number of entries evicted to make room for a new key."),
		removes:   desc("removes_total", "Number of entries removed by Remove."),
	}
}

// Add starts reporting src under the given cache name, replacing any
// source previously added under that name.
func (c *Collector) Add(name string, src StatsSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[name] = src
}

// Delete stops reporting the named cache.
func (c *Collector) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, name)
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{c.items, c.capacity, c.gets, c.hits, c.puts, c.evictions, c.removes} {
		ch <- d
	}
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	srcs := make([]StatsSource, len(names))
	for i, name := range names {
		srcs[i] = c.sources[name]
	}
	c.mu.RUnlock()

	for i, src := range srcs {
		s := src.Stats()
		name := names[i]
		ch <- prometheus.MustNewConstMetric(c.items, prometheus.GaugeValue, float64(s.Items), name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity), name)
		ch <- prometheus.MustNewConstMetric(c.gets, prometheus.CounterValue, float64(s.Gets), name)
		ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits), name)
		ch <- prometheus.MustNewConstMetric(c.puts, prometheus.CounterValue, float64(s.Puts), name)
		ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.Evictions), name)
		ch <- prometheus.MustNewConstMetric(c.removes, prometheus.CounterValue, float64(s.Removes), name)
	}
}

var _ prometheus.Collector = (*Collector)(nil)
