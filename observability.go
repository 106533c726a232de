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
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const unitDimensionless = "1"

// Opencensus stats
var (
	MGets        = stats.Int64("gets", "The number of Get requests", unitDimensionless)
	MCacheHits   = stats.Int64("cache_hits", "The number of Gets that found their key", unitDimensionless)
	MCacheMisses = stats.Int64("cache_misses", "The number of Gets that did not find their key", unitDimensionless)
	MPuts        = stats.Int64("puts", "The number of Put requests", unitDimensionless)
	MEvictions   = stats.Int64("evictions", "The number of entries evicted to make room for a new key", unitDimensionless)
	MRemoves     = stats.Int64("removes", "The number of entries removed by Remove", unitDimensionless)
	MClears      = stats.Int64("clears", "The number of Clear calls", unitDimensionless)
)

// CacheNameKey tags the name of the cache
var CacheNameKey = tag.MustNewKey("cache")

// AllViews is a slice of default views for people to use
var AllViews = []*view.View{
	{Name: "cache/gets", Description: "The number of Get requests", TagKeys: []tag.Key{CacheNameKey}, Measure: MGets, Aggregation: view.Count()},
	{Name: "cache/cache_hits", Description: "The number of Gets that found their key", TagKeys: []tag.Key{CacheNameKey}, Measure: MCacheHits, Aggregation: view.Count()},
	{Name: "cache/cache_misses", Description: "The number of Gets that did not find their key", TagKeys: []tag.Key{CacheNameKey}, Measure: MCacheMisses, Aggregation: view.Count()},
	{Name: "cache/puts", Description: "The number of Put requests", TagKeys: []tag.Key{CacheNameKey}, Measure: MPuts, Aggregation: view.Count()},
	{Name: "cache/evictions", Description: "The number of entries evicted to make room for a new key", TagKeys: []tag.Key{CacheNameKey}, Measure: MEvictions, Aggregation: view.Count()},
	{Name: "cache/removes", Description: "The number of entries removed by Remove", TagKeys: []tag.Key{CacheNameKey}, Measure: MRemoves, Aggregation: view.Count()},
	{Name: "cache/clears", Description: "The number of Clear calls", TagKeys: []tag.Key{CacheNameKey}, Measure: MClears, Aggregation: view.Count()},
}
