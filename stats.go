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

// CacheStats are returned by stats accessors on Cache and Synchronized.
type CacheStats struct {
	Items     int
	Capacity  int
	Gets      int64
	Hits      int64
	Puts      int64
	Evictions int64
	Removes   int64
}

// HitRatio returns Hits/Gets, or zero before the first Get.
func (s CacheStats) HitRatio() float64 {
	if s.Gets == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Gets)
}
