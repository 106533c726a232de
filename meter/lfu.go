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

package meter

import (
	"cmp"
	"math"
)

// Frequency counts how many times an entry was inserted or accessed.
type Frequency uint64

// Compare implements Ordered
func (f Frequency) Compare(other Frequency) int {
	return cmp.Compare(f, other)
}

// LFU counts accesses, so the least frequently used entry is evicted first.
// Entries with the same count are evicted in insertion order.
type LFU struct{}

// Next implements Strategy
func (LFU) Next(prev Frequency, ok bool) Frequency {
	if !ok {
		return 1
	}
	if prev == math.MaxUint64 {
		return prev
	}
	return prev + 1
}
