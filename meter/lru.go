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
	"time"

	"github.com/vimeo/go-clocks"
)

// LRU stamps an entry with the current time on every access, so the entry
// touched longest ago is evicted first.
type LRU struct {
	clock clocks.Clock
}

// NewLRU returns an LRU reading the system clock.
func NewLRU() *LRU {
	return NewLRUWithClock(clocks.DefaultClock())
}

// NewLRUWithClock returns an LRU reading c.
func NewLRUWithClock(c clocks.Clock) *LRU {
	return &LRU{clock: c}
}

// Next implements Strategy
func (l *LRU) Next(time.Time, bool) time.Time {
	return l.clock.Now()
}
