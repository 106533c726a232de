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
	"sync/atomic"
)

// Sequence is the position of an entry in insertion order.
type Sequence uint64

// Compare implements Ordered
func (s Sequence) Compare(other Sequence) int {
	return cmp.Compare(s, other)
}

// FIFO ranks entries by the order in which they were first metered, so the
// oldest insertion is evicted first. Later accesses never change an entry's
// standing.
//
// The sequence belongs to the FIFO value: caches built with the same *FIFO
// share one insertion order, caches built with distinct ones do not.
// The zero value is ready to use.
type FIFO struct {
	seq atomic.Uint64
}

// NewFIFO returns a FIFO with its own sequence starting at zero.
func NewFIFO() *FIFO {
	return &FIFO{}
}

// Next implements Strategy
func (f *FIFO) Next(prev Sequence, ok bool) Sequence {
	if ok {
		return prev
	}
	return Sequence(f.seq.Add(1) - 1)
}
