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

// Package meter defines how a cache ranks its entries for eviction.
//
// Every entry carries a meter. A Strategy computes the next meter of an
// entry from its previous one each time the entry is inserted or accessed,
// and the entry whose meter compares lowest is the one evicted first.
package meter

// Ordered is satisfied by meter types that rank themselves against another
// value of the same type. Compare returns a negative number when the
// receiver ranks below other, zero when they are equal and a positive
// number otherwise. time.Time satisfies Ordered.
type Ordered[M any] interface {
	Compare(other M) int
}

// Strategy computes the meter of an entry.
type Strategy[M Ordered[M]] interface {
	// Next returns the new meter for an entry given its previous one.
	// ok is false the first time an entry is metered, in which case
	// prev is the zero value and must be ignored.
	//
	// Implementations shared between caches may be called concurrently.
	Next(prev M, ok bool) M
}

// StrategyFunc implements Strategy with a function.
type StrategyFunc[M Ordered[M]] func(prev M, ok bool) M

// Next implements Next from Strategy
func (f StrategyFunc[M]) Next(prev M, ok bool) M {
	return f(prev, ok)
}
