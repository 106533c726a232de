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
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Megaprog/simplest-cache/meter"
)

func TestSynchronizedConcurrentPuts(t *testing.T) {
	const capacity, workers, perWorker = 16, 8, 200
	s := NewSynchronized[string, int, meter.Sequence](meter.NewFIFO(), capacity)
	var evicted atomic.Int64
	s.SetOnEvicted(func(string, int) { evicted.Add(1) })

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("w%d-%d", w, i)
				s.Put(key, i)
				s.Get(key)
				if n := s.Len(); n > capacity {
					t.Errorf("len %d exceeds capacity %d", n, capacity)
				}
			}
		}(w)
	}
	wg.Wait()

	if n := s.Len(); n != capacity {
		t.Fatalf("len %d; want %d", n, capacity)
	}
	if got, want := evicted.Load(), int64(workers*perWorker-capacity); got != want {
		t.Fatalf("evicted %d; want %d", got, want)
	}
	st := s.Stats()
	if st.Puts != workers*perWorker || st.Evictions != evicted.Load() {
		t.Fatalf("stats %+v disagree with %d puts and %d evictions", st, workers*perWorker, evicted.Load())
	}
}

func TestSynchronizedOperations(t *testing.T) {
	s := NewSynchronized[int, string, meter.Frequency](meter.LFU{}, 2)
	s.Put(1, "One")
	s.Put(2, "Two")
	if v, ok := s.Get(1); !ok || v != "One" {
		t.Fatalf("Get(1) = %q, %v; want One, true", v, ok)
	}
	s.Put(3, "Three")
	if s.Contains(2) {
		t.Fatal("least frequently used key 2 was not evicted")
	}
	if keys := s.Keys(); len(keys) != 2 {
		t.Fatalf("keys %v; want two keys", keys)
	}
	s.Remove(3)
	if s.Contains(3) {
		t.Fatal("Remove(3) left the key behind")
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("len %d after Clear; want 0", s.Len())
	}
}

func TestGetOrLoad(t *testing.T) {
	s := NewSynchronized[string, string, meter.Sequence](meter.NewFIFO(), 4)
	var loads atomic.Int32
	release := make(chan struct{})
	load := func(_ context.Context, key string) (string, error) {
		loads.Add(1)
		<-release
		return "got:" + key, nil
	}

	const callers = 10
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := s.GetOrLoad(context.Background(), "foo", load)
			if err != nil {
				t.Errorf("GetOrLoad error: %s", err)
			}
			results[i] = v
		}(i)
	}
	time.Sleep(100 * time.Millisecond) // let the callers above block
	close(release)
	wg.Wait()

	if n := loads.Load(); n != 1 {
		t.Fatalf("loader ran %d times; want 1", n)
	}
	for i, v := range results {
		if v != "got:foo" {
			t.Fatalf("caller %d got %q; want %q", i, v, "got:foo")
		}
	}

	v, err := s.GetOrLoad(context.Background(), "foo", func(context.Context, string) (string, error) {
		t.Fatal("loader called for a cached key")
		return "", nil
	})
	if err != nil || v != "got:foo" {
		t.Fatalf("cached GetOrLoad = %q, %v; want got:foo, nil", v, err)
	}
}

func TestGetOrLoadError(t *testing.T) {
	s := NewSynchronized[int, string, meter.Sequence](meter.NewFIFO(), 4)
	loadErr := errors.New("backend unavailable")
	_, err := s.GetOrLoad(context.Background(), 1, func(context.Context, int) (string, error) {
		return "", loadErr
	})
	if !errors.Is(err, loadErr) {
		t.Fatalf("GetOrLoad error = %v; want %v", err, loadErr)
	}
	if s.Contains(1) {
		t.Fatal("failed load was cached")
	}

	v, err := s.GetOrLoad(context.Background(), 1, func(_ context.Context, key int) (string, error) {
		return strconv.Itoa(key), nil
	})
	if err != nil || v != "1" {
		t.Fatalf("GetOrLoad after failure = %q, %v; want 1, nil", v, err)
	}
}

func TestGetOrLoadCountsOneGetPerCall(t *testing.T) {
	s := NewSynchronized[string, string, meter.Sequence](meter.NewFIFO(), 16)
	load := func(_ context.Context, key string) (string, error) {
		time.Sleep(time.Millisecond)
		return key, nil
	}

	const callers, rounds = 8, 50
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				key := fmt.Sprintf("k%d", (i+r)%4)
				if v, err := s.GetOrLoad(context.Background(), key, load); err != nil || v != key {
					t.Errorf("GetOrLoad(%q) = %q, %v", key, v, err)
				}
			}
		}(i)
	}
	wg.Wait()

	st := s.Stats()
	if st.Gets != callers*rounds {
		t.Fatalf("Gets = %d; want one per GetOrLoad call (%d)", st.Gets, callers*rounds)
	}
	if st.Hits > st.Gets {
		t.Fatalf("Hits = %d exceeds Gets = %d", st.Hits, st.Gets)
	}
}

func BenchmarkSynchronizedParallelGets(b *testing.B) {
	b.ReportAllocs()
	s := NewSynchronized[int, int, meter.Sequence](meter.NewFIFO(), 1024)
	for z := 0; z < 1024; z++ {
		s.Put(z, z)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		z := 0
		for pb.Next() {
			s.Get(z & 1023)
			z++
		}
	})
}
