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

package sim

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vimeo/go-clocks/fake"

	cache "github.com/Megaprog/simplest-cache"
	"github.com/Megaprog/simplest-cache/meter"
)

func TestParse(t *testing.T) {
	trace := `
# warm up
put 2 Two
put 1 One

get 1
remove 2
clear
`
	ops, err := Parse(strings.NewReader(trace))
	require.NoError(t, err)
	require.Equal(t, []Op{
		{Kind: OpPut, Key: "2", Value: "Two"},
		{Kind: OpPut, Key: "1", Value: "One"},
		{Kind: OpGet, Key: "1"},
		{Kind: OpRemove, Key: "2"},
		{Kind: OpClear},
	}, ops)
}

func TestParseInvalid(t *testing.T) {
	for _, line := range []string{"get", "put k", "fetch k", "clear now", "remove a b"} {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(strings.NewReader("get ok\n" + line + "\n"))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidOp))
			require.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	w := Workload{Keys: 50, Operations: 500, WriteRatio: 0.2, Skew: 1.3, Seed: 42}
	a, err := Generate(w)
	require.NoError(t, err)
	b, err := Generate(w)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, 500)

	puts := 0
	for _, op := range a {
		if op.Kind == OpPut {
			puts++
		}
		require.Contains(t, []OpKind{OpGet, OpPut}, op.Kind)
	}
	require.Greater(t, puts, 0)
	require.Less(t, puts, 500)
}

func TestReplayFIFO(t *testing.T) {
	ops, err := Parse(strings.NewReader("put 2 Two\nput 1 One\nget 1\nget 2\nput 3 Three\nget 2\nget 3\n"))
	require.NoError(t, err)

	c := cache.New[string, string, meter.Sequence](meter.NewFIFO(), 2)
	res := Replay(c, ops, false)

	require.Equal(t, Result{Ops: 7, Gets: 4, Hits: 3, Puts: 3}, res)
	require.InDelta(t, 0.75, res.HitRatio(), 1e-9)
	require.Equal(t, map[string]struct{}{"1": {}, "3": {}}, c.Keys())
}

func TestReplayFillOnMiss(t *testing.T) {
	c := cache.New[string, string, time.Time](meter.NewLRUWithClock(fake.NewClock(time.Now())), 4)
	ops := []Op{{Kind: OpGet, Key: "a"}, {Kind: OpGet, Key: "a"}, {Kind: OpRemove, Key: "a"}, {Kind: OpGet, Key: "a"}, {Kind: OpClear}}
	res := Replay(c, ops, true)

	require.Equal(t, Result{Ops: 5, Gets: 3, Hits: 1, Fills: 2, Removes: 1, Clears: 1}, res)
	require.Zero(t, c.Len())
}

func TestGenerateRejectsBadWorkload(t *testing.T) {
	valid := Workload{Keys: 10, Operations: 10, WriteRatio: 0.5, Skew: 1.2}
	for _, tt := range []struct {
		name   string
		mutate func(*Workload)
	}{
		{"skew_one", func(w *Workload) { w.Skew = 1 }},
		{"skew_zero", func(w *Workload) { w.Skew = 0 }},
		{"no_keys", func(w *Workload) { w.Keys = 0 }},
		{"negative_ops", func(w *Workload) { w.Operations = -1 }},
		{"write_ratio", func(w *Workload) { w.WriteRatio = 1.5 }},
	} {
		t.Run(tt.name, func(t *testing.T) {
			w := valid
			tt.mutate(&w)
			ops, err := Generate(w)
			require.ErrorIs(t, err, ErrInvalidWorkload)
			require.Nil(t, ops)
		})
	}
}

func TestReplayGeneratedStaysBounded(t *testing.T) {
	ops, err := Generate(Workload{Keys: 200, Operations: 5000, WriteRatio: 0.1, Skew: 1.2, Seed: 7})
	require.NoError(t, err)
	c := cache.New[string, string, meter.Frequency](meter.LFU{}, 20)
	res := Replay(c, ops, true)

	require.Equal(t, 5000, res.Ops)
	require.LessOrEqual(t, c.Len(), 20)
	require.Equal(t, int64(res.Gets), c.Stats().Gets)
	require.Equal(t, int64(res.Hits), c.Stats().Hits)
}

func TestOpKindString(t *testing.T) {
	require.Equal(t, "get", OpGet.String())
	require.Equal(t, "clear", OpClear.String())
	require.Equal(t, "OpKind(9)", OpKind(9).String())
}
