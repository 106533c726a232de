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

// Package sim replays access traces against a cache.
package sim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
)

// ErrInvalidOp is returned by Parse for a line that is not an operation.
var ErrInvalidOp = errors.New("sim: invalid operation")

// ErrInvalidWorkload is returned by Generate for a Workload it cannot
// draw keys from.
var ErrInvalidWorkload = errors.New("sim: invalid workload")

// OpKind is the kind of a trace operation.
type OpKind int

const (
	OpGet OpKind = iota + 1
	OpPut
	OpRemove
	OpClear
)

func (k OpKind) String() string {
	switch k {
	case OpGet:
		return "get"
	case OpPut:
		return "put"
	case OpRemove:
		return "remove"
	case OpClear:
		return "clear"
	default:
		return "OpKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Op is a single trace operation.
type Op struct {
	Kind  OpKind
	Key   string
	Value string
}

// Parse reads a trace with one operation per line:
//
//	get <key>
//	put <key> <value>
//	remove <key>
//	clear
//
// Blank lines and lines starting with # are skipped.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		op, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading trace: %w", err)
	}
	return ops, nil
}

func parseLine(line string) (Op, error) {
	fields := strings.Fields(line)
	switch {
	case fields[0] == "get" && len(fields) == 2:
		return Op{Kind: OpGet, Key: fields[1]}, nil
	case fields[0] == "put" && len(fields) == 3:
		return Op{Kind: OpPut, Key: fields[1], Value: fields[2]}, nil
	case fields[0] == "remove" && len(fields) == 2:
		return Op{Kind: OpRemove, Key: fields[1]}, nil
	case fields[0] == "clear" && len(fields) == 1:
		return Op{Kind: OpClear}, nil
	}
	return Op{}, fmt.Errorf("%w: %q", ErrInvalidOp, line)
}

// Workload describes a generated trace. Key popularity follows a zipf
// distribution, so a few keys receive most of the accesses.
type Workload struct {
	Keys       int
	Operations int
	WriteRatio float64
	Skew       float64 // must be > 1
	Seed       int64
}

// Generate returns a deterministic trace for w.
func Generate(w Workload) ([]Op, error) {
	switch {
	case w.Keys <= 0:
		return nil, fmt.Errorf("%w: keys must be positive, got %d", ErrInvalidWorkload, w.Keys)
	case w.Operations < 0:
		return nil, fmt.Errorf("%w: operations must not be negative, got %d", ErrInvalidWorkload, w.Operations)
	case w.WriteRatio < 0 || w.WriteRatio > 1:
		return nil, fmt.Errorf("%w: write ratio must be in [0, 1], got %g", ErrInvalidWorkload, w.WriteRatio)
	case !(w.Skew > 1):
		return nil, fmt.Errorf("%w: skew must be greater than 1, got %g", ErrInvalidWorkload, w.Skew)
	}
	r := rand.New(rand.NewSource(w.Seed))
	zipf := rand.NewZipf(r, w.Skew, 1, uint64(w.Keys-1))
	ops := make([]Op, 0, w.Operations)
	for i := 0; i < w.Operations; i++ {
		key := "k" + strconv.FormatUint(zipf.Uint64(), 10)
		if r.Float64() < w.WriteRatio {
			ops = append(ops, Op{Kind: OpPut, Key: key, Value: strconv.Itoa(i)})
			continue
		}
		ops = append(ops, Op{Kind: OpGet, Key: key})
	}
	return ops, nil
}

// Target is the cache operations a trace drives.
type Target interface {
	Get(key string) (string, bool)
	Put(key, value string)
	Remove(key string)
	Clear()
}

// Result summarizes a replay.
type Result struct {
	Ops     int
	Gets    int
	Hits    int
	Puts    int
	Fills   int
	Removes int
	Clears  int
}

// HitRatio returns Hits/Gets, or zero when the trace had no gets.
func (r Result) HitRatio() float64 {
	if r.Gets == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Gets)
}

// Replay applies ops to t in order. With fillOnMiss set a missed get is
// followed by a put of the key, as a read-through cache would do.
func Replay(t Target, ops []Op, fillOnMiss bool) Result {
	var res Result
	for _, op := range ops {
		res.Ops++
		switch op.Kind {
		case OpGet:
			res.Gets++
			if _, ok := t.Get(op.Key); ok {
				res.Hits++
				continue
			}
			if fillOnMiss {
				res.Fills++
				t.Put(op.Key, op.Key)
			}
		case OpPut:
			res.Puts++
			t.Put(op.Key, op.Value)
		case OpRemove:
			res.Removes++
			t.Remove(op.Key)
		case OpClear:
			res.Clears++
			t.Clear()
		}
	}
	return res
}
