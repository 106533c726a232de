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
	"go.uber.org/zap"
)

// Option is an interface for implementing functional cache options
type Option interface {
	apply(*cacheOpts)
}

// cacheOpts contains optional fields for a cache (each with a default
// value if not set)
type cacheOpts struct {
	name     string
	logger   *zap.Logger
	recorder stats.Recorder
}

type funcOption struct {
	f func(*cacheOpts)
}

func (fo *funcOption) apply(o *cacheOpts) {
	fo.f(o)
}

func newFuncOption(f func(*cacheOpts)) *funcOption {
	return &funcOption{f: f}
}

// WithName names the cache; the name tags recorded stats and log lines.
// Defaults to "default".
func WithName(name string) Option {
	return newFuncOption(func(o *cacheOpts) {
		o.name = name
	})
}

// WithLogger sets the logger used for eviction and clear events, which
// are logged at debug level. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return newFuncOption(func(o *cacheOpts) {
		if l != nil {
			o.logger = l
		}
	})
}

// WithRecorder allows the client to specify an opencensus stats recorder
// other than the global default; tests use a view.Meter here.
func WithRecorder(r stats.Recorder) Option {
	return newFuncOption(func(o *cacheOpts) {
		o.recorder = r
	})
}
