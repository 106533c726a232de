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

// Command cachesim replays an access trace, or a generated workload,
// against a bounded cache and reports how the chosen eviction strategy
// performed.
//
//	cachesim -config cachesim.yaml
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opencensus.io/stats/view"
	"go.uber.org/zap"

	cache "github.com/Megaprog/simplest-cache"
	"github.com/Megaprog/simplest-cache/internal/config"
	"github.com/Megaprog/simplest-cache/internal/logger"
	"github.com/Megaprog/simplest-cache/internal/sim"
	"github.com/Megaprog/simplest-cache/meter"
	"github.com/Megaprog/simplest-cache/promstats"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "cachesim: %s\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := view.Register(cache.AllViews...); err != nil {
		return fmt.Errorf("registering views: %w", err)
	}
	defer view.Unregister(cache.AllViews...)

	ops, err := loadOps(cfg.Workload)
	if err != nil {
		return err
	}
	log.Info("starting replay",
		zap.String("strategy", cfg.Cache.Strategy),
		zap.Int("capacity", cfg.Cache.Capacity),
		zap.Int("operations", len(ops)))

	coll := promstats.NewCollector("cachesim")
	start := time.Now()
	var res sim.Result
	switch cfg.Cache.Strategy {
	case config.StrategyFIFO:
		res = replay[meter.Sequence](meter.NewFIFO(), cfg, ops, log, coll)
	case config.StrategyLRU:
		res = replay[time.Time](meter.NewLRU(), cfg, ops, log, coll)
	case config.StrategyLFU:
		res = replay[meter.Frequency](meter.LFU{}, cfg, ops, log, coll)
	}

	log.Info("replay finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("gets", res.Gets),
		zap.Int("hits", res.Hits),
		zap.Int("fills", res.Fills),
		zap.Float64("hit_ratio", res.HitRatio()))

	if err := reportViews(log); err != nil {
		return err
	}
	return reportMetrics(log, coll)
}

func replay[M meter.Ordered[M]](strategy meter.Strategy[M], cfg *config.Config, ops []sim.Op, log *zap.Logger, coll *promstats.Collector) sim.Result {
	c := cache.New[string, string, M](strategy, cfg.Cache.Capacity,
		cache.WithName(cfg.Cache.Name),
		cache.WithLogger(log))
	coll.Add(cfg.Cache.Name, c)
	return sim.Replay(c, ops, cfg.Workload.FillOnMiss)
}

func loadOps(w config.WorkloadConfig) ([]sim.Op, error) {
	if w.TraceFile == "" {
		return sim.Generate(sim.Workload{
			Keys:       w.Keys,
			Operations: w.Operations,
			WriteRatio: w.WriteRatio,
			Skew:       w.Skew,
			Seed:       w.Seed,
		})
	}
	f, err := os.Open(w.TraceFile)
	if err != nil {
		return nil, fmt.Errorf("opening trace: %w", err)
	}
	defer f.Close()
	ops, err := sim.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", w.TraceFile, err)
	}
	return ops, nil
}

func reportViews(log *zap.Logger) error {
	for _, v := range cache.AllViews {
		rows, err := view.RetrieveData(v.Name)
		if err != nil {
			return fmt.Errorf("retrieving view %s: %w", v.Name, err)
		}
		for _, row := range rows {
			count, ok := row.Data.(*view.CountData)
			if !ok {
				continue
			}
			log.Debug("opencensus view", zap.String("view", v.Name), zap.Int64("count", count.Value))
		}
	}
	return nil
}

func reportMetrics(log *zap.Logger, coll *promstats.Collector) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(coll); err != nil {
		return fmt.Errorf("registering collector: %w", err)
	}
	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			value := m.GetGauge().GetValue()
			if c := m.GetCounter(); c != nil {
				value = c.GetValue()
			}
			log.Info("metric", zap.String("name", mf.GetName()), zap.Float64("value", value))
		}
	}
	return nil
}
