// Package main runs the collision simulation headless at a range of worker
// counts and reports tick timing for each.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/circlesim/config"
	"github.com/pthm-cable/circlesim/game"
	"github.com/pthm-cable/circlesim/telemetry"
)

// Result is one benchmark row.
type Result struct {
	Workers    int    `csv:"workers"`
	Seed       int64  `csv:"seed"`
	Moving     int    `csv:"moving"`
	Stationary int    `csv:"stationary"`
	Collisions int    `csv:"collisions"`
	Elapsed    string `csv:"elapsed"`
	telemetry.RunSummary
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 600, "Ticks per run")
	maxWorkers := flag.Int("max-workers", runtime.GOMAXPROCS(0)-1, "Largest worker count to benchmark")
	seed := flag.Int64("seed", 42, "RNG seed shared by every run")
	output := flag.String("output", "benchmark.csv", "CSV output path (empty = log only)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	base := config.Cfg()

	var results []Result
	for _, workers := range workerCounts(*maxWorkers) {
		res, err := runOne(*base, workers, *ticks, *seed)
		if err != nil {
			slog.Error("benchmark run failed", "workers", workers, "error", err)
			os.Exit(1)
		}
		slog.Info("benchmark run",
			"workers", res.Workers,
			"collisions", res.Collisions,
			"elapsed", res.Elapsed,
			"summary", res.RunSummary,
		)
		results = append(results, res)
	}

	if *output == "" {
		return
	}
	f, err := os.Create(*output)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&results, f); err != nil {
		slog.Error("failed to write results", "error", err)
		os.Exit(1)
	}
	slog.Info("results written", "path", *output, "runs", len(results))
}

// workerCounts returns 0, 1, 2, 4, ... up to and including limit.
func workerCounts(limit int) []int {
	counts := []int{0}
	for n := 1; n <= limit; n *= 2 {
		counts = append(counts, n)
	}
	if last := counts[len(counts)-1]; last != limit && limit > 0 {
		counts = append(counts, limit)
	}
	return counts
}

// runOne builds a fresh population from seed and times ticks steps with the
// given worker count. cfg is a copy so runs do not share state.
func runOne(cfg config.Config, workers, ticks int, seed int64) (Result, error) {
	cfg.Workers.Count = workers
	cfg.Modes.Visualize = false
	if err := cfg.Recompute(); err != nil {
		return Result{}, err
	}

	store, err := game.NewRandomFactory(seed).Populate(&cfg)
	if err != nil {
		return Result{}, err
	}

	var collisions int
	count := telemetry.SinkFunc(func(events []telemetry.CollisionEvent) error {
		collisions += len(events)
		return nil
	})
	sim, err := game.NewSimulation(&cfg, store, game.SimulationOptions{Sink: count})
	if err != nil {
		return Result{}, err
	}
	defer sim.Close()

	timer := telemetry.NewTickTimer(ticks)
	for i := 0; i < ticks; i++ {
		timer.Begin()
		err := sim.Step(cfg.Derived.DT32)
		timer.End()
		if err != nil {
			return Result{}, fmt.Errorf("tick %d: %w", sim.Tick(), err)
		}
	}

	summary := timer.Summary()
	return Result{
		Workers:    sim.Workers(),
		Seed:       seed,
		Moving:     store.Moving.Len(),
		Stationary: store.Stationary.Len(),
		Collisions: collisions,
		Elapsed:    formatDuration(summary.TotalTime),
		RunSummary: summary,
	}, nil
}

// formatDuration formats a duration as MM:SS.mmm.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Millisecond)
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d.%03d", m, s, d/time.Millisecond)
}
