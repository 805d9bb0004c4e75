package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	MovingAlive     int `csv:"moving_alive"`
	StationaryAlive int `csv:"stationary_alive"`

	// Events during window
	Collisions       int     `csv:"collisions"`
	Degenerate       int     `csv:"degenerate"`
	MovingDeaths     int     `csv:"moving_deaths"`
	StationaryDeaths int     `csv:"stationary_deaths"`
	CollisionsPerSec float64 `csv:"collisions_per_sec"`

	// Health distribution of alive entities (sampled at window end)
	MovingHealthMean float64 `csv:"moving_health_mean"`
	MovingHealthP10  float64 `csv:"moving_health_p10"`
	MovingHealthP50  float64 `csv:"moving_health_p50"`
	MovingHealthP90  float64 `csv:"moving_health_p90"`

	StationaryHealthMean float64 `csv:"stationary_health_mean"`
	StationaryHealthP10  float64 `csv:"stationary_health_p10"`
	StationaryHealthP50  float64 `csv:"stationary_health_p50"`
	StationaryHealthP90  float64 `csv:"stationary_health_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice with linear
// interpolation between ranks. p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeHealthStats calculates mean and percentiles from health values.
func ComputeHealthStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("moving_alive", s.MovingAlive),
		slog.Int("stationary_alive", s.StationaryAlive),
		slog.Int("collisions", s.Collisions),
		slog.Int("degenerate", s.Degenerate),
		slog.Int("moving_deaths", s.MovingDeaths),
		slog.Int("stationary_deaths", s.StationaryDeaths),
		slog.Float64("collisions_per_sec", s.CollisionsPerSec),
		slog.Float64("moving_health_mean", s.MovingHealthMean),
		slog.Float64("moving_health_p50", s.MovingHealthP50),
		slog.Float64("stationary_health_mean", s.StationaryHealthMean),
		slog.Float64("stationary_health_p50", s.StationaryHealthP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

// TickTimer records the wall-clock duration of every tick in a run.
type TickTimer struct {
	durations []float64 // microseconds
	start     time.Time
	tickStart time.Time
}

// NewTickTimer creates a timer with room for capHint ticks.
func NewTickTimer(capHint int) *TickTimer {
	if capHint < 0 {
		capHint = 0
	}
	return &TickTimer{
		durations: make([]float64, 0, capHint),
		start:     time.Now(),
	}
}

// Begin marks the start of a tick.
func (t *TickTimer) Begin() {
	t.tickStart = time.Now()
}

// End records the duration since the matching Begin.
func (t *TickTimer) End() {
	t.Record(time.Since(t.tickStart))
}

// Record appends one tick duration.
func (t *TickTimer) Record(d time.Duration) {
	t.durations = append(t.durations, float64(d.Microseconds()))
}

// Summary reduces the recorded ticks to a RunSummary.
func (t *TickTimer) Summary() RunSummary {
	return Summarize(t.durations, time.Since(t.start))
}

// RunSummary describes tick timing over a whole run.
type RunSummary struct {
	Ticks     int           `csv:"ticks"`
	TotalTime time.Duration `csv:"-"`
	TotalMS   int64         `csv:"total_ms"`
	MeanUS    float64       `csv:"mean_tick_us"`
	StdDevUS  float64       `csv:"stddev_tick_us"`
	MinUS     float64       `csv:"min_tick_us"`
	MaxUS     float64       `csv:"max_tick_us"`
	P99US     float64       `csv:"p99_tick_us"`
}

// Summarize computes a RunSummary from per-tick durations in microseconds.
func Summarize(tickUS []float64, total time.Duration) RunSummary {
	s := RunSummary{
		Ticks:     len(tickUS),
		TotalTime: total,
		TotalMS:   total.Milliseconds(),
	}
	if len(tickUS) == 0 {
		return s
	}

	sorted := make([]float64, len(tickUS))
	copy(sorted, tickUS)
	sort.Float64s(sorted)

	s.MeanUS, s.StdDevUS = stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		s.StdDevUS = 0
	}
	s.MinUS = sorted[0]
	s.MaxUS = sorted[len(sorted)-1]
	s.P99US = stat.Quantile(0.99, stat.Empirical, sorted, nil)
	return s
}

// AvgTick returns the mean tick duration.
func (s RunSummary) AvgTick() time.Duration {
	return time.Duration(s.MeanUS * float64(time.Microsecond))
}

// LogValue implements slog.LogValuer for structured logging.
func (s RunSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ticks", s.Ticks),
		slog.Duration("time_taken", s.TotalTime),
		slog.Duration("avg_tick", s.AvgTick()),
		slog.Float64("stddev_tick_us", s.StdDevUS),
		slog.Float64("min_tick_us", s.MinUS),
		slog.Float64("max_tick_us", s.MaxUS),
		slog.Float64("p99_tick_us", s.P99US),
	)
}
