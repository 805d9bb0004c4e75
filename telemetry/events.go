// Package telemetry provides collision event streams, performance tracking and run output.
package telemetry

import (
	"errors"
	"log/slog"
	"time"
)

// CollisionEvent records one resolved moving/stationary collision.
type CollisionEvent struct {
	Tick        int64  `csv:"tick"`
	TimestampUS int64  `csv:"timestamp_us"`
	LabelA      string `csv:"label_a"`
	HealthA     int32  `csv:"health_a"`
	LabelB      string `csv:"label_b"`
	HealthB     int32  `csv:"health_b"`
	Degenerate  bool   `csv:"degenerate"` // Coincident centres; normal fell back to velocity
}

// LogValue implements slog.LogValuer for structured logging.
func (e CollisionEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("tick", e.Tick),
		slog.Int64("timestamp_us", e.TimestampUS),
		slog.String("label_a", e.LabelA),
		slog.Int("health_a", int(e.HealthA)),
		slog.String("label_b", e.LabelB),
		slog.Int("health_b", int(e.HealthB)),
	)
}

// Clock measures monotonic time since simulation start.
type Clock struct {
	start time.Time
}

// NewClock starts a clock now.
func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

// Reset restarts the clock.
func (c *Clock) Reset() {
	c.start = time.Now()
}

// SinceStartUS returns microseconds elapsed since the clock started.
func (c *Clock) SinceStartUS() int64 {
	return time.Since(c.start).Microseconds()
}

// Elapsed returns the time since the clock started.
func (c *Clock) Elapsed() time.Duration {
	return time.Since(c.start)
}

// Sink consumes collision events in tick order, one batch per worker chunk.
type Sink interface {
	Consume(events []CollisionEvent) error
}

// Discard drops all events.
var Discard Sink = discard{}

type discard struct{}

func (discard) Consume([]CollisionEvent) error { return nil }

// SlogSink writes one log record per collision.
type SlogSink struct {
	Logger *slog.Logger
}

// NewSlogSink creates a sink writing to logger, or slog.Default() when nil.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{Logger: logger}
}

// Consume logs each event.
func (s *SlogSink) Consume(events []CollisionEvent) error {
	for _, e := range events {
		if e.Degenerate {
			s.Logger.Debug("degenerate collision normal", "label_a", e.LabelA, "label_b", e.LabelB, "tick", e.Tick)
		}
		s.Logger.Info("collision", "event", e)
	}
	return nil
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(events []CollisionEvent) error

// Consume calls f.
func (f SinkFunc) Consume(events []CollisionEvent) error { return f(events) }

// MultiSink fans events out to several sinks.
type MultiSink []Sink

// Consume forwards to every sink and joins their errors.
func (m MultiSink) Consume(events []CollisionEvent) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Consume(events); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
