package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/circlesim/config"
)

// csvTable appends gocsv records to one file, writing the header once.
type csvTable struct {
	file          *os.File
	headerWritten bool
}

func openTable(dir, name string) (*csvTable, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvTable{file: f}, nil
}

func (t *csvTable) write(records any) error {
	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.file); err != nil {
			return err
		}
		t.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, t.file)
}

// OutputManager handles structured run output with CSV logging.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir        string
	collisions *csvTable
	telemetry  *csvTable
	perf       *csvTable
	summary    *csvTable
	hall       *csvTable
	bookmarks  *csvTable
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	tables := []struct {
		dst  **csvTable
		name string
	}{
		{&om.collisions, "collisions.csv"},
		{&om.telemetry, "telemetry.csv"},
		{&om.perf, "perf.csv"},
		{&om.summary, "summary.csv"},
		{&om.hall, "hall_of_fame.csv"},
		{&om.bookmarks, "bookmarks.csv"},
	}
	for _, tb := range tables {
		t, err := openTable(dir, tb.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*tb.dst = t
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// Consume appends collision events to collisions.csv. OutputManager is a Sink.
func (om *OutputManager) Consume(events []CollisionEvent) error {
	if om == nil || len(events) == 0 {
		return nil
	}
	if err := om.collisions.write(events); err != nil {
		return fmt.Errorf("writing collisions: %w", err)
	}
	return nil
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.write([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteSummary writes the end-of-run summary to summary.csv.
func (om *OutputManager) WriteSummary(s RunSummary) error {
	if om == nil {
		return nil
	}
	if err := om.summary.write([]RunSummary{s}); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// WriteBookmarks appends bookmarks to bookmarks.csv.
func (om *OutputManager) WriteBookmarks(bookmarks []Bookmark) error {
	if om == nil || len(bookmarks) == 0 {
		return nil
	}
	if err := om.bookmarks.write(bookmarks); err != nil {
		return fmt.Errorf("writing bookmarks: %w", err)
	}
	return nil
}

// WriteHallOfFame writes ranked entities to hall_of_fame.csv.
func (om *OutputManager) WriteHallOfFame(entries []HallEntry) error {
	if om == nil || len(entries) == 0 {
		return nil
	}
	if err := om.hall.write(entries); err != nil {
		return fmt.Errorf("writing hall of fame: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, t := range []*csvTable{om.collisions, om.telemetry, om.perf, om.summary, om.hall, om.bookmarks} {
		if t == nil {
			continue
		}
		if err := t.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ReadCollisions parses a collisions.csv stream.
func ReadCollisions(r io.Reader) ([]CollisionEvent, error) {
	var events []CollisionEvent
	if err := gocsv.Unmarshal(r, &events); err != nil {
		return nil, fmt.Errorf("reading collisions: %w", err)
	}
	return events, nil
}
