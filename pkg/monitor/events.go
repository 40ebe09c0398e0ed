package monitor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ja7ad/loadshift/pkg/activity"
)

// EventKind names an observable lifecycle or placement event.
type EventKind string

const (
	ProcessDetected EventKind = "process_detected"
	ProcessEnded    EventKind = "process_ended"
	ActivityRose    EventKind = "activity_rose"
	ActivitySettled EventKind = "activity_settled"
)

// Event is one observable output of the monitor.
type Event struct {
	Kind    EventKind        `json:"kind"`
	At      time.Time        `json:"time"`
	PID     int32            `json:"pid"`
	Name    string           `json:"name"`
	Mode    string           `json:"mode"`
	Cores   string           `json:"cores,omitempty"`
	Signals activity.Signals `json:"signals"`
}

// EventSink receives events in order. Publish must not block for long; it
// runs on the tick goroutine.
type EventSink interface {
	Publish(Event) error
}

// LogSink writes events to a zerolog logger.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink returns a sink logging through logger.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("component", "Events").Logger()}
}

// Publish logs ev at info level.
func (s *LogSink) Publish(ev Event) error {
	e := s.logger.Info().
		Str("event", string(ev.Kind)).
		Int32("pid", ev.PID).
		Str("name", ev.Name)

	switch ev.Kind {
	case ActivityRose, ActivitySettled:
		e = e.Str("cores", ev.Cores).
			Float64("disk_mbps", ev.Signals.AvgDiskMBps).
			Float64("memory_delta_mb", ev.Signals.AvgMemoryDeltaMB).
			Int32("thread_delta", ev.Signals.ThreadDelta)
	}
	e.Msg(eventMessage(ev.Kind))
	return nil
}

func eventMessage(k EventKind) string {
	switch k {
	case ProcessDetected:
		return "Process detected. Monitoring started."
	case ProcessEnded:
		return "Process ended."
	case ActivityRose:
		return "High activity detected. Limiting CPU affinity."
	case ActivitySettled:
		return "Low activity sustained. Restoring CPU affinity to all cores."
	default:
		return string(k)
	}
}

// JSONLinesSink appends one JSON object per event to a writer.
type JSONLinesSink struct {
	enc   *json.Encoder
	close func() error
}

// NewJSONLinesSink wraps w. Close is a no-op for sinks built this way.
func NewJSONLinesSink(w io.Writer) *JSONLinesSink {
	return &JSONLinesSink{enc: json.NewEncoder(w), close: func() error { return nil }}
}

// OpenJSONLinesFile opens (or creates) path for appending.
func OpenJSONLinesFile(path string) (*JSONLinesSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("monitor: events dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("monitor: open events file: %w", err)
	}
	s := NewJSONLinesSink(f)
	s.close = f.Close
	return s, nil
}

// Publish writes ev as a single JSON line.
func (s *JSONLinesSink) Publish(ev Event) error {
	return s.enc.Encode(ev)
}

// Close closes the underlying file, if the sink owns one.
func (s *JSONLinesSink) Close() error { return s.close() }
