package activity

import (
	"time"

	"github.com/ja7ad/loadshift/pkg/types"
)

// Config holds detection thresholds and timing.
// Units:
//   - DiskThresholdMBps: MB/s of read+write, averaged over Window samples (>= triggers)
//   - MemoryThresholdMB: average RSS growth per tick in MB (> triggers)
//   - ThreadThreshold:   raw thread count increase in one tick (> triggers)
//   - TickInterval:      nominal sampling interval used to turn bytes into MB/s
//   - Hysteresis:        sustained quiet time before the full core set is restored
//   - Window:            number of samples in each smoothing window
type Config struct {
	DiskThresholdMBps float64
	MemoryThresholdMB float64
	ThreadThreshold   int32
	TickInterval      time.Duration
	Hysteresis        time.Duration
	Window            int
}

// DefaultConfig returns the thresholds tuned for game map transitions.
func DefaultConfig() Config {
	return Config{
		DiskThresholdMBps: 10,                     // MB/s
		MemoryThresholdMB: 400,                    // MB per tick
		ThreadThreshold:   5,                      // new threads per tick
		TickInterval:      250 * time.Millisecond, // poll rate while monitoring
		Hysteresis:        20 * time.Second,       // quiet time before restoring
		Window:            5,                      // samples
	}
}

// normalize fills non-positive fields from DefaultConfig.
func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.DiskThresholdMBps <= 0 {
		c.DiskThresholdMBps = d.DiskThresholdMBps
	}
	if c.MemoryThresholdMB <= 0 {
		c.MemoryThresholdMB = d.MemoryThresholdMB
	}
	if c.ThreadThreshold <= 0 {
		c.ThreadThreshold = d.ThreadThreshold
	}
	if c.TickInterval <= 0 {
		c.TickInterval = d.TickInterval
	}
	if c.Hysteresis <= 0 {
		c.Hysteresis = d.Hysteresis
	}
	if c.Window <= 0 {
		c.Window = d.Window
	}
	return c
}

// CounterReader reads cumulative counters for one process.
type CounterReader interface {
	Read(pid int32) (types.Counters, error)
}

// Actuator applies a core set to a process.
type Actuator interface {
	Apply(pid int32, cores types.CoreSet) error
}

// IntervalSample is the per-tick change derived from two counter reads.
type IntervalSample struct {
	DiskMBps      float64
	MemoryDeltaMB float64
	ThreadDelta   int32
}

// Signals are what the engine decides on: smoothed disk and memory,
// raw thread delta.
type Signals struct {
	AvgDiskMBps      float64 `json:"avg_disk_mbps"`
	AvgMemoryDeltaMB float64 `json:"avg_memory_delta_mb"`
	ThreadDelta      int32   `json:"thread_delta"`
}

// Mode is the placement state of the target.
type Mode int

const (
	Normal  Mode = iota // full core set
	Limited             // reduced core set
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Limited:
		return "limited"
	default:
		return "unknown"
	}
}

// State is the engine's mutable state. LowSince is set while Limited and
// quiet, and marks the start of the current quiet streak.
type State struct {
	Mode     Mode
	LowSince *time.Time
}

// Transition describes one state change that was applied.
type Transition struct {
	From    Mode
	To      Mode
	At      time.Time
	Cores   types.CoreSet
	Signals Signals
}
