package config

import (
	"time"

	"github.com/ja7ad/loadshift/pkg/activity"
)

// Default values.
const (
	DefaultLogFile       = "loadshift.log"
	DefaultLogFormat     = "console"
	DefaultLogLevel      = "info"
	DefaultMaxLogBackups = 3
	DefaultMaxLogSizeMB  = 10
	DefaultBackend       = "procfs"
	DefaultIdleInterval  = 5 * time.Second
)

// DefaultTargetNames are the process names watched when none are configured.
var DefaultTargetNames = []string{"PathOfExileSteam.exe", "PathOfExile.exe", "PathOfExile_x64.exe"}

// Config is the full configuration surface.
type Config struct {
	Target     TargetConfig     `json:"target" yaml:"target"`
	Thresholds ThresholdsConfig `json:"thresholds" yaml:"thresholds"`
	Timing     TimingConfig     `json:"timing" yaml:"timing"`
	Sampler    SamplerConfig    `json:"sampler" yaml:"sampler"`
	Monitor    MonitorConfig    `json:"monitor" yaml:"monitor"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// TargetConfig names the process to watch.
type TargetConfig struct {
	Names []string `json:"names" yaml:"names" validate:"required,min=1,dive,required"`
}

// ThresholdsConfig holds the high-activity triggers.
type ThresholdsConfig struct {
	DiskMBps float64 `json:"disk_mbps" yaml:"disk_mbps" validate:"gt=0"`
	MemoryMB float64 `json:"memory_mb" yaml:"memory_mb" validate:"gt=0"`
	Threads  int32   `json:"threads" yaml:"threads" validate:"gt=0"`
}

// TimingConfig holds poll rates, hysteresis and window size.
type TimingConfig struct {
	TickInterval   time.Duration `json:"tick_interval" yaml:"tick_interval" validate:"min=10ms"`
	IdleInterval   time.Duration `json:"idle_interval" yaml:"idle_interval" validate:"min=10ms"`
	Hysteresis     time.Duration `json:"hysteresis" yaml:"hysteresis" validate:"gt=0"`
	ActivityWindow int           `json:"activity_window" yaml:"activity_window" validate:"min=1,max=1000"`
}

// SamplerConfig selects the counter backend.
type SamplerConfig struct {
	Backend string `json:"backend" yaml:"backend" validate:"backend"`
}

// MonitorConfig holds loop behavior and outputs.
type MonitorConfig struct {
	RestoreOnExit bool   `json:"restore_on_exit" yaml:"restore_on_exit"`
	DryRun        bool   `json:"dry_run" yaml:"dry_run"`
	EventsFile    string `json:"events_file,omitempty" yaml:"events_file,omitempty"`
}

// LogConfig defines configuration for logging.
type LogConfig struct {
	LogFile       string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	LogFormat     string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,logformat"`
	LogLevel      string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,loglevel"`
	MaxLogBackups int    `json:"max_log_backups,omitempty" yaml:"max_log_backups,omitempty" validate:"min=0"`
	MaxLogSizeMB  int    `json:"max_log_size_mb,omitempty" yaml:"max_log_size_mb,omitempty" validate:"min=0"`
}

// NewDefaultConfig returns the configuration used when no file is given.
func NewDefaultConfig() *Config {
	a := activity.DefaultConfig()
	return &Config{
		Target: TargetConfig{Names: append([]string(nil), DefaultTargetNames...)},
		Thresholds: ThresholdsConfig{
			DiskMBps: a.DiskThresholdMBps,
			MemoryMB: a.MemoryThresholdMB,
			Threads:  a.ThreadThreshold,
		},
		Timing: TimingConfig{
			TickInterval:   a.TickInterval,
			IdleInterval:   DefaultIdleInterval,
			Hysteresis:     a.Hysteresis,
			ActivityWindow: a.Window,
		},
		Sampler: SamplerConfig{Backend: DefaultBackend},
		Monitor: MonitorConfig{RestoreOnExit: true},
		Log:     NewDefaultLogConfig(),
	}
}

// NewDefaultLogConfig creates default log configuration.
func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		LogFile:       DefaultLogFile,
		LogFormat:     DefaultLogFormat,
		LogLevel:      DefaultLogLevel,
		MaxLogBackups: DefaultMaxLogBackups,
		MaxLogSizeMB:  DefaultMaxLogSizeMB,
	}
}

// Activity converts the thresholds and timing into the engine configuration.
func (c *Config) Activity() activity.Config {
	return activity.Config{
		DiskThresholdMBps: c.Thresholds.DiskMBps,
		MemoryThresholdMB: c.Thresholds.MemoryMB,
		ThreadThreshold:   c.Thresholds.Threads,
		TickInterval:      c.Timing.TickInterval,
		Hysteresis:        c.Timing.Hysteresis,
		Window:            c.Timing.ActivityWindow,
	}
}
