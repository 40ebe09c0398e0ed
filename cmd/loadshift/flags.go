//go:build linux

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ja7ad/loadshift/pkg/config"
)

// opts holds command-line values. Only flags the user actually set override
// the configuration file.
type opts struct {
	configPath string

	names           []string
	diskThreshold   float64
	memoryThreshold float64
	threadThreshold int32

	interval     time.Duration
	idleInterval time.Duration
	hysteresis   time.Duration
	window       int

	backend       string
	dryRun        bool
	restoreOnExit bool
	eventsFile    string

	logFile   string
	logLevel  string
	logFormat string
}

func (o *opts) register(cmd *cobra.Command) {
	d := config.NewDefaultConfig()
	f := cmd.Flags()

	f.StringVarP(&o.configPath, "config", "c", "", "path to a YAML config file (default $"+config.EnvConfigPath+" or ./"+config.DefaultConfigFile+")")

	f.StringSliceVarP(&o.names, "process", "p", d.Target.Names, "target process name(s), matched case-insensitively")
	f.Float64Var(&o.diskThreshold, "disk-threshold", d.Thresholds.DiskMBps, "average disk throughput (MB/s) that counts as high activity")
	f.Float64Var(&o.memoryThreshold, "memory-threshold", d.Thresholds.MemoryMB, "average RSS growth per tick (MB) that counts as high activity")
	f.Int32Var(&o.threadThreshold, "thread-threshold", d.Thresholds.Threads, "thread count growth per tick that counts as high activity")

	f.DurationVarP(&o.interval, "interval", "i", d.Timing.TickInterval, "sampling interval while the target runs")
	f.DurationVar(&o.idleInterval, "idle-interval", d.Timing.IdleInterval, "lookup interval while the target is not running")
	f.DurationVar(&o.hysteresis, "hysteresis", d.Timing.Hysteresis, "quiet time required before restoring all cores")
	f.IntVarP(&o.window, "window", "w", d.Timing.ActivityWindow, "number of ticks averaged per signal")

	f.StringVar(&o.backend, "backend", d.Sampler.Backend, "counter backend: procfs or gopsutil")
	f.BoolVar(&o.dryRun, "dry-run", d.Monitor.DryRun, "log affinity changes without applying them")
	f.BoolVar(&o.restoreOnExit, "restore-on-exit", d.Monitor.RestoreOnExit, "restore all cores on shutdown if the target is limited")
	f.StringVar(&o.eventsFile, "events", "", "append events as JSON lines to this file")

	f.StringVar(&o.logFile, "log-file", d.Log.LogFile, "log file path (empty disables the file)")
	f.StringVar(&o.logLevel, "log-level", d.Log.LogLevel, "log level: debug, info, warn, error")
	f.StringVar(&o.logFormat, "log-format", d.Log.LogFormat, "console log format: console, text or json")
}

// apply copies changed flags onto cfg and re-validates it.
func (o *opts) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	set := func(name string, fn func()) {
		if f.Changed(name) {
			fn()
		}
	}

	set("process", func() { cfg.Target.Names = o.names })
	set("disk-threshold", func() { cfg.Thresholds.DiskMBps = o.diskThreshold })
	set("memory-threshold", func() { cfg.Thresholds.MemoryMB = o.memoryThreshold })
	set("thread-threshold", func() { cfg.Thresholds.Threads = o.threadThreshold })
	set("interval", func() { cfg.Timing.TickInterval = o.interval })
	set("idle-interval", func() { cfg.Timing.IdleInterval = o.idleInterval })
	set("hysteresis", func() { cfg.Timing.Hysteresis = o.hysteresis })
	set("window", func() { cfg.Timing.ActivityWindow = o.window })
	set("backend", func() { cfg.Sampler.Backend = o.backend })
	set("dry-run", func() { cfg.Monitor.DryRun = o.dryRun })
	set("restore-on-exit", func() { cfg.Monitor.RestoreOnExit = o.restoreOnExit })
	set("events", func() { cfg.Monitor.EventsFile = o.eventsFile })
	set("log-file", func() { cfg.Log.LogFile = o.logFile })
	set("log-level", func() { cfg.Log.LogLevel = o.logLevel })
	set("log-format", func() { cfg.Log.LogFormat = o.logFormat })

	return config.ValidateConfig(cfg)
}
