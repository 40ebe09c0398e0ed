//go:build linux

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ja7ad/loadshift/pkg/activity"
	"github.com/ja7ad/loadshift/pkg/config"
	"github.com/ja7ad/loadshift/pkg/logger"
	"github.com/ja7ad/loadshift/pkg/monitor"
	"github.com/ja7ad/loadshift/pkg/system/affinity"
	"github.com/ja7ad/loadshift/pkg/system/proc"
	"github.com/ja7ad/loadshift/pkg/system/util"
	"github.com/ja7ad/loadshift/pkg/types"
)

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "loadshift",
		Short: "Activity-aware CPU affinity for a single game process",
		Long: `The loadshift tool watches one process by name, samples its disk
throughput, memory growth and thread count, and pins it to a reduced core set
while those signals run high (loading, shader compilation, zone changes).
Once activity has stayed low for the hysteresis period, the full core set is
restored.

Examples:
  loadshift
  loadshift --process PathOfExile.exe --hysteresis 30s --log-level debug
  loadshift --config ./loadshift.yaml --events events.jsonl --dry-run`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GetConfigPath(o.configPath)
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := o.apply(cmd, cfg); err != nil {
				return err
			}
			return run(cmd.Context(), cfg, path)
		},
	}

	o.register(root)

	if err := root.Execute(); err != nil {
		log := zerolog.New(os.Stderr).With().Timestamp().Logger()
		log.Error().Err(err).Msg("loadshift failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, configPath string) error {
	n := util.LogicalCores()
	limited, full := types.LimitedCoreSet(n), types.FullCoreSet(n)

	host, kernel, cpus, mem := util.SystemSummary()
	fmt.Printf(_console, host, kernel, cpus, mem, full, limited, time.Now().Format("2006-01-02 15:04:05"))

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	if configPath != "" {
		log.Info().Str("path", configPath).Msg("Loaded configuration")
	}

	reader, err := proc.NewReader(cfg.Sampler.Backend)
	if err != nil {
		return fmt.Errorf("reader: %w", err)
	}

	var act activity.Actuator = affinity.New()
	if cfg.Monitor.DryRun {
		act = affinity.NewDryRun(log)
	}

	sinks := []monitor.EventSink{monitor.NewLogSink(log)}
	if cfg.Monitor.EventsFile != "" {
		js, err := monitor.OpenJSONLinesFile(cfg.Monitor.EventsFile)
		if err != nil {
			return err
		}
		defer js.Close()
		sinks = append(sinks, js)
	}

	m, err := monitor.New(monitor.Options{
		Names:         cfg.Target.Names,
		Activity:      cfg.Activity(),
		IdleInterval:  cfg.Timing.IdleInterval,
		RestoreOnExit: cfg.Monitor.RestoreOnExit,
		Limited:       limited,
		Full:          full,
		Finder:        proc.NewFinder(),
		Reader:        reader,
		Actuator:      act,
		Sinks:         sinks,
	}, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := m.Run(ctx); err != nil {
		return err
	}
	log.Info().Msg("Monitoring stopped.")
	return nil
}

const _console = `loadshift - activity-aware CPU affinity

       Host: %s
       Kernel: %s
       CPUs: %s
       Mem: %s

       Full cores: %s
       Limited cores: %s

Started at %s

`
