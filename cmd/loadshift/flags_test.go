//go:build linux

package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/loadshift/pkg/config"
)

func parse(t *testing.T, args ...string) (*opts, *cobra.Command) {
	t.Helper()
	var o opts
	cmd := &cobra.Command{Use: "loadshift", RunE: func(*cobra.Command, []string) error { return nil }}
	o.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return &o, cmd
}

func TestApply_OnlyChangedFlagsOverride(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Timing.Hysteresis = 45 * time.Second // as if from a file
	cfg.Thresholds.DiskMBps = 25

	o, cmd := parse(t, "--process", "game.exe,Game64.exe", "--disk-threshold", "12.5", "--dry-run", "--window", "8")
	require.NoError(t, o.apply(cmd, cfg))

	assert.Equal(t, []string{"game.exe", "Game64.exe"}, cfg.Target.Names)
	assert.Equal(t, 12.5, cfg.Thresholds.DiskMBps)
	assert.True(t, cfg.Monitor.DryRun)
	assert.Equal(t, 8, cfg.Timing.ActivityWindow)
	assert.Equal(t, 45*time.Second, cfg.Timing.Hysteresis, "unset flag must keep the file value")
	assert.Equal(t, config.DefaultBackend, cfg.Sampler.Backend)
}

func TestApply_Invalid(t *testing.T) {
	cases := map[string][]string{
		"bad_backend":   {"--backend", "ebpf"},
		"zero_window":   {"--window", "0"},
		"tiny_interval": {"--interval", "1ms"},
		"bad_level":     {"--log-level", "loud"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			o, cmd := parse(t, args...)
			err := o.apply(cmd, config.NewDefaultConfig())
			require.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}
