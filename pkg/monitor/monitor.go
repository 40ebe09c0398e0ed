package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ja7ad/loadshift/pkg/activity"
	"github.com/ja7ad/loadshift/pkg/system/affinity"
	"github.com/ja7ad/loadshift/pkg/system/proc"
	"github.com/ja7ad/loadshift/pkg/types"
)

// Finder looks up the target process by candidate names.
// It returns proc.ErrProcessNotFound when none is running.
type Finder interface {
	Find(ctx context.Context, names []string) (proc.Target, error)
}

// Options wires a Monitor.
type Options struct {
	Names         []string
	Activity      activity.Config
	IdleInterval  time.Duration
	RestoreOnExit bool

	Limited types.CoreSet
	Full    types.CoreSet

	Finder   Finder
	Reader   activity.CounterReader
	Actuator activity.Actuator
	Sinks    []EventSink

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Monitor tracks one target process across starts and exits and drives the
// sample -> smooth -> decide pipeline once per tick. It is not safe for
// concurrent use; Run owns it.
type Monitor struct {
	opts     Options
	sampler  *activity.Sampler
	smoother *activity.Smoother
	engine   *activity.Engine
	logger   zerolog.Logger

	target  *proc.Target
	waiting bool
}

// New validates opts and returns a Monitor with no tracked target.
func New(opts Options, logger zerolog.Logger) (*Monitor, error) {
	switch {
	case len(opts.Names) == 0:
		return nil, errors.New("monitor: no target names")
	case opts.Finder == nil:
		return nil, errors.New("monitor: nil finder")
	case opts.Reader == nil:
		return nil, errors.New("monitor: nil counter reader")
	case opts.Actuator == nil:
		return nil, errors.New("monitor: nil actuator")
	case opts.Limited.Len() == 0 || opts.Full.Len() == 0:
		return nil, errors.New("monitor: empty core set")
	}
	if opts.IdleInterval <= 0 {
		opts.IdleInterval = 5 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	engine := activity.NewEngine(opts.Activity, opts.Actuator, opts.Limited, opts.Full)
	opts.Activity = engine.Config()

	return &Monitor{
		opts:     opts,
		sampler:  activity.NewSampler(opts.Reader, opts.Activity),
		smoother: activity.NewSmoother(opts.Activity.Window),
		engine:   engine,
		logger:   logger.With().Str("component", "Monitor").Logger(),
	}, nil
}

// Run ticks until ctx is cancelled, then restores the full core set if
// configured to. A single tick's failure never stops the loop.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info().
		Strs("names", m.opts.Names).
		Dur("tick_interval", m.opts.Activity.TickInterval).
		Dur("idle_interval", m.opts.IdleInterval).
		Dur("hysteresis", m.opts.Activity.Hysteresis).
		Int("window", m.opts.Activity.Window).
		Str("limited_cores", m.opts.Limited.String()).
		Str("full_cores", m.opts.Full.String()).
		Msg("Starting process monitoring...")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Shutdown()
			return nil
		case <-timer.C:
		}
		timer.Reset(m.Tick(ctx))
	}
}

// Tick runs one iteration and returns how long to wait before the next.
func (m *Monitor) Tick(ctx context.Context) time.Duration {
	t, err := m.opts.Finder.Find(ctx, m.opts.Names)
	switch {
	case errors.Is(err, proc.ErrProcessNotFound):
		m.lose("not running")
		if !m.waiting {
			m.logger.Info().Strs("names", m.opts.Names).Msg("Target process not detected. Waiting for start...")
			m.waiting = true
		}
		return m.opts.IdleInterval
	case err != nil:
		m.logger.Warn().Err(err).Msg("Process lookup failed")
		return m.opts.IdleInterval
	}
	m.waiting = false

	if m.target == nil || !m.target.Same(t) {
		// a different instance under a tracked name is a restart
		m.lose("replaced")
		m.detect(t)
	}

	sample, err := m.sampler.Next(t.PID)
	switch {
	case errors.Is(err, proc.ErrNoSuchProcess):
		m.lose("exited during read")
		return m.opts.IdleInterval
	case err != nil:
		m.logger.Warn().Err(err).Int32("pid", t.PID).Msg("Error reading process counters, skipping tick")
		return m.opts.Activity.TickInterval
	}

	sig := m.smoother.Push(sample)
	m.logger.Debug().
		Int32("pid", t.PID).
		Float64("disk_mbps", sample.DiskMBps).
		Float64("avg_disk_mbps", sig.AvgDiskMBps).
		Float64("memory_delta_mb", sample.MemoryDeltaMB).
		Float64("avg_memory_delta_mb", sig.AvgMemoryDeltaMB).
		Int32("thread_delta", sig.ThreadDelta).
		Str("mode", m.engine.Mode().String()).
		Msg("tick")

	tr, err := m.engine.Step(t.PID, m.opts.Clock(), sig)
	if err != nil {
		m.logActuation(t, err)
	}
	if tr != nil {
		kind := ActivityRose
		if tr.To == activity.Normal {
			kind = ActivitySettled
		}
		m.publish(Event{
			Kind:    kind,
			At:      tr.At,
			PID:     t.PID,
			Name:    t.Name,
			Mode:    tr.To.String(),
			Cores:   tr.Cores.String(),
			Signals: tr.Signals,
		})
	}
	return m.opts.Activity.TickInterval
}

// Shutdown restores the full core set when the target is still limited and
// RestoreOnExit is set.
func (m *Monitor) Shutdown() {
	if !m.opts.RestoreOnExit || m.target == nil || m.engine.Mode() != activity.Limited {
		return
	}
	t := *m.target
	if err := m.opts.Actuator.Apply(t.PID, m.opts.Full); err != nil {
		m.logActuation(t, fmt.Errorf("%w: restore on exit: %w", activity.ErrActuation, err))
		return
	}
	m.engine.Reset()
	m.logger.Info().
		Int32("pid", t.PID).
		Str("cores", m.opts.Full.String()).
		Msg("Restored CPU affinity to all cores on exit")
}

// Target returns the tracked process, if any.
func (m *Monitor) Target() (proc.Target, bool) {
	if m.target == nil {
		return proc.Target{}, false
	}
	return *m.target, true
}

// State returns the engine state.
func (m *Monitor) State() activity.State { return m.engine.State() }

func (m *Monitor) detect(t proc.Target) {
	m.reset()
	m.target = &t
	m.publish(Event{
		Kind: ProcessDetected,
		At:   m.opts.Clock(),
		PID:  t.PID,
		Name: t.Name,
		Mode: activity.Normal.String(),
	})
}

// lose forgets the tracked target, if any, and clears all per-process state.
func (m *Monitor) lose(reason string) {
	if m.target == nil {
		return
	}
	t := *m.target
	m.publish(Event{
		Kind: ProcessEnded,
		At:   m.opts.Clock(),
		PID:  t.PID,
		Name: t.Name,
		Mode: m.engine.Mode().String(),
	})
	m.logger.Debug().Int32("pid", t.PID).Str("reason", reason).Msg("Per-process state cleared")
	m.reset()
	m.target = nil
}

func (m *Monitor) reset() {
	m.sampler.Reset()
	m.smoother.Reset()
	m.engine.Reset()
}

func (m *Monitor) publish(ev Event) {
	for _, s := range m.opts.Sinks {
		if err := s.Publish(ev); err != nil {
			m.logger.Warn().Err(err).Str("event", string(ev.Kind)).Msg("Event sink failed")
		}
	}
}

func (m *Monitor) logActuation(t proc.Target, err error) {
	var e *zerolog.Event
	switch {
	case errors.Is(err, affinity.ErrPermissionDenied):
		e = m.logger.Error().Str("reason", "permission denied")
	case errors.Is(err, affinity.ErrProcessGone):
		e = m.logger.Warn().Str("reason", "process gone")
	default:
		e = m.logger.Error()
	}
	e.Err(err).
		Int32("pid", t.PID).
		Str("mode", m.engine.Mode().String()).
		Msg("Error setting CPU affinity")
}
