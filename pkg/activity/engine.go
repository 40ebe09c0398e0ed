package activity

import (
	"fmt"
	"time"

	"github.com/ja7ad/loadshift/pkg/types"
)

// Engine is the two-state decision machine.
//
// Normal -> Limited fires on the first high tick. Limited -> Normal needs
// Hysteresis of uninterrupted quiet ticks; any high tick while Limited
// restarts the streak. The actuator is called only on a real mode change.
type Engine struct {
	cfg     Config
	act     Actuator
	limited types.CoreSet
	full    types.CoreSet
	state   State
}

// NewEngine returns an engine in Normal mode. limited and full are the two
// core sets it switches between.
func NewEngine(cfg Config, act Actuator, limited, full types.CoreSet) *Engine {
	return &Engine{
		cfg:     cfg.normalize(),
		act:     act,
		limited: limited,
		full:    full,
	}
}

// High reports whether sig counts as high activity. The boundaries differ per
// signal on purpose: disk is inclusive, memory and threads are strict.
func (e *Engine) High(sig Signals) bool {
	return sig.AvgDiskMBps >= e.cfg.DiskThresholdMBps ||
		sig.AvgMemoryDeltaMB > e.cfg.MemoryThresholdMB ||
		sig.ThreadDelta > e.cfg.ThreadThreshold
}

// Step evaluates one tick for pid at time now.
//
// It returns a non-nil Transition when the mode changed. When the actuator
// fails the mode is left as it was and the error wraps ErrActuation. A failed
// entry is retried on the next high tick; a failed restore restarts the quiet
// streak, so it is retried only after another Hysteresis of quiet.
func (e *Engine) Step(pid int32, now time.Time, sig Signals) (*Transition, error) {
	high := e.High(sig)

	switch e.state.Mode {
	case Normal:
		if !high {
			return nil, nil
		}
		return e.switchTo(pid, Limited, now, sig)

	case Limited:
		if high {
			e.state.LowSince = nil
			return nil, nil
		}
		if e.state.LowSince == nil {
			t := now
			e.state.LowSince = &t
			return nil, nil
		}
		if now.Sub(*e.state.LowSince) < e.cfg.Hysteresis {
			return nil, nil
		}
		tr, err := e.switchTo(pid, Normal, now, sig)
		if err != nil {
			// a failed restore waits out another full quiet period
			t := now
			e.state.LowSince = &t
		}
		return tr, err
	}
	return nil, nil
}

func (e *Engine) switchTo(pid int32, to Mode, now time.Time, sig Signals) (*Transition, error) {
	cores := e.full
	if to == Limited {
		cores = e.limited
	}
	if err := e.act.Apply(pid, cores); err != nil {
		return nil, fmt.Errorf("%w: %s -> %s: %w", ErrActuation, e.state.Mode, to, err)
	}

	tr := &Transition{From: e.state.Mode, To: to, At: now, Cores: cores, Signals: sig}
	e.state = State{Mode: to}
	return tr, nil
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	s := e.state
	if s.LowSince != nil {
		t := *s.LowSince
		s.LowSince = &t
	}
	return s
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.state.Mode }

// Cores returns the core set that belongs to mode m.
func (e *Engine) Cores(m Mode) types.CoreSet {
	if m == Limited {
		return e.limited
	}
	return e.full
}

// Config returns the normalized configuration.
func (e *Engine) Config() Config { return e.cfg }

// Reset returns to Normal with no quiet streak. It does not touch the actuator.
func (e *Engine) Reset() { e.state = State{Mode: Normal} }
