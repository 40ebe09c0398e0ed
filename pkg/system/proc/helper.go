//go:build linux

package proc

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"
)

// classify maps a raw read error onto ErrNoSuchProcess or ErrReadFailure.
// A process that vanished mid-read may surface as almost any error, so
// existence is checked last.
func classify(pid int32, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNoSuchProcess), errors.Is(err, ErrReadFailure):
		return err
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, syscall.ESRCH),
		errors.Is(err, process.ErrorProcessNotRunning),
		!Exists(pid):
		return fmt.Errorf("%w: pid %d", ErrNoSuchProcess, pid)
	default:
		return fmt.Errorf("%w: pid %d: %w", ErrReadFailure, pid, err)
	}
}
