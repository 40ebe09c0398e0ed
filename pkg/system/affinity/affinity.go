//go:build linux

package affinity

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/ja7ad/loadshift/pkg/system/proc"
	"github.com/ja7ad/loadshift/pkg/types"
)

// Setter applies core sets with sched_setaffinity(2).
//
// sched_setaffinity works on a single thread, so Apply walks
// /proc/<pid>/task and sets every thread; threads created afterwards
// inherit the mask from whichever thread spawns them.
type Setter struct {
	tasks func(pid int32) ([]int, error)
	set   func(tid int, set *unix.CPUSet) error
}

// New returns a Setter.
func New() *Setter {
	return &Setter{tasks: proc.ReadProcTasks, set: unix.SchedSetaffinity}
}

// Apply restricts every thread of pid to cores.
//
// A failure on one thread does not stop the walk: the remaining threads are
// still set and the first error is returned. The caller must therefore treat
// a failed Apply as "mask possibly applied to some threads".
func (s *Setter) Apply(pid int32, cores types.CoreSet) error {
	if cores.Len() == 0 {
		return ErrEmptySet
	}
	set := ToCPUSet(cores)

	tids, err := s.tasks(pid)
	if err != nil {
		// no task listing; fall back to the main thread
		tids = []int{int(pid)}
	}

	var first error
	applied := 0
	for _, tid := range tids {
		err := s.set(tid, &set)
		switch {
		case err == nil:
			applied++
		case errors.Is(err, unix.ESRCH) && tid != int(pid):
			// thread exited while walking the list
		case first == nil:
			first = classify(pid, err)
		}
	}
	if first != nil {
		return first
	}
	if applied == 0 {
		return fmt.Errorf("%w: pid %d", ErrProcessGone, pid)
	}
	return nil
}

// Get returns the affinity of the main thread of pid.
func Get(pid int32) (types.CoreSet, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(int(pid), &set); err != nil {
		return nil, classify(pid, err)
	}
	return FromCPUSet(&set), nil
}

// ToCPUSet translates a CoreSet into the kernel's bitmask representation.
func ToCPUSet(cores types.CoreSet) unix.CPUSet {
	var set unix.CPUSet
	set.Zero()
	for _, c := range cores {
		set.Set(c)
	}
	return set
}

// FromCPUSet translates a kernel bitmask back into a CoreSet.
func FromCPUSet(set *unix.CPUSet) types.CoreSet {
	n := set.Count()
	out := make(types.CoreSet, 0, n)
	for c := 0; len(out) < n; c++ {
		if set.IsSet(c) {
			out = append(out, c)
		}
	}
	return out
}

func classify(pid int32, err error) error {
	switch {
	case errors.Is(err, unix.EPERM), errors.Is(err, unix.EACCES):
		return fmt.Errorf("%w: pid %d: %w", ErrPermissionDenied, pid, err)
	case errors.Is(err, unix.ESRCH):
		return fmt.Errorf("%w: pid %d", ErrProcessGone, pid)
	default:
		return fmt.Errorf("affinity: pid %d: %w", pid, err)
	}
}
