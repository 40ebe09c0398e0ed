package proc

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// Target identifies one running process instance. PID alone is not enough
// to tell a restarted process from the old one once PIDs get reused, so
// CreateTime (ms since epoch) is part of the identity.
type Target struct {
	PID        int32
	Name       string
	CreateTime int64
}

// Same reports whether t and o refer to the same process instance.
func (t Target) Same(o Target) bool {
	return t.PID == o.PID && t.CreateTime == o.CreateTime
}

func (t Target) String() string { return fmt.Sprintf("%s (PID: %d)", t.Name, t.PID) }

// Finder looks up a target process by name.
type Finder struct {
	self int32
}

// NewFinder returns a Finder that never matches the calling process.
func NewFinder() *Finder {
	return &Finder{self: int32(os.Getpid())}
}

// Find returns the first running process, in enumeration order, whose name matches one
// of names (case-insensitive). It returns ErrProcessNotFound when none does.
//
// The kernel truncates process names to 15 bytes, and gopsutil only restores
// the full name from a '/'-separated argv[0]. Wine and Proton games carry a
// Windows path there, so the executable name from the command line is
// checked as well.
func (f *Finder) Find(ctx context.Context, names []string) (Target, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return Target{}, fmt.Errorf("proc: list processes: %w", err)
	}

	for _, p := range procs {
		if p.Pid == f.self {
			continue
		}
		name, ok := f.match(ctx, p, names)
		if !ok {
			continue
		}
		ct, err := p.CreateTimeWithContext(ctx)
		if err != nil {
			// gone between listing and inspection
			continue
		}
		return Target{PID: p.Pid, Name: name, CreateTime: ct}, nil
	}
	return Target{}, ErrProcessNotFound
}

// match returns the name that matched, preferring the full executable name
// from the command line over the truncated kernel name.
func (f *Finder) match(ctx context.Context, p *process.Process, names []string) (string, bool) {
	name, err := p.NameWithContext(ctx)
	if err == nil && matchName(name, names) {
		return name, true
	}
	args, err := p.CmdlineSliceWithContext(ctx)
	if err != nil || len(args) == 0 {
		return "", false
	}
	if exe := exeBase(args[0]); matchName(exe, names) {
		return exe, true
	}
	return "", false
}

// exeBase returns the last element of a Unix or Windows path.
func exeBase(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

func matchName(name string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(name, n) {
			return true
		}
	}
	return false
}
