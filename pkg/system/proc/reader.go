//go:build linux

package proc

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/ja7ad/loadshift/pkg/types"
)

// Counter backends accepted by NewReader.
const (
	BackendProcfs   = "procfs"
	BackendGopsutil = "gopsutil"
)

// Reader reads cumulative counters for a single process.
type Reader interface {
	Read(pid int32) (types.Counters, error)
}

// NewReader returns the Reader for the named backend.
//   - procfs: parses /proc/<pid>/{stat,io,smaps_rollup|statm} directly.
//   - gopsutil: goes through github.com/shirou/gopsutil/v3/process.
//
// Both report failures as ErrNoSuchProcess or ErrReadFailure.
func NewReader(backend string) (Reader, error) {
	switch backend {
	case "", BackendProcfs:
		return procfsReader{}, nil
	case BackendGopsutil:
		return gopsutilReader{ctx: context.Background()}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

type procfsReader struct{}

func (procfsReader) Read(pid int32) (types.Counters, error) {
	st, err := ReadProcStat(pid)
	if err != nil {
		return types.Counters{}, classify(pid, err)
	}
	if st.Zombie() {
		return types.Counters{}, fmt.Errorf("%w: pid %d is a zombie", ErrNoSuchProcess, pid)
	}

	rb, wb, err := ReadProcIO(pid)
	if err != nil {
		return types.Counters{}, classify(pid, err)
	}

	rss, err := ReadProcRSS(pid)
	if err != nil {
		return types.Counters{}, classify(pid, err)
	}

	return types.Counters{
		ReadBytes:  types.ToBytes(rb),
		WriteBytes: types.ToBytes(wb),
		RSS:        types.ToBytes(rss),
		Threads:    st.Threads,
	}, nil
}

type gopsutilReader struct {
	ctx context.Context
}

func (r gopsutilReader) Read(pid int32) (types.Counters, error) {
	p, err := process.NewProcessWithContext(r.ctx, pid)
	if err != nil {
		return types.Counters{}, classify(pid, err)
	}

	io, err := p.IOCountersWithContext(r.ctx)
	if err != nil {
		return types.Counters{}, classify(pid, err)
	}

	mem, err := p.MemoryInfoWithContext(r.ctx)
	if err != nil {
		return types.Counters{}, classify(pid, err)
	}

	threads, err := p.NumThreadsWithContext(r.ctx)
	if err != nil {
		return types.Counters{}, classify(pid, err)
	}

	return types.Counters{
		ReadBytes:  types.ToBytes(io.ReadBytes),
		WriteBytes: types.ToBytes(io.WriteBytes),
		RSS:        types.ToBytes(mem.RSS),
		Threads:    threads,
	}, nil
}
