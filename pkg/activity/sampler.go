package activity

import "github.com/ja7ad/loadshift/pkg/types"

// Sampler turns cumulative counters into per-interval deltas for one process.
type Sampler struct {
	reader   CounterReader
	interval float64 // seconds
	prev     *types.Counters
}

// NewSampler returns a Sampler reading through r. Disk throughput is computed
// against cfg.TickInterval, the nominal interval, not the measured one.
func NewSampler(r CounterReader, cfg Config) *Sampler {
	cfg = cfg.normalize()
	return &Sampler{reader: r, interval: cfg.TickInterval.Seconds()}
}

// Next reads fresh counters for pid and returns the change since the last read.
//
// The first read after construction or Reset is a warm-up: it becomes the
// baseline and yields an all-zero sample. On a read error the previous
// snapshot is kept and the error is returned as is.
func (s *Sampler) Next(pid int32) (IntervalSample, error) {
	cur, err := s.reader.Read(pid)
	if err != nil {
		return IntervalSample{}, err
	}

	prev := s.prev
	s.prev = &cur
	if prev == nil {
		return IntervalSample{}, nil
	}
	return Delta(*prev, cur, s.interval), nil
}

// Warm reports whether a baseline snapshot exists.
func (s *Sampler) Warm() bool { return s.prev != nil }

// Reset drops the baseline so the next read is a warm-up.
func (s *Sampler) Reset() { s.prev = nil }

// Delta computes the interval sample between two snapshots taken
// intervalSec apart. Byte counters that went backwards count as zero.
func Delta(prev, cur types.Counters, intervalSec float64) IntervalSample {
	var disk float64
	if intervalSec > 0 {
		moved := cur.ReadBytes.Delta(prev.ReadBytes) + cur.WriteBytes.Delta(prev.WriteBytes)
		disk = moved.MB() / intervalSec
	}
	return IntervalSample{
		DiskMBps:      disk,
		MemoryDeltaMB: cur.RSS.MB() - prev.RSS.MB(),
		ThreadDelta:   cur.Threads - prev.Threads,
	}
}
