package activity

// Window is a fixed-capacity FIFO of float64 samples. Pushing beyond
// capacity evicts the oldest sample.
type Window struct {
	buf  []float64
	next int
	n    int
}

// NewWindow returns an empty window holding at most size samples (min 1).
func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{buf: make([]float64, size)}
}

// Push appends v, evicting the oldest sample when full.
func (w *Window) Push(v float64) {
	w.buf[w.next] = v
	w.next = (w.next + 1) % len(w.buf)
	if w.n < len(w.buf) {
		w.n++
	}
}

// Average returns the arithmetic mean of the held samples, or 0 when empty.
// It is summed from the current contents each call, so it cannot drift.
func (w *Window) Average() float64 {
	if w.n == 0 {
		return 0
	}
	var sum float64
	for _, v := range w.Values() {
		sum += v
	}
	return sum / float64(w.n)
}

// Values returns the held samples, oldest first.
func (w *Window) Values() []float64 {
	out := make([]float64, 0, w.n)
	start := (w.next - w.n + len(w.buf)) % len(w.buf)
	for i := 0; i < w.n; i++ {
		out = append(out, w.buf[(start+i)%len(w.buf)])
	}
	return out
}

// Len returns the number of held samples.
func (w *Window) Len() int { return w.n }

// Cap returns the window capacity.
func (w *Window) Cap() int { return len(w.buf) }

// Reset empties the window.
func (w *Window) Reset() {
	w.next, w.n = 0, 0
}

// Smoother keeps one window over disk throughput and one over memory delta.
// Thread deltas pass through unsmoothed: bursts last a tick or two and
// averaging would hide them.
type Smoother struct {
	disk *Window
	mem  *Window
}

// NewSmoother returns a Smoother with two windows of the given size.
func NewSmoother(size int) *Smoother {
	return &Smoother{disk: NewWindow(size), mem: NewWindow(size)}
}

// Push feeds one sample and returns the resulting signals.
func (s *Smoother) Push(sample IntervalSample) Signals {
	s.disk.Push(sample.DiskMBps)
	s.mem.Push(sample.MemoryDeltaMB)
	return Signals{
		AvgDiskMBps:      s.disk.Average(),
		AvgMemoryDeltaMB: s.mem.Average(),
		ThreadDelta:      sample.ThreadDelta,
	}
}

// Disk returns the disk throughput window.
func (s *Smoother) Disk() *Window { return s.disk }

// Memory returns the memory delta window.
func (s *Smoother) Memory() *Window { return s.mem }

// Reset empties both windows.
func (s *Smoother) Reset() {
	s.disk.Reset()
	s.mem.Reset()
}
