package types

import (
	"slices"
	"strconv"
	"strings"
)

// CoreSet is a sorted set of logical core indices.
type CoreSet []int

// NewCoreSet builds a CoreSet from arbitrary indices, dropping negatives and duplicates.
func NewCoreSet(cores ...int) CoreSet {
	out := make(CoreSet, 0, len(cores))
	for _, c := range cores {
		if c >= 0 {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// FullCoreSet returns every core in [0, n).
func FullCoreSet(n int) CoreSet {
	if n < 1 {
		n = 1
	}
	out := make(CoreSet, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// LimitedCoreSet returns cores 0 and 1 plus cores [2, n/2), clipped to [0, n).
//
//	n=1  -> 0
//	n=4  -> 0-1
//	n=8  -> 0-3
//	n=16 -> 0-7
func LimitedCoreSet(n int) CoreSet {
	if n < 1 {
		n = 1
	}
	out := CoreSet{0}
	if n > 1 {
		out = append(out, 1)
	}
	for i := 2; i < n/2; i++ {
		out = append(out, i)
	}
	return out
}

// Len returns the number of cores in the set.
func (s CoreSet) Len() int { return len(s) }

// Contains reports whether core is in the set.
func (s CoreSet) Contains(core int) bool {
	_, ok := slices.BinarySearch(s, core)
	return ok
}

// Equal reports whether both sets hold the same cores.
func (s CoreSet) Equal(o CoreSet) bool { return slices.Equal(s, o) }

// String renders the set in cpulist form, e.g. "0-3,6,8-9".
func (s CoreSet) String() string {
	if len(s) == 0 {
		return ""
	}
	var b strings.Builder
	start, prev := s[0], s[0]
	flush := func() {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(start))
		if prev != start {
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(prev))
		}
	}
	for _, c := range s[1:] {
		if c == prev+1 {
			prev = c
			continue
		}
		flush()
		start, prev = c, c
	}
	flush()
	return b.String()
}
