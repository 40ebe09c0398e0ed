//go:build linux

package proc

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Stat holds the fields of /proc/<pid>/stat the sampler cares about.
type Stat struct {
	Comm    string
	State   byte
	Threads int32
}

// Zombie reports whether the process has exited but not yet been reaped.
func (s Stat) Zombie() bool { return s.State == 'Z' || s.State == 'X' }

// PageSize returns the system memory page size in bytes.
// It first checks an env override (PAGE_SIZE) to ease testing,
// then falls back to os.Getpagesize().
func PageSize() int {
	if ps := os.Getenv("PAGE_SIZE"); ps != "" {
		if v, _ := strconv.Atoi(ps); v > 0 {
			return v
		}
	}
	return os.Getpagesize()
}

// Exists reports whether a given PID currently exists in /proc.
func Exists(pid int32) bool {
	_, err := os.Stat(fmt.Sprintf("/proc/%d", pid))
	return err == nil
}

// ReadProcStat parses /proc/<pid>/stat.
//
// comm (2nd field) is in parens and may contain spaces, so everything up to
// the last ") " is split off before the numeric fields are indexed.
func ReadProcStat(pid int32) (Stat, error) {
	b, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return Stat{}, err
	}
	return parseStat(string(b))
}

func parseStat(line string) (Stat, error) {
	line = strings.TrimSpace(line)
	open := strings.IndexByte(line, '(')
	i := strings.LastIndex(line, ") ")
	if open < 0 || i < open {
		return Stat{}, ErrNoStat
	}
	fields := strings.Fields(line[i+2:])
	// state is field 3 overall => fields[0]
	// num_threads is field 20 overall => fields[17]
	if len(fields) < 18 {
		return Stat{}, ErrShortStat
	}
	threads, err := strconv.ParseInt(fields[17], 10, 32)
	if err != nil {
		return Stat{}, fmt.Errorf("%w: num_threads: %v", ErrNoStat, err)
	}
	return Stat{
		Comm:    line[open+1 : i],
		State:   fields[0][0],
		Threads: int32(threads),
	}, nil
}

// ReadProcIO returns the cumulative read_bytes and write_bytes of pid.
// /proc/<pid>/io is readable only by the owner or with CAP_SYS_PTRACE.
func ReadProcIO(pid int32) (readBytes, writeBytes uint64, err error) {
	err = scanFields(fmt.Sprintf("/proc/%d/io", pid), func(key string, fs []string) bool {
		switch key {
		case "read_bytes:":
			readBytes, _ = strconv.ParseUint(fs[0], 10, 64)
		case "write_bytes:":
			writeBytes, _ = strconv.ParseUint(fs[0], 10, 64)
		}
		return true
	})
	return readBytes, writeBytes, err
}

// ReadProcRSS returns the resident set size of pid in bytes, from
// smaps_rollup when the kernel has it and statm otherwise.
func ReadProcRSS(pid int32) (uint64, error) {
	var rss uint64
	found := false
	err := scanFields(fmt.Sprintf("/proc/%d/smaps_rollup", pid), func(key string, fs []string) bool {
		if key != "Rss:" {
			return true
		}
		kb, perr := strconv.ParseUint(fs[0], 10, 64)
		rss, found = kb<<10, perr == nil
		return false
	})
	if err == nil && found {
		return rss, nil
	}

	b, err := os.ReadFile(fmt.Sprintf("/proc/%d/statm", pid))
	if err != nil {
		return 0, err
	}
	fs := strings.Fields(string(b))
	if len(fs) < 2 {
		return 0, ErrNoRSS
	}
	pages, err := strconv.ParseUint(fs[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: statm: %v", ErrNoRSS, err)
	}
	return pages * uint64(PageSize()), nil
}

// scanFields calls fn with the first word and remaining words of every line
// that has at least two words, until fn returns false.
func scanFields(path string, fn func(key string, rest []string) bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fs := strings.Fields(sc.Text())
		if len(fs) < 2 {
			continue
		}
		if !fn(fs[0], fs[1:]) {
			break
		}
	}
	return sc.Err()
}

// ReadProcTasks returns the thread ids listed under /proc/<pid>/task.
func ReadProcTasks(pid int32) ([]int, error) {
	entries, err := os.ReadDir(fmt.Sprintf("/proc/%d/task", pid))
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		if tid, err := strconv.Atoi(e.Name()); err == nil {
			out = append(out, tid)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoTasks
	}
	return out, nil
}
