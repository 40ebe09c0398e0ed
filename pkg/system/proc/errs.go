package proc

import "errors"

var (
	// ErrProcessNotFound indicates that no running process matched the candidate names.
	ErrProcessNotFound = errors.New("proc: process not found")

	// ErrNoSuchProcess indicates that the process exited (or became a zombie)
	// while its counters were being read.
	ErrNoSuchProcess = errors.New("proc: no such process")

	// ErrReadFailure wraps any other failure to read process counters,
	// typically a permission problem on /proc/<pid>/io.
	ErrReadFailure = errors.New("proc: read failure")

	// ErrNoStat indicates that /proc/<pid>/stat was empty or malformed.
	ErrNoStat = errors.New("proc: malformed or empty stat")

	// ErrShortStat indicates that /proc/<pid>/stat had fewer fields than expected.
	ErrShortStat = errors.New("proc: short stat")

	// ErrNoRSS indicates that resident set size could not be determined
	// (neither smaps_rollup nor statm succeeded).
	ErrNoRSS = errors.New("proc: no rss")

	// ErrNoTasks indicates that /proc/<pid>/task listed no threads.
	ErrNoTasks = errors.New("proc: no tasks")

	// ErrUnknownBackend is returned by NewReader for an unsupported backend name.
	ErrUnknownBackend = errors.New("proc: unknown counter backend")
)
