// Package proc finds a target process by name and reads its cumulative
// resource counters on Linux.
//
// # Overview
//
//   - Finder.Find(ctx, names) (Target, error)
//     Walks the process table (via gopsutil) and returns the first process whose
//     name matches one of the candidates. Target carries PID, name and create
//     time; two Targets are the same instance only if PID and create time agree.
//
//   - Reader.Read(pid) (types.Counters, error)
//     Returns read_bytes, write_bytes, RSS and thread count, all cumulative.
//     Callers take deltas between reads.
//
//   - Backends (NewReader):
//
//   - procfs (default): /proc/<pid>/stat for state and num_threads,
//     /proc/<pid>/io for byte counters, smaps_rollup (or statm) for RSS.
//
//   - gopsutil: the same counters through github.com/shirou/gopsutil/v3/process.
//
//   - Errors (errs.go):
//     ErrProcessNotFound : no candidate name is running
//     ErrNoSuchProcess   : the process exited or is a zombie at read time
//     ErrReadFailure     : anything else (most often EACCES on /proc/<pid>/io)
//
// # Permissions
//
// /proc/<pid>/io is readable only by the owner of the process or with
// CAP_SYS_PTRACE. Monitoring another user's process therefore yields
// ErrReadFailure on every tick; run as that user or grant the capability.
//
// # Example
//
//	/*
//	f := proc.NewFinder()
//	t, err := f.Find(ctx, []string{"PathOfExile.exe"})
//	if errors.Is(err, proc.ErrProcessNotFound) { ... }
//
//	r, _ := proc.NewReader(proc.BackendProcfs)
//	c, err := r.Read(t.PID)
//	if errors.Is(err, proc.ErrNoSuchProcess) { ... }
//	fmt.Println(c.ReadBytes.Humanized(), c.RSS.Humanized(), c.Threads)
//	*/
//
// Package import path: github.com/ja7ad/loadshift/pkg/system/proc
package proc
