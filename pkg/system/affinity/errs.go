package affinity

import "errors"

var (
	// ErrPermissionDenied indicates the caller may not change the target's affinity.
	ErrPermissionDenied = errors.New("affinity: permission denied")

	// ErrProcessGone indicates the target exited before the affinity could be applied.
	ErrProcessGone = errors.New("affinity: process gone")

	// ErrEmptySet indicates an attempt to apply a set with no cores.
	ErrEmptySet = errors.New("affinity: empty core set")
)
