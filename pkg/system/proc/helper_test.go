//go:build linux

package proc

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	self := int32(os.Getpid())

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, classify(self, nil))
	})
	t.Run("not_exist", func(t *testing.T) {
		err := classify(self, &fs.PathError{Op: "open", Path: "/proc/x/io", Err: fs.ErrNotExist})
		assert.ErrorIs(t, err, ErrNoSuchProcess)
	})
	t.Run("esrch", func(t *testing.T) {
		assert.ErrorIs(t, classify(self, syscall.ESRCH), ErrNoSuchProcess)
	})
	t.Run("gopsutil_not_running", func(t *testing.T) {
		assert.ErrorIs(t, classify(self, process.ErrorProcessNotRunning), ErrNoSuchProcess)
	})
	t.Run("permission_on_live_process", func(t *testing.T) {
		err := classify(self, syscall.EACCES)
		assert.ErrorIs(t, err, ErrReadFailure)
		assert.ErrorIs(t, err, syscall.EACCES)
		assert.NotErrorIs(t, err, ErrNoSuchProcess)
	})
	t.Run("any_error_on_vanished_process", func(t *testing.T) {
		assert.ErrorIs(t, classify(missingPID, ErrNoRSS), ErrNoSuchProcess)
	})
	t.Run("already_classified", func(t *testing.T) {
		in := errors.Join(ErrReadFailure)
		assert.ErrorIs(t, classify(missingPID, in), ErrReadFailure)
	})
}
