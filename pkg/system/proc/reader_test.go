//go:build linux

package proc

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader(t *testing.T) {
	for _, b := range []string{"", BackendProcfs, BackendGopsutil} {
		r, err := NewReader(b)
		require.NoError(t, err, "backend %q", b)
		require.NotNil(t, r)
	}

	_, err := NewReader("ebpf")
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestReader_Self(t *testing.T) {
	me := int32(os.Getpid())
	for _, b := range []string{BackendProcfs, BackendGopsutil} {
		t.Run(b, func(t *testing.T) {
			r, err := NewReader(b)
			require.NoError(t, err)

			c, err := r.Read(me)
			if err != nil {
				t.Skipf("skipping: counters unavailable for self: %v", err)
			}
			assert.Greater(t, c.RSS.MB(), 0.0)
			assert.GreaterOrEqual(t, c.Threads, int32(1))

			c2, err := r.Read(me)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, c2.ReadBytes, c.ReadBytes)
			assert.GreaterOrEqual(t, c2.WriteBytes, c.WriteBytes)
		})
	}
}

func TestReader_NoSuchProcess(t *testing.T) {
	for _, b := range []string{BackendProcfs, BackendGopsutil} {
		t.Run(b, func(t *testing.T) {
			r, err := NewReader(b)
			require.NoError(t, err)

			_, err = r.Read(missingPID)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNoSuchProcess)
		})
	}
}

func TestReader_ExitedChild(t *testing.T) {
	cmd := exec.Command("/bin/true")
	if err := cmd.Run(); err != nil {
		t.Skipf("skip: cannot run /bin/true: %v", err)
	}
	// reaped by Run, so the pid is gone unless it was reused in between
	pid := int32(cmd.Process.Pid)
	if Exists(pid) {
		t.Skip("skip: pid reused")
	}

	r, err := NewReader(BackendProcfs)
	require.NoError(t, err)
	_, err = r.Read(pid)
	assert.ErrorIs(t, err, ErrNoSuchProcess)
}
