package cmdrunner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRun_CapturesOutput(t *testing.T) {
	skipWithoutShell(t)

	result, err := Runner{}.Run(context.Background(), "sh", "-c", "printf hello; printf oops >&2")
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "hello", result.StdoutString(false))
	assert.Equal(t, "oops", result.StderrString(true))
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	skipWithoutShell(t)

	result, err := Runner{}.Run(context.Background(), "sh", "-c", "echo failed >&2; exit 3")
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "failed", result.StderrString(true))
}

func TestRun_LaunchFailure(t *testing.T) {
	_, err := Runner{}.Run(context.Background(), "definitely-not-a-real-command-gac")
	require.Error(t, err)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestRun_ContextDeadline(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := Runner{}.Run(ctx, "sh", "-c", "sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRun_VerboseLogging(t *testing.T) {
	skipWithoutShell(t)

	var logBuf bytes.Buffer
	r := Runner{Verbose: true, Logger: &logBuf}
	_, err := r.Run(context.Background(), "sh", "-c", "true")
	require.NoError(t, err)
	assert.Equal(t, "Running: sh -c true\n", logBuf.String())
}

func TestStdoutString_ReplacesInvalidUTF8(t *testing.T) {
	result := Result{Stdout: []byte{'o', 'k', 0xff, '\n'}}
	assert.Equal(t, "ok�", result.StdoutString(true))
}
