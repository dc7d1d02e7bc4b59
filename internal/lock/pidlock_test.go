package lock

import (
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireWritesPID(t *testing.T) {
	t.Parallel()

	lockPath := PathFor(t.TempDir())
	l, err := Acquire(lockPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Release() })

	b, err := os.ReadFile(lockPath)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(b)))

	pid, ok := Holder(lockPath)
	assert.True(t, ok)
	assert.Equal(t, os.Getpid(), pid)
}

func TestAcquireTwiceFails(t *testing.T) {
	t.Parallel()

	lockPath := PathFor(t.TempDir())
	first, err := Acquire(lockPath)
	require.NoError(t, err)

	_, err = Acquire(lockPath)
	assert.ErrorIs(t, err, ErrHeld)

	require.NoError(t, first.Release())
	again, err := Acquire(lockPath)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
	assert.NoError(t, again.Release(), "release is idempotent")
}

func TestAcquireEmptyPath(t *testing.T) {
	_, err := Acquire("")
	assert.Error(t, err)
}
