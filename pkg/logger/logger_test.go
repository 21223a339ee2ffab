package logger

import (
	"context"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
)

func TestFromContextFallsBackToNoop(t *testing.T) {
	// Get may or may not have run in this process; either way the
	// returned logger must be usable.
	lgr := FromContext(context.Background())
	assert.NotNil(t, lgr)
	lgr.V(1).Info("must not panic")
}

func TestWithLoggerRoundTrip(t *testing.T) {
	l := logr.Discard()
	ctx := WithLogger(context.Background(), &l)
	assert.Same(t, &l, FromContext(ctx))

	// Re-attaching the same logger returns the same context.
	assert.Equal(t, ctx, WithLogger(ctx, &l))
}

func TestWithValues(t *testing.T) {
	l := logr.Discard()
	got := WithValues(&l, "k", "v")
	assert.NotNil(t, got)
	got.Info("must not panic")
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(syscall.ENOTTY))
	assert.True(t, isIgnorableSyncError(syscall.EINVAL))
	assert.False(t, isIgnorableSyncError(syscall.ENOENT))
}

func TestSyncWithoutGetIsSafe(t *testing.T) {
	assert.NotPanics(t, Sync)
}
