// Package logger wires a zap core into logr and propagates the resulting
// logger through contexts. The TUI owns the terminal, so all log output
// goes to stderr as JSON.
package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/oakwood-commons/h5x/pkg/settings"
)

type loggerContextKey struct{}

const (
	CommandKey   = "command"
	ContainerKey = "container"
	CommitKey    = "commit"
	VersionKey   = "version"
	TimeStampKey = "timestamp"
	MessageKey   = "message"
)

var (
	once sync.Once

	// zapLogger is kept for Sync; application code only sees logr.
	zapLogger *zap.Logger
	root      *logr.Logger

	noop = logr.Discard()
)

// Get builds the global logger on first call and returns it. logLevel is
// a zapcore level: 0 is info, -1 is debug. Later calls ignore the
// argument and return the logger built first.
func Get(logLevel int8) *logr.Logger {
	once.Do(func() {
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderCfg.TimeKey = TimeStampKey
		encoderCfg.MessageKey = MessageKey

		buildInfo, _ := debug.ReadBuildInfo()
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.Lock(os.Stderr),
			zap.NewAtomicLevelAt(zapcore.Level(logLevel)),
		).With([]zapcore.Field{
			zap.String(CommitKey, settings.VersionInformation.Commit),
			zap.String(VersionKey, settings.VersionInformation.BuildVersion),
			zap.String("go_version", buildInfo.GoVersion),
		})

		zapLogger = zap.New(core,
			zap.AddCaller(),
			zap.AddStacktrace(zap.ErrorLevel),
		)
		l := zapr.NewLogger(zapLogger)
		root = &l
	})
	if root == nil {
		return &noop
	}
	return root
}

// WithLogger attaches log to ctx. Returns ctx unchanged when the same
// logger is already attached.
func WithLogger(ctx context.Context, log *logr.Logger) context.Context {
	if cur, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok && cur == log {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext returns the logger attached to ctx, the global logger if
// none is attached, or a no-op logger when Get has never run.
func FromContext(ctx context.Context) *logr.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(*logr.Logger); ok {
		return log
	}
	if root != nil {
		return root
	}
	return &noop
}

// WithValues returns a copy of lgr carrying extra key/value pairs.
func WithValues(lgr *logr.Logger, keysAndValues ...any) *logr.Logger {
	l := lgr.WithValues(keysAndValues...)
	return &l
}

// GetNoopLogger returns a logger that discards everything.
func GetNoopLogger() *logr.Logger {
	return &noop
}

// Sync flushes buffered entries. Call once before exit.
func Sync() {
	if zapLogger == nil {
		return
	}
	if err := zapLogger.Sync(); err != nil && !isIgnorableSyncError(err) {
		fmt.Fprintf(os.Stderr, "WARNING: failed to sync logger: %v\n", err)
	}
}

// isIgnorableSyncError filters the usual Sync failures on TTYs and pipes.
// Windows consoles surface ERROR_INVALID_HANDLE through *os.PathError, so
// the string match is needed there.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}
