package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	once   sync.Once
	mu     sync.RWMutex
	logger *slog.Logger
	closer io.Closer
)

// Options controls Configure.
type Options struct {
	// Level is DEBUG, INFO, WARN or ERROR. Anything else means INFO.
	Level string
	// Format is "json" (default) or "text".
	Format string
	// File, when set, receives logs through a rotating writer instead of stderr.
	File       string
	MaxSizeMB  int
	MaxBackups int
	// Output overrides the destination; used by tests.
	Output io.Writer
}

// Setup initializes the global logger with JSON output to stderr.
// logic: default to INFO. If level is invalid, fallback to INFO.
func Setup(level string) {
	once.Do(func() {
		Configure(Options{Level: level})
	})
}

// Configure replaces the global logger. It may be called more than once; a
// previously opened log file is closed.
func Configure(opts Options) {
	var w io.Writer = os.Stderr
	var c io.Closer
	switch {
	case opts.Output != nil:
		w = opts.Output
	case opts.File != "":
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
		}
		w, c = lj, lj
	}

	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(w, hopts)
	} else {
		handler = slog.NewJSONHandler(w, hopts)
	}

	l := slog.New(handler)
	mu.Lock()
	if closer != nil {
		_ = closer.Close()
	}
	logger, closer = l, c
	mu.Unlock()
	slog.SetDefault(l)
}

// Close releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Get returns the configured logger, or a default one if Setup hasn't been called.
func Get() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		Setup("INFO")
		mu.RLock()
		l = logger
		mu.RUnlock()
	}
	return l
}

// WithComponent returns a logger with the component field set.
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}

// WithCommand returns a logger tagged with the command name and cycle id.
func WithCommand(command, cycleID string) *slog.Logger {
	return Get().With(slog.String("command", command), slog.String("cycle_id", cycleID))
}
