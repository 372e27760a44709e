package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	Logger *slog.Logger
	level  = new(slog.LevelVar)
	mu     sync.Mutex

	out     io.Writer = os.Stderr
	useJSON bool
	debug   bool
)

func init() {
	level.Set(ParseLevel(os.Getenv("RAINSTASH_LOG_LEVEL")))
	asJSON := strings.EqualFold(os.Getenv("RAINSTASH_LOG_FORMAT"), "json")

	// RAINSTASH_DEBUG=1 sends everything to a file; the picker owns the terminal.
	if os.Getenv("RAINSTASH_DEBUG") == "1" {
		if _, err := EnableDebugFile(DebugLogPath(), asJSON); err == nil {
			return
		}
	}
	initLogger(os.Stderr, asJSON)
}

// DebugLogPath is where RAINSTASH_DEBUG=1 output goes.
func DebugLogPath() string {
	return filepath.Join(os.TempDir(), "rainstash.log")
}

// EnableDebugFile truncates path and logs everything to it at debug level.
// DebugEnabled reports true until the next SetOutput.
func EnableDebugFile(path string, asJSON bool) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	level.Set(slog.LevelDebug)
	initLogger(f, asJSON)
	debug = true
	return f, nil
}

// DebugEnabled reports whether output goes to the debug file.
func DebugEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return debug
}

// ParseLevel maps debug|info|warn|error to a slog level. Anything else is warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func initLogger(w io.Writer, asJSON bool) {
	if w == nil {
		w = os.Stderr
	}
	out, useJSON = w, asJSON

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	Logger = slog.New(handler)
}

func SetLevel(lvl slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	level.Set(lvl)
}

func Level() slog.Level {
	return level.Level()
}

// SetOutput replaces the destination and leaves debug file mode.
func SetOutput(w io.Writer, asJSON bool) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(w, asJSON)
	debug = false
}

// Quiet discards output while a full-screen UI is running, unless the debug
// file is active. The returned func restores the previous destination.
func Quiet() (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	if debug {
		return func() {}
	}

	prev, prevJSON := out, useJSON
	initLogger(io.Discard, prevJSON)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		initLogger(prev, prevJSON)
	}
}
