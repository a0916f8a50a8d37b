// Package logging provides leveled logging and a run journal for boolprob.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A Journal appending one JSON line per finished estimator run
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace is a custom slog level below Debug. At this level the CLI also
// logs every step of the produced series.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "error", "warn", "info", "debug", "trace"
// (case-insensitive). Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether s names a level ParseLevel knows.
// The empty string is valid and means info.
func ValidLevel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error", "warn", "warning", "info", "debug", "trace":
		return true
	}
	return false
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Journal appends run records to a JSONL file.
// It is safe for concurrent use. A nil Journal is safe to use;
// all methods are no-ops on nil receiver.
type Journal struct {
	mu   sync.Mutex
	file *os.File
}

// OpenJournal opens path for append, creating parent directories.
// An empty path returns (nil, nil): journaling is off.
func OpenJournal(path string) (*Journal, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Journal{file: f}, nil
}

// Record writes event as a single JSON line with a "time" field added.
// The caller's map is not mutated.
func (j *Journal) Record(event map[string]any) error {
	if j == nil || j.file == nil {
		return nil
	}

	entry := make(map[string]any, len(event)+1)
	for k, v := range event {
		entry[k] = v
	}
	entry["time"] = time.Now().UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	_, err = j.file.Write(data)
	return err
}

// Close closes the underlying file. Safe to call on nil receiver.
func (j *Journal) Close() error {
	if j == nil || j.file == nil {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	err := j.file.Close()
	j.file = nil
	return err
}
