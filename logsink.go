package whisp

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogSink is the engine's process-wide log destination. Every record is
// written to the console and to the log file under one mutex, so lines from
// the frame loop and the shader watcher never interleave.
type LogSink struct {
	mu     sync.Mutex
	w      io.Writer
	file   *os.File
	logger *slog.Logger
	closed bool
}

// OpenLogSink truncates (or creates) the log file at path and returns a sink
// writing to both console and the file. An empty path logs to console only.
// A nil console writes to the file only.
func OpenLogSink(path string, level slog.Level, console io.Writer) (*LogSink, error) {
	s := &LogSink{}
	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("whisp: open log file: %w", err)
		}
		s.file = f
		writers = append(writers, f)
	}
	s.w = io.MultiWriter(writers...)
	s.logger = slog.New(slog.NewTextHandler(s, &slog.HandlerOptions{Level: level}))
	return s, nil
}

// Write implements io.Writer. Writes after Close are dropped.
func (s *LogSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return len(p), nil
	}
	return s.w.Write(p)
}

// Logger returns a logger writing to the sink.
func (s *LogSink) Logger() *slog.Logger { return s.logger }

// Close flushes and closes the log file. It is safe to call more than once.
func (s *LogSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.file == nil {
		return nil
	}
	if err := s.file.Sync(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}

// ParseLevel converts a level name ("debug", "info", "warn", "error")
// into a slog.Level. Matching is case-insensitive.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("whisp: unknown log level %q", name)
	}
	return l, nil
}
