package whisp

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler_Enabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestNopHandler_Derived(t *testing.T) {
	h := nopHandler{}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).(nopHandler); !ok {
		t.Error("WithAttrs() did not return nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup() did not return nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	Logger().Info("adapter selected", "name", "noop")

	if !strings.Contains(buf.String(), "adapter selected") {
		t.Errorf("log output = %q, want message", buf.String())
	}
}

func TestSetLoggerNil(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestLogSink_WritesConsoleAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")
	var console bytes.Buffer

	sink, err := OpenLogSink(path, slog.LevelInfo, &console)
	if err != nil {
		t.Fatalf("OpenLogSink() error = %v", err)
	}
	sink.Logger().Info("Engine initialized", "windows", 2)
	sink.Logger().Debug("hidden")
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for name, got := range map[string]string{"console": console.String(), "file": string(data)} {
		if !strings.Contains(got, "Engine initialized") {
			t.Errorf("%s = %q, want info line", name, got)
		}
		if strings.Contains(got, "hidden") {
			t.Errorf("%s contains debug line below level", name)
		}
	}
}

func TestLogSink_CloseIdempotent(t *testing.T) {
	sink, err := OpenLogSink(filepath.Join(t.TempDir(), "engine.log"), slog.LevelInfo, nil)
	if err != nil {
		t.Fatalf("OpenLogSink() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if _, err := sink.Write([]byte("late\n")); err != nil {
		t.Errorf("Write() after Close error = %v", err)
	}
}

func TestLogSink_ConcurrentWriters(t *testing.T) {
	var console bytes.Buffer
	sink, err := OpenLogSink("", slog.LevelInfo, &console)
	if err != nil {
		t.Fatalf("OpenLogSink() error = %v", err)
	}
	defer sink.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				sink.Logger().Info("tick")
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(console.String()), "\n")
	if len(lines) != 400 {
		t.Errorf("got %d lines, want 400", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "time=") {
			t.Fatalf("interleaved line %q", line)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
