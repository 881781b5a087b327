package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestShaderWatcher(t *testing.T) {
	dir := t.TempDir()
	sw, err := WatchShaders(dir)
	if err != nil {
		t.Fatalf("WatchShaders() = %v", err)
	}
	defer sw.Close()

	if sw.Take() {
		t.Fatal("Take() = true before any change")
	}
	if err := os.WriteFile(filepath.Join(dir, "triangle.wgsl"), []byte("// changed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for !sw.Take() {
		if time.Now().After(deadline) {
			t.Fatal("no change seen within 3s")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestShaderWatcherMissingDir(t *testing.T) {
	if _, err := WatchShaders(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("WatchShaders() = nil, want error")
	}
}

func TestShaderWatcherCloseIdempotent(t *testing.T) {
	sw, err := WatchShaders(t.TempDir())
	if err != nil {
		t.Fatalf("WatchShaders() = %v", err)
	}
	if err := sw.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := sw.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
