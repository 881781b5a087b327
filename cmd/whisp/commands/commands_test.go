package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBackendsCommand(t *testing.T) {
	out, _, err := execute(t, "backends")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"BACKEND", "vulkan", "dx12", "null"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShadersCompileCommand(t *testing.T) {
	dir := t.TempDir()
	out, _, err := execute(t, "shaders", "compile", "--target", "spirv", "--out", dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	lines := strings.Fields(out)
	if len(lines) != 2 {
		t.Fatalf("wrote %d files, want 2:\n%s", len(lines), out)
	}
	for _, p := range lines {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("artifact %s: %v", p, err)
		}
	}
}

func TestShadersCompileBadTarget(t *testing.T) {
	if _, _, err := execute(t, "shaders", "compile", "--target", "metal", "--out", t.TempDir()); err == nil {
		t.Error("Execute() error = nil, want error")
	}
}

func TestRunHeadless(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.json")
	body := `{
  "backend": "vulkan",
  "windows": [
    {"title": "One", "width": 320, "height": 240},
    {"title": "Two", "width": 320, "height": 240, "backend": "dx12"}
  ]
}`
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(dir, "engine.log")

	_, _, err := execute(t, "run", "--headless", "--frames", "3",
		"--config", cfgPath, "--log-file", logPath, "--log-level", "debug")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	log := string(data)
	for _, want := range []string{"app: window ready", "window=One", "window=Two", "app: shutdown complete"} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %q:\n%s", want, log)
		}
	}
}

func TestRunMissingConfigUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "engine.log")
	_, _, err := execute(t, "run", "--headless", "--frames", "1",
		"--config", filepath.Join(dir, "missing.json"), "--log-file", logPath)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{"config: using defaults", "window=WhispEngine"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %q:\n%s", want, data)
		}
	}
}

func TestRunBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "run", "--headless", "--frames", "1",
		"--config", filepath.Join(dir, "missing.json"),
		"--log-file", filepath.Join(dir, "engine.log"), "--log-level", "loud")
	if err == nil {
		t.Error("Execute() error = nil, want error")
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"spirv", false},
		{"vulkan", false},
		{"dxil", false},
		{"dx12", false},
		{"all", false},
		{"", false},
		{"metal", true},
	}
	for _, tt := range tests {
		_, err := parseTarget(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTarget(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
