package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/mtlreq/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_WritesToFileAndFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mtlreq.log")
	logger, err := New(Options{Level: "info", OutputPaths: []string{path, path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("submission succeeded", "novel_id", "42")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "level=info") || !strings.Contains(out, "novel_id=42") {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Count(out, "submission succeeded") != 1 {
		t.Fatalf("duplicate path should be opened once: %q", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mtlreq.log")
	logger, err := New(Options{Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("slow")
	_ = logger.Close()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `"level":"warn"`) {
		t.Fatalf("output = %q", data)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewFromConfig_UsesLogDir(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewFromConfig(config.Config{LogDir: dir, LogLevel: "debug"}, false)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("console")
	_ = logger.Close()

	if _, err := os.Stat(filepath.Join(dir, "mtlreq.log")); err != nil {
		t.Fatalf("log file missing: %v", err)
	}
}
