package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/five82/mtlreq/internal/config"
)

type cliTestEnv struct {
	home       string
	configPath string

	mu       sync.Mutex
	requests []map[string]any
}

func (e *cliTestEnv) recorded() []map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]map[string]any(nil), e.requests...)
}

func setupCLITestEnv(t *testing.T, handler http.HandlerFunc) *cliTestEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	env := &cliTestEnv{home: home}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		env.mu.Lock()
		env.requests = append(env.requests, body)
		env.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	env.configPath = filepath.Join(home, "config.toml")
	cfg := strings.Join([]string{
		`api_base = "` + srv.URL + `"`,
		`reader_base = "http://reader.test"`,
		`history_db = "` + filepath.Join(home, "history.db") + `"`,
		`log_dir = "` + filepath.Join(home, "logs") + `"`,
	}, "\n")
	if err := os.WriteFile(env.configPath, []byte(cfg+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func okHandler(id string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","novel_id":` + id + `}`))
	}
}

func TestSubmitThenHistory(t *testing.T) {
	env := setupCLITestEnv(t, okHandler("42"))

	out, _, err := runCLI(t, []string{
		"submit", "https://example.com/book/42",
		"--title-en", "Sword Saint",
		"--genres", "Fantasy, Romance",
	}, env.configPath)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	requireContains(t, out, "Ingestion started for novel 42.")
	requireContains(t, out, "Reader: http://reader.test/read/42")

	reqs := env.recorded()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	body := reqs[0]
	if body["url"] != "https://example.com/book/42" || body["titleEn"] != "Sword Saint" {
		t.Fatalf("request body = %v", body)
	}
	if _, ok := body["author"]; ok {
		t.Fatalf("empty author was sent: %v", body)
	}

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "Sword Saint")
	requireContains(t, out, "http://reader.test/read/42")
}

func TestSubmitValidationFailureSendsNothing(t *testing.T) {
	env := setupCLITestEnv(t, okHandler("1"))

	_, _, err := runCLI(t, []string{"submit", "not a url"}, env.configPath)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if n := len(env.recorded()); n != 0 {
		t.Fatalf("requests = %d, want 0", n)
	}
}

func TestSubmitBackendErrorSurfacesMessage(t *testing.T) {
	env := setupCLITestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"scraper unavailable"}`))
	})

	_, stderr, err := runCLI(t, []string{"submit", "https://example.com/book/9", "--verbose"}, env.configPath)
	if err == nil || err.Error() != "scraper unavailable" {
		t.Fatalf("err = %v, want scraper unavailable", err)
	}
	requireContains(t, stderr, "Ingestion API error: scraper unavailable")
}

func TestHistoryEmpty(t *testing.T) {
	env := setupCLITestEnv(t, okHandler("1"))

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No requests recorded yet.")
}

func TestSitesListAndShow(t *testing.T) {
	env := setupCLITestEnv(t, okHandler("1"))

	out, _, err := runCLI(t, []string{"sites"}, env.configPath)
	if err != nil {
		t.Fatalf("sites: %v", err)
	}
	requireContains(t, out, "generic")
	requireContains(t, out, "ixdzs")

	out, _, err = runCLI(t, []string{"sites", "show", "ixdzs"}, env.configPath)
	if err != nil {
		t.Fatalf("sites show: %v", err)
	}
	requireContains(t, out, "book_url:")
	requireContains(t, out, "ixdzs")

	if _, _, err := runCLI(t, []string{"sites", "show", "nope"}, env.configPath); err == nil {
		t.Fatalf("expected unknown site error")
	}
}

func TestConfigInitWritesLoadableSample(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	target := filepath.Join(home, "nested", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, target)

	cfg, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if cfg.RequestTimeout.Seconds() != 120 || cfg.Site != "generic" {
		t.Fatalf("sample config = %+v", cfg)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t, okHandler("1"))

	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "/api/ingest")
	requireContains(t, out, "http://reader.test")
}

func TestLogsAfterSubmit(t *testing.T) {
	env := setupCLITestEnv(t, okHandler("5"))

	if _, _, err := runCLI(t, []string{"submit", "https://example.com/book/5"}, env.configPath); err != nil {
		t.Fatalf("submit: %v", err)
	}
	out, _, err := runCLI(t, []string{"logs", "--lines", "200"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "submission succeeded")

	out, _, err = runCLI(t, []string{"logs", "--level", "error"}, env.configPath)
	if err != nil {
		t.Fatalf("logs --level: %v", err)
	}
	if strings.Contains(out, "submission succeeded") {
		t.Fatalf("info record shown at error level: %q", out)
	}
}
