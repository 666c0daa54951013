package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/mtlreq/internal/form"
	"github.com/five82/mtlreq/internal/submission"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestBuild_SubmitsAndRecordsHistory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ingest" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","novel_id":42}`))
	}))
	defer srv.Close()

	cfgPath := writeConfig(t, home, `
api_base = "`+srv.URL+`"
history_db = "`+filepath.Join(home, "history.db")+`"
log_dir = "`+filepath.Join(home, "logs")+`"
`)

	var routes []string
	a, err := Build(Options{
		ConfigPath: cfgPath,
		Navigator:  submission.NavigateFunc(func(p string) { routes = append(routes, p) }),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer func() { _ = a.Close() }()

	if a.History == nil {
		t.Fatalf("history not opened")
	}
	if a.Site.Name != "generic" {
		t.Fatalf("site = %q, want generic", a.Site.Name)
	}

	state := form.NewState(map[form.Field]string{
		form.BookURL: "https://example.com/book/42",
		form.Genres:  "Fantasy, Romance",
	})
	outcome, err := a.Controller.Submit(context.Background(), state)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !outcome.Succeeded() || outcome.Route != "/read/42" {
		t.Fatalf("outcome = %+v, want success with /read/42", outcome)
	}
	if got["url"] != "https://example.com/book/42" {
		t.Fatalf("request body = %v", got)
	}
	if len(routes) != 1 || routes[0] != "/read/42" {
		t.Fatalf("routes = %v", routes)
	}

	recent := a.Controller.Recent()
	if len(recent) != 1 || recent[0].NovelID != "42" {
		t.Fatalf("recent = %+v, want one entry for 42", recent)
	}
	if _, err := os.Stat(a.Config.LogPath()); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}

func TestBuild_UnknownSiteFallsBackToDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	a, err := Build(Options{
		ConfigPath: filepath.Join(home, "missing.toml"),
		Site:       "no-such-site",
		NoHistory:  true,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer func() { _ = a.Close() }()

	if a.Site.Name != "generic" {
		t.Fatalf("site = %q, want generic", a.Site.Name)
	}
	if a.History != nil {
		t.Fatalf("history opened despite NoHistory")
	}
}

func TestBuild_OverridesAPIBase(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	a, err := Build(Options{
		ConfigPath: filepath.Join(home, "missing.toml"),
		APIBase:    "ingest.internal:9000",
		NoHistory:  true,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer func() { _ = a.Close() }()

	if got := a.Client.Endpoint(); got != "http://ingest.internal:9000/api/ingest" {
		t.Fatalf("Endpoint = %q", got)
	}
}

func TestBuild_InvalidConfigIsFatal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfgPath := writeConfig(t, home, "request_timeout_seconds = -1\n")

	_, err := Build(Options{ConfigPath: cfgPath})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Build error = %v, want load config failure", err)
	}
}
