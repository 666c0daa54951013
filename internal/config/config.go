package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything mtlreq reads from config.toml.
type Config struct {
	APIBase        string
	IngestPath     string
	ReaderBase     string
	RequestTimeout time.Duration
	Site           string
	SitesFile      string
	HistoryDB      string
	LogDir         string
	LogLevel       string
	Form           FormConfig
}

// FormConfig toggles the optional required-field rules.
type FormConfig struct {
	RequireTitles         bool
	RequireAuthor         bool
	RequireChapterPattern bool
}

const (
	defaultConfigPath     = "~/.config/mtlreq/config.toml"
	defaultAPIBase        = "http://127.0.0.1:8000"
	defaultIngestPath     = "/api/ingest"
	defaultRequestTimeout = 120 * time.Second
	defaultSite           = "generic"
	defaultSitesFile      = "~/.config/mtlreq/sites.yaml"
	defaultHistoryDB      = "~/.local/share/mtlreq/history.db"
	defaultLogDir         = "~/.local/share/mtlreq/logs"
	defaultLogLevel       = "info"
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		IngestPath:     defaultIngestPath,
		RequestTimeout: defaultRequestTimeout,
		Site:           defaultSite,
		SitesFile:      mustExpand(defaultSitesFile),
		HistoryDB:      mustExpand(defaultHistoryDB),
		LogDir:         mustExpand(defaultLogDir),
		LogLevel:       defaultLogLevel,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase               string `toml:"api_base"`
		IngestPath            string `toml:"ingest_path"`
		ReaderBase            string `toml:"reader_base"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		Site                  string `toml:"site"`
		SitesFile             string `toml:"sites_file"`
		HistoryDB             string `toml:"history_db"`
		LogDir                string `toml:"log_dir"`
		LogLevel              string `toml:"log_level"`
		Form                  struct {
			RequireTitles         bool `toml:"require_titles"`
			RequireAuthor         bool `toml:"require_author"`
			RequireChapterPattern bool `toml:"require_chapter_pattern"`
		} `toml:"form"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.IngestPath); v != "" {
		if !strings.HasPrefix(v, "/") {
			v = "/" + v
		}
		cfg.IngestPath = v
	}
	cfg.ReaderBase = strings.TrimRight(strings.TrimSpace(raw.ReaderBase), "/")
	if raw.RequestTimeoutSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: request_timeout_seconds must not be negative")
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.Site); v != "" {
		cfg.Site = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.SitesFile); v != "" {
		cfg.SitesFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.HistoryDB); v != "" {
		cfg.HistoryDB = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.Form = FormConfig{
		RequireTitles:         raw.Form.RequireTitles,
		RequireAuthor:         raw.Form.RequireAuthor,
		RequireChapterPattern: raw.Form.RequireChapterPattern,
	}

	return cfg, nil
}

// LogPath returns the path of the mtlreq log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/mtlreq.log")
	}
	return filepath.Join(c.LogDir, "mtlreq.log")
}

// ReaderURL turns an in-app route such as /read/42 into a link on the reader
// site. Without reader_base the route is returned unchanged.
func (c Config) ReaderURL(route string) string {
	if c.ReaderBase == "" {
		return route
	}
	return c.ReaderBase + route
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
