// Package config loads mtlreq's TOML configuration.
//
// # Overview
//
// The config file tells mtlreq where the ingestion API lives, which source-site
// preset validates book URLs, and where local state (history database, log
// file) is kept. Every field is optional.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/mtlreq/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - API base: http://127.0.0.1:8000
//   - Ingest path: /api/ingest
//   - Request timeout: 120 seconds
//   - Site preset: generic
//   - Sites file: ~/.config/mtlreq/sites.yaml
//   - History database: ~/.local/share/mtlreq/history.db
//   - Log directory: ~/.local/share/mtlreq/logs (log file <log_dir>/mtlreq.log)
//   - Log level: info
//
// # TOML Format
//
//	api_base = "http://127.0.0.1:8000"
//	ingest_path = "/api/ingest"
//	reader_base = "https://reader.example.com"
//	request_timeout_seconds = 120
//	site = "ixdzs"
//	log_level = "debug"
//
//	[form]
//	require_titles = false
//	require_author = false
//	require_chapter_pattern = false
//
// Tilde expansion is performed for sites_file, history_db and log_dir.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and a negative timeout. A missing file is
// not an error.
package config
