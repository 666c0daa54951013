// Package logging builds the process-wide slog logger.
//
// The TUI writes only to <log_dir>/mtlreq.log because Bubble Tea owns the
// terminal. CLI commands additionally log to stderr. Lines use slog's text
// handler with RFC 3339 timestamps and lower-case levels; "json" is available
// for machine consumption.
package logging
