// Package app is the composition root for mtlreq.
//
// Build loads config.toml, opens the log file and the history database,
// resolves the site preset into validation rules and wires the ingestion
// client, console buffer, form model and submission controller together.
// Both the TUI (Run) and the one-shot CLI commands start from Build; they
// differ only in where notifications, navigation and console scrolling go.
//
// Startup errors are fatal: an unreadable config, an invalid site preset or a
// malformed api_base. A history database that cannot be opened only disables
// the recent-requests list.
package app
