// Package history records successful ingestion requests in a local SQLite
// database (modernc.org/sqlite, no cgo) and lists the most recent ones.
package history
