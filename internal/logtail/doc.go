// Package logtail reads the end of the mtlreq log file.
//
// Read keeps a ring of the last N matching lines, so memory stays bounded by
// the requested line count rather than the file size. A missing file is not
// an error; it just has no lines yet.
//
//	keep, _ := logtail.MinLevel("warn")
//	lines, err := logtail.Read(cfg.LogPath(), 200, keep)
//
// MinLevel understands both slog handlers the logging package can install:
// text records carry level=WARN and JSON records carry "level":"WARN".
package logtail
