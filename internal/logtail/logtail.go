package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Filter reports whether a line should be kept.
type Filter func(line string) bool

// Read returns at most maxLines matching lines from the end of the file at
// path. A nil keep matches every line. A missing file yields no lines.
func Read(path string, maxLines int, keep Filter) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		line := scanner.Text()
		if keep != nil && !keep(line) {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

var levelRank = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
}

// MinLevel keeps slog records at or above level. Lines without a level
// (continuations, foreign output) are kept. An unknown level keeps everything.
func MinLevel(level string) (Filter, error) {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "" {
		return nil, nil
	}
	if level == "WARNING" {
		level = "WARN"
	}
	floor, ok := levelRank[level]
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return func(line string) bool {
		lvl, found := LineLevel(line)
		if !found {
			return true
		}
		rank, known := levelRank[lvl]
		return !known || rank >= floor
	}, nil
}

// LineLevel extracts the level of a slog text or JSON record.
func LineLevel(line string) (string, bool) {
	for _, marker := range []string{"level=", `"level":"`} {
		i := strings.Index(line, marker)
		if i < 0 {
			continue
		}
		rest := line[i+len(marker):]
		end := strings.IndexAny(rest, " \"")
		if end < 0 {
			end = len(rest)
		}
		lvl := strings.ToUpper(rest[:end])
		// slog renders levels between the named ones as WARN+2 and so on.
		if j := strings.IndexAny(lvl, "+-"); j > 0 {
			lvl = lvl[:j]
		}
		return lvl, lvl != ""
	}
	return "", false
}
