package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// DefaultRecent is how many rows the recent-requests panel shows.
	DefaultRecent = 10

	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Submission is one successful ingestion request.
type Submission struct {
	ID        int64
	URL       string
	NovelID   string
	Title     string
	CreatedAt time.Time
}

// Store persists submissions in SQLite.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open creates or opens the database at path, creating parent directories.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path, now: time.Now}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            url TEXT NOT NULL,
            novel_id TEXT NOT NULL,
            title TEXT NOT NULL DEFAULT '',
            created_at TEXT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_created ON submissions(created_at)`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("exec migrate: %w", err)
		}
	}
	return nil
}

// Record stores sub and returns it with ID and CreatedAt filled in.
func (s *Store) Record(ctx context.Context, sub Submission) (Submission, error) {
	if strings.TrimSpace(sub.URL) == "" {
		return Submission{}, errors.New("submission url required")
	}
	if strings.TrimSpace(sub.NovelID) == "" {
		return Submission{}, errors.New("submission novel_id required")
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = s.now()
	}
	sub.CreatedAt = sub.CreatedAt.UTC()

	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx,
			`INSERT INTO submissions(url, novel_id, title, created_at) VALUES(?,?,?,?)`,
			sub.URL, sub.NovelID, sub.Title, sub.CreatedAt.Format(time.RFC3339Nano))
		return execErr
	})
	if err != nil {
		return Submission{}, fmt.Errorf("insert submission %s: %w", sub.URL, err)
	}
	if id, idErr := res.LastInsertId(); idErr == nil {
		sub.ID = id
	}
	return sub, nil
}

// Recent returns up to limit submissions, newest first. A non-positive limit
// means DefaultRecent.
func (s *Store) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = DefaultRecent
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, novel_id, title, created_at FROM submissions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Submission
	for rows.Next() {
		var (
			sub     Submission
			created string
		)
		if err := rows.Scan(&sub.ID, &sub.URL, &sub.NovelID, &sub.Title, &created); err != nil {
			return nil, fmt.Errorf("scan submissions: %w", err)
		}
		if ts, perr := time.Parse(time.RFC3339Nano, created); perr == nil {
			sub.CreatedAt = ts
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
