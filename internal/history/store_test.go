package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecord_AssignsIDAndTimestamp(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	sub, err := s.Record(context.Background(), Submission{URL: "https://example.com/book/1", NovelID: "42"})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if sub.ID == 0 {
		t.Fatalf("ID not assigned")
	}
	if !sub.CreatedAt.Equal(fixed) {
		t.Fatalf("CreatedAt = %v, want %v", sub.CreatedAt, fixed)
	}

	got, err := s.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 1 || got[0].NovelID != "42" || !got[0].CreatedAt.Equal(fixed) {
		t.Fatalf("Recent = %+v", got)
	}
}

func TestRecent_NewestFirstAndLimited(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 1; i <= 15; i++ {
		if _, err := s.Record(ctx, Submission{URL: fmt.Sprintf("https://example.com/book/%d", i), NovelID: fmt.Sprint(i)}); err != nil {
			t.Fatalf("Record %d returned error: %v", i, err)
		}
	}

	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != DefaultRecent {
		t.Fatalf("len = %d, want %d", len(got), DefaultRecent)
	}
	if got[0].NovelID != "15" || got[len(got)-1].NovelID != "6" {
		t.Fatalf("order = %s..%s, want 15..6", got[0].NovelID, got[len(got)-1].NovelID)
	}

	got, err = s.Recent(ctx, 3)
	if err != nil || len(got) != 3 {
		t.Fatalf("Recent(3) = %d rows, %v", len(got), err)
	}
}

func TestRecord_RequiresURLAndID(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Record(context.Background(), Submission{NovelID: "1"}); err == nil {
		t.Fatalf("expected error for missing url")
	}
	if _, err := s.Record(context.Background(), Submission{URL: "https://x"}); err == nil {
		t.Fatalf("expected error for missing novel_id")
	}
}

func TestOpen_ReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := s.Record(context.Background(), Submission{URL: "https://x/book/1", NovelID: "1"}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	_ = s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer func() { _ = s.Close() }()
	got, err := s.Recent(context.Background(), 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("Recent after reopen = %+v, %v", got, err)
	}
}

func TestRetryOnBusy_StopsOnOtherErrors(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := retryOnBusy(context.Background(), func() error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}

	calls = 0
	err = retryOnBusy(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatalf("expected error")
	}
}
