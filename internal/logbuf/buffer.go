package logbuf

import (
	"context"
	"log/slog"
	"time"
)

// DefaultLimit is the number of entries the debug console keeps.
const DefaultLimit = 100

// timeLayout renders entries the way the console shows them.
const timeLayout = "15:04:05"

// Entry is one immutable diagnostic line.
type Entry struct {
	Time    time.Time
	Message string
}

// Timestamp returns the entry time as a local wall-clock string.
func (e Entry) Timestamp() string {
	return e.Time.In(time.Local).Format(timeLayout)
}

// String renders "[15:04:05] message".
func (e Entry) String() string {
	return "[" + e.Timestamp() + "] " + e.Message
}

// ScrollScheduler asks the viewer to scroll to the newest entry once the
// current state has been drawn. Implementations must not scroll synchronously.
type ScrollScheduler interface {
	ScheduleScroll()
}

// ScrollFunc adapts a function to ScrollScheduler.
type ScrollFunc func()

// ScheduleScroll calls f.
func (f ScrollFunc) ScheduleScroll() {
	if f != nil {
		f()
	}
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Buffer) {
		if now != nil {
			b.now = now
		}
	}
}

// WithScheduler sets the scroll scheduler notified on every Append.
func WithScheduler(s ScrollScheduler) Option {
	return func(b *Buffer) { b.scroll = s }
}

// WithLogger mirrors each appended entry to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Buffer) { b.logger = logger }
}

// Buffer is a bounded FIFO of entries backed by a ring. It is owned by a
// single event loop and is not safe for concurrent use. The zero value is an
// empty buffer holding DefaultLimit entries.
type Buffer struct {
	ring    []Entry
	start   int
	count   int
	version uint64

	now    func() time.Time
	scroll ScrollScheduler
	logger *slog.Logger
}

// New returns a buffer holding at most limit entries. A non-positive limit
// uses DefaultLimit.
func New(limit int, opts ...Option) *Buffer {
	if limit <= 0 {
		limit = DefaultLimit
	}
	b := &Buffer{
		ring: make([]Entry, limit),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Append stamps message with the current time and adds it as the newest
// entry, evicting the oldest when the buffer is full.
func (b *Buffer) Append(message string) {
	if len(b.ring) == 0 {
		b.ring = make([]Entry, DefaultLimit)
	}
	now := b.now
	if now == nil {
		now = time.Now
	}
	entry := Entry{Time: now(), Message: message}
	limit := len(b.ring)
	if b.count < limit {
		b.ring[(b.start+b.count)%limit] = entry
		b.count++
	} else {
		b.ring[b.start] = entry
		b.start = (b.start + 1) % limit
	}
	b.version++

	if b.logger != nil {
		b.logger.LogAttrs(context.Background(), slog.LevelDebug, "console", slog.String("message", message))
	}
	if b.scroll != nil {
		b.scroll.ScheduleScroll()
	}
}

// Clear drops every entry.
func (b *Buffer) Clear() {
	for i := range b.ring {
		b.ring[i] = Entry{}
	}
	b.start = 0
	b.count = 0
	b.version++
}

// Len returns the number of retained entries.
func (b *Buffer) Len() int {
	return b.count
}

// Limit returns the capacity.
func (b *Buffer) Limit() int {
	if len(b.ring) == 0 {
		return DefaultLimit
	}
	return len(b.ring)
}

// Version changes on every mutation so viewers can skip redundant renders.
func (b *Buffer) Version() uint64 {
	return b.version
}

// Entries returns the retained entries oldest first.
func (b *Buffer) Entries() []Entry {
	if b.count == 0 {
		return nil
	}
	out := make([]Entry, b.count)
	limit := len(b.ring)
	for i := 0; i < b.count; i++ {
		out[i] = b.ring[(b.start+i)%limit]
	}
	return out
}

// Lines returns the retained entries rendered with String.
func (b *Buffer) Lines() []string {
	entries := b.Entries()
	if len(entries) == 0 {
		return nil
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return lines
}

// Last returns the newest entry.
func (b *Buffer) Last() (Entry, bool) {
	if b.count == 0 {
		return Entry{}, false
	}
	return b.ring[(b.start+b.count-1)%len(b.ring)], true
}
