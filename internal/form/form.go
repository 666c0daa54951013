package form

import (
	"fmt"
	"strings"
)

// Field names a form input. The string value doubles as the JSON key sent to
// the ingestion endpoint.
type Field string

const (
	BookURL        Field = "bookUrl"
	ChapterPattern Field = "chapterPattern"
	ImageURL       Field = "imageUrl"
	TitleEn        Field = "titleEn"
	TitleZh        Field = "titleZh"
	Author         Field = "author"
	Synopsis       Field = "synopsis"
	Genres         Field = "genres"
	Tags           Field = "tags"
)

var fieldOrder = []Field{
	BookURL,
	ChapterPattern,
	ImageURL,
	TitleEn,
	TitleZh,
	Author,
	Synopsis,
	Genres,
	Tags,
}

var fieldLabels = map[Field]string{
	BookURL:        "Book URL",
	ChapterPattern: "Chapter pattern",
	ImageURL:       "Cover image URL",
	TitleEn:        "English title",
	TitleZh:        "Chinese title",
	Author:         "Author",
	Synopsis:       "Synopsis",
	Genres:         "Genres",
	Tags:           "Tags",
}

// aliases accepted by ParseField, mostly names used by older form variants.
var fieldAliases = map[string]Field{
	"url":         BookURL,
	"description": Synopsis,
	"cover":       ImageURL,
}

// Fields returns every field in declaration order.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Label returns the human-readable name used in notifications.
func (f Field) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	_, ok := fieldLabels[f]
	return ok
}

// ParseField resolves a field name case-insensitively, accepting legacy aliases.
func ParseField(name string) (Field, error) {
	trimmed := strings.TrimSpace(name)
	for _, f := range fieldOrder {
		if strings.EqualFold(string(f), trimmed) {
			return f, nil
		}
	}
	if f, ok := fieldAliases[strings.ToLower(trimmed)]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown form field %q", name)
}

// State is an immutable snapshot of every field value. Values are raw user
// input; nothing is trimmed or coerced here.
type State struct {
	values map[Field]string
}

// NewState builds a snapshot from values, ignoring unknown fields.
func NewState(values map[Field]string) State {
	s := State{values: make(map[Field]string, len(values))}
	for f, v := range values {
		if f.Valid() {
			s.values[f] = v
		}
	}
	return s
}

// Get returns the raw value for f, or "" when unset.
func (s State) Get(f Field) string {
	return s.values[f]
}

// With returns a copy of s with f replaced. s itself is not modified.
func (s State) With(f Field, value string) State {
	next := State{values: make(map[Field]string, len(s.values)+1)}
	for k, v := range s.values {
		next.values[k] = v
	}
	next.values[f] = value
	return next
}

// Values returns a copy of the underlying map.
func (s State) Values() map[Field]string {
	out := make(map[Field]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Model holds the current form values for one page instance.
type Model struct {
	state State
}

// NewModel returns an empty form.
func NewModel() *Model {
	return &Model{state: NewState(nil)}
}

// SetField replaces the value of exactly one field.
func (m *Model) SetField(f Field, value string) error {
	if !f.Valid() {
		return fmt.Errorf("unknown form field %q", string(f))
	}
	m.state = m.state.With(f, value)
	return nil
}

// Snapshot returns the current values. Later edits do not affect it.
func (m *Model) Snapshot() State {
	return m.state
}

// Reset clears every field.
func (m *Model) Reset() {
	m.state = NewState(nil)
}
