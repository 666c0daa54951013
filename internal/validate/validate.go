package validate

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/five82/mtlreq/internal/form"
)

// Kind classifies a validation failure.
type Kind int

const (
	InvalidFormat Kind = iota + 1
	MissingField
)

func (k Kind) String() string {
	switch k {
	case InvalidFormat:
		return "invalid format"
	case MissingField:
		return "missing field"
	default:
		return "unknown"
	}
}

// Error reports the first rule a form failed. It never leaves the client.
type Error struct {
	Field  form.Field
	Label  string
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Reason
}

const (
	defaultChapterPattern = `^p?\d+\.html$`
	defaultBookURLHint    = "https://example.com/book/123"
)

var defaultImageExtensions = []string{"jpg", "jpeg", "png", "gif"}

// Options describe a form variant. Patterns are regular expressions; an empty
// BookURLPattern accepts any absolute http(s) URL.
type Options struct {
	BookURLPattern        string
	BookURLExample        string
	ChapterPattern        string
	ImageExtensions       []string
	RequireTitles         bool
	RequireAuthor         bool
	RequireChapterPattern bool
}

// Rules is the compiled form of Options.
type Rules struct {
	bookURL        *regexp.Regexp
	bookURLExample string
	chapter        *regexp.Regexp
	imageExts      map[string]struct{}
	imageExtList   []string

	RequireTitles         bool
	RequireAuthor         bool
	RequireChapterPattern bool
}

// NewRules compiles opts. Invalid patterns are configuration errors.
func NewRules(opts Options) (Rules, error) {
	rules := Rules{
		bookURLExample:        strings.TrimSpace(opts.BookURLExample),
		RequireTitles:         opts.RequireTitles,
		RequireAuthor:         opts.RequireAuthor,
		RequireChapterPattern: opts.RequireChapterPattern,
	}
	if rules.bookURLExample == "" {
		rules.bookURLExample = defaultBookURLHint
	}

	if pattern := strings.TrimSpace(opts.BookURLPattern); pattern != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Rules{}, fmt.Errorf("compile book url pattern: %w", err)
		}
		rules.bookURL = re
	}

	chapter := strings.TrimSpace(opts.ChapterPattern)
	if chapter == "" {
		chapter = defaultChapterPattern
	}
	re, err := regexp.Compile(chapter)
	if err != nil {
		return Rules{}, fmt.Errorf("compile chapter pattern: %w", err)
	}
	rules.chapter = re

	exts := opts.ImageExtensions
	if len(exts) == 0 {
		exts = defaultImageExtensions
	}
	rules.imageExts = make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if _, seen := rules.imageExts[ext]; ext == "" || seen {
			continue
		}
		rules.imageExts[ext] = struct{}{}
		rules.imageExtList = append(rules.imageExtList, ext)
	}
	return rules, nil
}

// DefaultRules accepts any absolute http(s) book URL with the default
// chapter pattern and image extensions.
func DefaultRules() Rules {
	rules, _ := NewRules(Options{})
	return rules
}

// BookURL checks the book URL against the configured source-site pattern.
func BookURL(rules Rules, raw string) error {
	label := form.BookURL.Label()
	value := strings.TrimSpace(raw)
	if value == "" {
		return &Error{Field: form.BookURL, Label: label, Kind: MissingField, Reason: label + " is required."}
	}
	if _, ok := parseAbsolute(value); !ok {
		return invalidBookURL(rules)
	}
	if rules.bookURL != nil && !rules.bookURL.MatchString(value) {
		return invalidBookURL(rules)
	}
	return nil
}

func invalidBookURL(rules Rules) *Error {
	example := rules.bookURLExample
	if example == "" {
		example = defaultBookURLHint
	}
	return &Error{
		Field:  form.BookURL,
		Label:  form.BookURL.Label(),
		Kind:   InvalidFormat,
		Reason: fmt.Sprintf("Please enter a valid book URL (e.g. %s).", example),
	}
}

// ChapterPattern checks the optional chapter filename pattern.
func ChapterPattern(rules Rules, raw string) error {
	label := form.ChapterPattern.Label()
	value := strings.TrimSpace(raw)
	if value == "" {
		if rules.RequireChapterPattern {
			return &Error{Field: form.ChapterPattern, Label: label, Kind: MissingField, Reason: label + " is required."}
		}
		return nil
	}
	re := rules.chapter
	if re == nil {
		re = regexp.MustCompile(defaultChapterPattern)
	}
	if !re.MatchString(value) {
		return &Error{
			Field:  form.ChapterPattern,
			Label:  label,
			Kind:   InvalidFormat,
			Reason: fmt.Sprintf("%s must look like p1.html or 1.html.", label),
		}
	}
	return nil
}

// ImageURL checks the optional cover image URL.
func ImageURL(rules Rules, raw string) error {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	label := form.ImageURL.Label()
	invalid := &Error{
		Field:  form.ImageURL,
		Label:  label,
		Kind:   InvalidFormat,
		Reason: fmt.Sprintf("%s must be an http(s) link to a %s image.", label, strings.Join(rules.extensionList(), "/")),
	}
	u, ok := parseAbsolute(value)
	if !ok {
		return invalid
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	exts := rules.imageExts
	if len(exts) == 0 {
		exts = DefaultRules().imageExts
	}
	if _, ok := exts[ext]; !ok {
		return invalid
	}
	return nil
}

// RequiredText fails when the trimmed value is empty.
func RequiredText(field form.Field, value string) error {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	label := field.Label()
	return &Error{Field: field, Label: label, Kind: MissingField, Reason: label + " is required."}
}

// Form runs every rule in fixed order and returns the first failure.
func Form(rules Rules, state form.State) error {
	if err := BookURL(rules, state.Get(form.BookURL)); err != nil {
		return err
	}
	if err := ChapterPattern(rules, state.Get(form.ChapterPattern)); err != nil {
		return err
	}
	if err := ImageURL(rules, state.Get(form.ImageURL)); err != nil {
		return err
	}
	for _, field := range rules.requiredText() {
		if err := RequiredText(field, state.Get(field)); err != nil {
			return err
		}
	}
	return nil
}

// requiredText lists the required free-text fields in declaration order.
func (r Rules) requiredText() []form.Field {
	var fields []form.Field
	for _, field := range form.Fields() {
		switch field {
		case form.TitleEn, form.TitleZh:
			if r.RequireTitles {
				fields = append(fields, field)
			}
		case form.Author:
			if r.RequireAuthor {
				fields = append(fields, field)
			}
		}
	}
	return fields
}

// Required reports whether field must be filled for this variant.
func (r Rules) Required(field form.Field) bool {
	switch field {
	case form.BookURL:
		return true
	case form.ChapterPattern:
		return r.RequireChapterPattern
	case form.TitleEn, form.TitleZh:
		return r.RequireTitles
	case form.Author:
		return r.RequireAuthor
	default:
		return false
	}
}

func (r Rules) extensionList() []string {
	if len(r.imageExtList) == 0 {
		return defaultImageExtensions
	}
	return r.imageExtList
}

func parseAbsolute(value string) (*url.URL, bool) {
	if strings.ContainsAny(value, " \t\r\n") {
		return nil, false
	}
	u, err := url.Parse(value)
	if err != nil {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Host == "" {
		return nil, false
	}
	return u, true
}
