package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/five82/mtlreq/internal/sites"
)

const (
	defaultTimeout   = 20 * time.Second
	defaultUserAgent = "Mozilla/5.0 (compatible; mtlreq/0.1)"
	maxPageBytes     = 4 << 20
)

// ErrNoSelectors is returned when the preset defines nothing to extract.
var ErrNoSelectors = errors.New("site preset has no metadata selectors")

// Metadata is what a book page advertises about itself. Any field may be empty.
type Metadata struct {
	Title    string
	Author   string
	CoverURL string
	Synopsis string
}

// Empty reports whether nothing was found.
func (m Metadata) Empty() bool {
	return m.Title == "" && m.Author == "" && m.CoverURL == "" && m.Synopsis == ""
}

// Fetcher downloads book pages and extracts metadata.
type Fetcher struct {
	http      *http.Client
	userAgent string
}

// NewFetcher returns a Fetcher. A nil client gets a default with a short timeout.
func NewFetcher(hc *http.Client) *Fetcher {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Fetcher{http: hc, userAgent: defaultUserAgent}
}

// Lookup fetches pageURL and applies sel to the document.
func (f *Fetcher) Lookup(ctx context.Context, pageURL string, sel sites.Selectors) (Metadata, error) {
	if sel.Empty() {
		return Metadata{}, ErrNoSelectors
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.http.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Metadata{}, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return Metadata{}, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return Extract(doc, pageURL, sel), nil
}

// Extract applies sel to an already parsed document. Relative cover links are
// resolved against base.
func Extract(doc *goquery.Document, base string, sel sites.Selectors) Metadata {
	root := doc.Selection
	return Metadata{
		Title:    collapse(getVal(root, sel.Title)),
		Author:   collapse(getVal(root, sel.Author)),
		CoverURL: abs(base, getVal(root, sel.Cover)),
		Synopsis: tidy(getVal(root, sel.Synopsis)),
	}
}

// getVal evaluates "css", "css@attr" or "a||b" against scope.
func getVal(scope *goquery.Selection, expr string) string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return ""
	}
	for _, part := range strings.Split(expr, "||") {
		if v := getValSingle(scope, strings.TrimSpace(part)); v != "" {
			return v
		}
	}
	return ""
}

func getValSingle(scope *goquery.Selection, expr string) string {
	if expr == "" {
		return ""
	}
	if at := strings.LastIndex(expr, "@"); at != -1 && !strings.Contains(expr[at:], "]") {
		sel := strings.TrimSpace(expr[:at])
		attr := strings.TrimSpace(expr[at+1:])
		target := scope
		if sel != "" {
			target = scope.Find(sel).First()
		}
		val, _ := target.Attr(attr)
		return strings.TrimSpace(val)
	}
	return strings.TrimSpace(scope.Find(expr).First().Text())
}

func abs(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	bu, err := url.Parse(base)
	if err != nil {
		return ref
	}
	ru, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return bu.ResolveReference(ru).String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// tidy keeps paragraph breaks but collapses runs of blank lines and spaces.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = collapse(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
