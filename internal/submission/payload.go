package submission

import (
	"strings"

	"github.com/five82/mtlreq/internal/form"
	"github.com/five82/mtlreq/internal/ingest"
)

// BuildRequest turns a validated snapshot into the request body. URL-like
// fields are trimmed, free text is sent as typed, and empty optional fields
// stay empty so they are omitted on the wire.
func BuildRequest(state form.State) ingest.Request {
	return ingest.Request{
		URL:            strings.TrimSpace(state.Get(form.BookURL)),
		ChapterPattern: strings.TrimSpace(state.Get(form.ChapterPattern)),
		ImageURL:       strings.TrimSpace(state.Get(form.ImageURL)),
		TitleEn:        nonBlank(state.Get(form.TitleEn)),
		TitleZh:        nonBlank(state.Get(form.TitleZh)),
		Author:         nonBlank(state.Get(form.Author)),
		Synopsis:       nonBlank(state.Get(form.Synopsis)),
		Genres:         SplitList(state.Get(form.Genres)),
		Tags:           SplitList(state.Get(form.Tags)),
	}
}

// SplitList splits comma-separated input, trimming items and dropping empty
// ones. Order and duplicates are kept. It returns nil when nothing remains.
func SplitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// nonBlank keeps s verbatim unless it is only whitespace.
func nonBlank(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
