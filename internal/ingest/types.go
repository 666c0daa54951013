package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Request mirrors the JSON body accepted by the ingestion endpoint. Empty
// fields are omitted so the backend can tell "not provided" from "empty".
type Request struct {
	URL            string   `json:"url"`
	ChapterPattern string   `json:"chapterPattern,omitempty"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	TitleEn        string   `json:"titleEn,omitempty"`
	TitleZh        string   `json:"titleZh,omitempty"`
	Author         string   `json:"author,omitempty"`
	Synopsis       string   `json:"synopsis,omitempty"`
	Genres         []string `json:"genres,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// Response mirrors the endpoint's reply. Failure bodies usually carry only
// one of Message, Error or Detail.
type Response struct {
	Status           string          `json:"status,omitempty"`
	NovelID          NovelID         `json:"novel_id,omitempty"`
	ChaptersIngested *int            `json:"chapters_ingested,omitempty"`
	Message          string          `json:"message,omitempty"`
	Error            string          `json:"error,omitempty"`
	Detail           json.RawMessage `json:"detail,omitempty"`

	// StatusCode is the HTTP status the response arrived with.
	StatusCode int    `json:"-"`
	RequestID  string `json:"-"`
}

// Reason returns the human-readable failure text the backend supplied, if any.
func (r Response) Reason() string {
	if msg := strings.TrimSpace(r.Message); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(r.Error); msg != "" {
		return msg
	}
	return detailText(r.Detail)
}

// detailText unwraps FastAPI's "detail" field, which is either a string or a
// list of validation objects with a "msg" key.
func detailText(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		var msgs []string
		for _, item := range items {
			if m := strings.TrimSpace(item.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// NovelID is the backend identifier of an ingested novel. The endpoint has
// returned it both as a JSON number and as a string.
type NovelID string

// UnmarshalJSON accepts numbers, strings and null.
func (id *NovelID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("novel_id: %w", err)
		}
		*id = NovelID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("novel_id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = NovelID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = NovelID(n.String())
	return nil
}

// MarshalJSON writes integral ids as numbers and everything else as strings.
func (id NovelID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id NovelID) String() string {
	return string(id)
}

// Empty reports whether the id is missing. A zero numeric id counts as
// missing, matching the endpoint's falsy check.
func (id NovelID) Empty() bool {
	return id == "" || id == "0"
}
