package ingest

import (
	"encoding/json"
	"testing"
)

func TestRequest_OmitsEmptyOptionalFields(t *testing.T) {
	raw, err := json.Marshal(Request{URL: "https://example.com/book/1"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(raw) != `{"url":"https://example.com/book/1"}` {
		t.Fatalf("json = %s", raw)
	}
}

func TestNovelID_UnmarshalVariants(t *testing.T) {
	tests := []struct {
		in   string
		want NovelID
	}{
		{`{"novel_id":42}`, "42"},
		{`{"novel_id":"42"}`, "42"},
		{`{"novel_id":" x9 "}`, "x9"},
		{`{"novel_id":null}`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		var resp Response
		if err := json.Unmarshal([]byte(tt.in), &resp); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", tt.in, err)
		}
		if resp.NovelID != tt.want {
			t.Fatalf("Unmarshal(%s) NovelID = %q, want %q", tt.in, resp.NovelID, tt.want)
		}
	}
}

func TestNovelID_MarshalKeepsNumbersNumeric(t *testing.T) {
	raw, err := json.Marshal(struct {
		A NovelID `json:"a"`
		B NovelID `json:"b"`
	}{A: "42", B: "abc"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(raw) != `{"a":42,"b":"abc"}` {
		t.Fatalf("json = %s", raw)
	}
}

func TestResponse_ReasonPrecedence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message wins", `{"message":"m","error":"e","detail":"d"}`, "m"},
		{"error next", `{"error":"e","detail":"d"}`, "e"},
		{"detail string", `{"detail":"not found"}`, "not found"},
		{"detail list", `{"detail":[{"msg":"a"},{"msg":""},{"msg":"b"}]}`, "a; b"},
		{"detail object", `{"detail":{"x":1}}`, ""},
		{"nothing", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp Response
			if err := json.Unmarshal([]byte(tt.body), &resp); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if got := resp.Reason(); got != tt.want {
				t.Fatalf("Reason = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNovelID_Empty(t *testing.T) {
	for _, id := range []NovelID{"", "0"} {
		if !id.Empty() {
			t.Fatalf("%q should be empty", id)
		}
	}
	if NovelID("42").Empty() {
		t.Fatalf("42 should not be empty")
	}
}
