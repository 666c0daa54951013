package form

import "testing"

func TestModel_SetFieldReplacesOnlyOneField(t *testing.T) {
	m := NewModel()
	if err := m.SetField(Genres, "Fantasy"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if err := m.SetField(Tags, "slow burn"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}
	if err := m.SetField(Genres, "Romance"); err != nil {
		t.Fatalf("SetField returned error: %v", err)
	}

	snap := m.Snapshot()
	if got := snap.Get(Genres); got != "Romance" {
		t.Fatalf("Genres = %q, want Romance", got)
	}
	if got := snap.Get(Tags); got != "slow burn" {
		t.Fatalf("Tags = %q, want %q", got, "slow burn")
	}
	if got := snap.Get(BookURL); got != "" {
		t.Fatalf("BookURL = %q, want empty", got)
	}
}

func TestModel_SnapshotIsIsolatedFromLaterEdits(t *testing.T) {
	m := NewModel()
	_ = m.SetField(BookURL, "https://example.com/book/1")
	before := m.Snapshot()

	_ = m.SetField(BookURL, "https://example.com/book/2")

	if got := before.Get(BookURL); got != "https://example.com/book/1" {
		t.Fatalf("snapshot changed after edit: %q", got)
	}
	if got := m.Snapshot().Get(BookURL); got != "https://example.com/book/2" {
		t.Fatalf("current BookURL = %q", got)
	}
}

func TestModel_SetFieldRejectsUnknown(t *testing.T) {
	m := NewModel()
	if err := m.SetField(Field("nope"), "x"); err == nil {
		t.Fatalf("SetField returned nil error for unknown field")
	}
}

func TestState_ValuesAreRaw(t *testing.T) {
	s := NewState(map[Field]string{TitleEn: "  Spaced  ", Field("bogus"): "x"})
	if got := s.Get(TitleEn); got != "  Spaced  " {
		t.Fatalf("TitleEn = %q, want untrimmed", got)
	}
	if _, ok := s.Values()[Field("bogus")]; ok {
		t.Fatalf("unknown field kept in state")
	}

	vals := s.Values()
	vals[TitleEn] = "mutated"
	if s.Get(TitleEn) != "  Spaced  " {
		t.Fatalf("Values should return a copy")
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in   string
		want Field
	}{
		{"bookUrl", BookURL},
		{"BOOKURL", BookURL},
		{"url", BookURL},
		{"description", Synopsis},
		{" tags ", Tags},
	}
	for _, tt := range tests {
		got, err := ParseField(tt.in)
		if err != nil {
			t.Fatalf("ParseField(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseField(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := ParseField("isbn"); err == nil {
		t.Fatalf("ParseField(isbn) returned nil error")
	}
}

func TestFields_DeclarationOrder(t *testing.T) {
	fields := Fields()
	if len(fields) != 9 || fields[0] != BookURL || fields[len(fields)-1] != Tags {
		t.Fatalf("Fields() = %v", fields)
	}
	fields[0] = Tags
	if Fields()[0] != BookURL {
		t.Fatalf("Fields should return a copy")
	}
}
