package submission

import (
	"reflect"
	"testing"

	"github.com/five82/mtlreq/internal/form"
	"github.com/five82/mtlreq/internal/ingest"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Fantasy, , Romance", []string{"Fantasy", "Romance"}},
		{" a ,b,a ", []string{"a", "b", "a"}},
		{"", nil},
		{" , ,", nil},
		{"solo", []string{"solo"}},
	}
	for _, tt := range tests {
		if got := SplitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("SplitList(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestBuildRequest(t *testing.T) {
	state := form.NewState(map[form.Field]string{
		form.BookURL:        "  https://example.com/book/582614 ",
		form.ChapterPattern: "p1.html",
		form.TitleEn:        " Battle Through the Heavens",
		form.Author:         "   ",
		form.Genres:         "Fantasy, , Romance",
	})
	got := BuildRequest(state)
	want := ingest.Request{
		URL:            "https://example.com/book/582614",
		ChapterPattern: "p1.html",
		TitleEn:        " Battle Through the Heavens",
		Genres:         []string{"Fantasy", "Romance"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildRequest = %#v, want %#v", got, want)
	}
}
