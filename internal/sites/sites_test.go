package sites

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/five82/mtlreq/internal/validate"
)

func TestBuiltin_ContainsGenericAndIxdzs(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin returned error: %v", err)
	}
	if got := c.Names(); !reflect.DeepEqual(got, []string{"generic", "ixdzs"}) {
		t.Fatalf("Names = %v", got)
	}
	ix, ok := c.Get("IXDZS")
	if !ok || ix.Name != "ixdzs" {
		t.Fatalf("Get(IXDZS) = %+v, %v", ix, ok)
	}
	if ix.Metadata.Title != "div.book-info h1" {
		t.Fatalf("ixdzs title selector = %q", ix.Metadata.Title)
	}
}

func TestGet_FallsBackToGeneric(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin returned error: %v", err)
	}
	for _, name := range []string{"", "nope"} {
		site, ok := c.Get(name)
		if ok {
			t.Fatalf("Get(%q) ok = true, want fallback", name)
		}
		if site.Name != DefaultName {
			t.Fatalf("Get(%q) = %q, want %q", name, site.Name, DefaultName)
		}
	}
	if _, ok := c.Get("generic"); !ok {
		t.Fatalf("Get(generic) should report ok")
	}
}

func TestSiteRules_ValidateBookURLs(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin returned error: %v", err)
	}
	tests := []struct {
		site  string
		url   string
		valid bool
	}{
		{"generic", "https://example.com/book/582614", true},
		{"generic", "https://example.com/novel/582614", false},
		{"ixdzs", "https://ixdzs.tw/book/582614/", true},
		{"ixdzs", "https://www.ixdzs.tw/book/1", true},
		{"ixdzs", "https://example.com/book/582614", false},
	}
	for _, tt := range tests {
		site, _ := c.Get(tt.site)
		rules, err := site.Rules(validate.Options{})
		if err != nil {
			t.Fatalf("%s Rules returned error: %v", tt.site, err)
		}
		err = validate.BookURL(rules, tt.url)
		if (err == nil) != tt.valid {
			t.Fatalf("%s BookURL(%q) err = %v, want valid=%v", tt.site, tt.url, err, tt.valid)
		}
	}
}

func TestLoad_MergesUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sites.yaml")
	data := `
Generic:
  book_url: '^https://mirror\.test/b/\d+$'
  image_extensions: [webp]
custom:
  book_url: '^https://custom\.test/\d+$'
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := c.Names(); !reflect.DeepEqual(got, []string{"custom", "generic", "ixdzs"}) {
		t.Fatalf("Names = %v", got)
	}
	generic, _ := c.Get("generic")
	if generic.BookURL != `^https://mirror\.test/b/\d+$` {
		t.Fatalf("generic not overridden: %q", generic.BookURL)
	}
	rules, err := generic.Rules(validate.Options{})
	if err != nil {
		t.Fatalf("Rules returned error: %v", err)
	}
	if err := validate.ImageURL(rules, "https://x.test/a.webp"); err != nil {
		t.Fatalf("webp should be accepted: %v", err)
	}
}

func TestLoad_MissingFileUsesBuiltin(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(c.Names()) != 2 {
		t.Fatalf("Names = %v", c.Names())
	}
}

func TestLoad_RejectsBadPresets(t *testing.T) {
	tests := map[string]string{
		"no book_url":   "bad:\n  chapter_pattern: 'x'\n",
		"bad regex":     "bad:\n  book_url: '('\n",
		"not a mapping": "- a\n- b\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sites.yaml")
			if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("Load succeeded, want error")
			}
		})
	}
}
