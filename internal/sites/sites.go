package sites

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/mtlreq/internal/validate"
)

// DefaultName is the preset used when none is configured or the configured
// name is unknown.
const DefaultName = "generic"

//go:embed sites.yaml
var builtin []byte

// Selectors locate book metadata on a source page. Each value is a CSS
// selector, optionally suffixed with @attr, with "||" separating fallbacks.
type Selectors struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Cover    string `yaml:"cover"`
	Synopsis string `yaml:"synopsis"`
}

// Empty reports whether no selector is set.
func (s Selectors) Empty() bool {
	return s.Title == "" && s.Author == "" && s.Cover == "" && s.Synopsis == ""
}

// Site is one source-site preset.
type Site struct {
	Name            string    `yaml:"-"`
	BookURL         string    `yaml:"book_url"`
	BookURLExample  string    `yaml:"book_url_example"`
	ChapterPattern  string    `yaml:"chapter_pattern"`
	ImageExtensions []string  `yaml:"image_extensions"`
	Metadata        Selectors `yaml:"metadata"`
}

// Catalog holds presets keyed by lower-case name.
type Catalog struct {
	sites map[string]Site
}

// Builtin returns the embedded presets.
func Builtin() (*Catalog, error) {
	c := &Catalog{sites: make(map[string]Site)}
	if err := c.merge(builtin, "builtin sites"); err != nil {
		return nil, err
	}
	return c, nil
}

// Load returns the builtin presets with the user file at path merged on top.
// A missing file is not an error.
func Load(path string) (*Catalog, error) {
	c, err := Builtin()
	if err != nil {
		return nil, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("read sites %s: %w", path, err)
	}
	if err := c.merge(data, path); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) merge(data []byte, source string) error {
	var raw map[string]Site
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal %s: %w", source, err)
	}
	for name, site := range raw {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		site.Name = key
		if strings.TrimSpace(site.BookURL) == "" {
			return fmt.Errorf("%s: site %q has no book_url", source, name)
		}
		if _, err := site.Rules(validate.Options{}); err != nil {
			return fmt.Errorf("%s: site %q: %w", source, name, err)
		}
		c.sites[key] = site
	}
	return nil
}

// Get looks a preset up case-insensitively. Unknown or empty names fall back
// to DefaultName; ok is false when that happened.
func (c *Catalog) Get(name string) (Site, bool) {
	if c == nil || len(c.sites) == 0 {
		return Site{}, false
	}
	key := strings.ToLower(strings.TrimSpace(name))
	if site, ok := c.sites[key]; ok && key != "" {
		return site, true
	}
	if site, ok := c.sites[DefaultName]; ok {
		return site, key == DefaultName
	}
	if names := c.Names(); len(names) > 0 {
		return c.sites[names[0]], false
	}
	return Site{}, false
}

// Names lists preset names in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.sites))
	for name := range c.sites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rules compiles the preset into validation rules. Required-field toggles
// come from base; the preset supplies the patterns.
func (s Site) Rules(base validate.Options) (validate.Rules, error) {
	opts := base
	opts.BookURLPattern = s.BookURL
	opts.BookURLExample = s.BookURLExample
	if s.ChapterPattern != "" {
		opts.ChapterPattern = s.ChapterPattern
	}
	if len(s.ImageExtensions) > 0 {
		opts.ImageExtensions = s.ImageExtensions
	}
	return validate.NewRules(opts)
}
