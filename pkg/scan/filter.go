package scan

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Filter decides which files are candidates for the keyword test.
// rel is the slash-separated path relative to the scan root.
type Filter interface {
	Accept(rel string) bool
}

// FilterFunc adapts a function to Filter
type FilterFunc func(rel string) bool

// Accept implements Filter.Accept
func (f FilterFunc) Accept(rel string) bool {
	return f(rel)
}

// DefaultExtensions is the extension list used when none is configured
var DefaultExtensions = []string{".py"}

// TestFileFilter accepts files with one of the given extensions whose base
// name contains "test", ignoring case. No extensions means DefaultExtensions.
func TestFileFilter(extensions ...string) Filter {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}

	return FilterFunc(func(rel string) bool {
		name := strings.ToLower(filepath.Base(filepath.FromSlash(rel)))
		if !strings.Contains(name, "test") {
			return false
		}
		for _, ext := range exts {
			if strings.HasSuffix(name, ext) {
				return true
			}
		}
		return false
	})
}

// GlobFilter accepts files matching any Include pattern and no Ignore pattern.
// Patterns use doublestar syntax ("**/test_*.py"). An empty Include accepts
// every file not ignored.
type GlobFilter struct {
	Include []string
	Ignore  []string
}

// Accept implements Filter.Accept
func (g GlobFilter) Accept(rel string) bool {
	if matchesAny(g.Ignore, rel) {
		return false
	}
	if len(g.Include) == 0 {
		return true
	}
	return matchesAny(g.Include, rel)
}

// Validate checks every pattern for syntax errors
func (g GlobFilter) Validate() error {
	for _, p := range append(append([]string(nil), g.Include...), g.Ignore...) {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// AllOf accepts a file only when every filter accepts it
func AllOf(filters ...Filter) Filter {
	return FilterFunc(func(rel string) bool {
		for _, f := range filters {
			if f != nil && !f.Accept(rel) {
				return false
			}
		}
		return true
	})
}

func matchesAny(patterns []string, rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
