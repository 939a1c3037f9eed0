package text

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Position selects where Insert places its new line
type Position int

const (
	After Position = iota
	Before
)

// String returns a string representation of Position
func (p Position) String() string {
	if p == Before {
		return "before"
	}
	return "after"
}

// SubstringReplace replaces every occurrence of Old with New on every line
type SubstringReplace struct {
	Old string
	New string
}

// Apply implements Rule.Apply
func (r SubstringReplace) Apply(lines []string) Result {
	out := make([]string, len(lines))
	count := 0
	for i, line := range lines {
		out[i] = strings.ReplaceAll(line, r.Old, r.New)
		if out[i] != line {
			count += strings.Count(line, r.Old)
		}
	}
	return Result{Lines: out, Changed: !equalLines(lines, out), Count: count}
}

// Validate implements Rule.Validate
func (r SubstringReplace) Validate() error {
	if r.Old == "" {
		return errors.New("text to replace is required")
	}
	return nil
}

// LineReplace swaps every line containing Match (ignoring case) for Line
type LineReplace struct {
	Match string
	Line  string
}

// Apply implements Rule.Apply
func (r LineReplace) Apply(lines []string) Result {
	out := make([]string, len(lines))
	replacement := ensureNewline(r.Line)
	count := 0
	for i, line := range lines {
		if ContainsFold(line, r.Match) {
			out[i] = replacement
			count++
			continue
		}
		out[i] = line
	}
	return Result{Lines: out, Changed: !equalLines(lines, out), Count: count}
}

// Validate implements Rule.Validate
func (r LineReplace) Validate() error {
	if r.Match == "" {
		return errors.New("line match is required")
	}
	return nil
}

// LineRemove drops every line containing Keyword (ignoring case)
type LineRemove struct {
	Keyword string
}

// Apply implements Rule.Apply
func (r LineRemove) Apply(lines []string) Result {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if ContainsFold(line, r.Keyword) {
			continue
		}
		out = append(out, line)
	}
	removed := len(lines) - len(out)
	return Result{Lines: out, Changed: removed != 0, Count: removed}
}

// Validate implements Rule.Validate
func (r LineRemove) Validate() error {
	if r.Keyword == "" {
		return errors.New("keyword is required")
	}
	return nil
}

// Insert adds Line next to every line containing Match (case-sensitive).
// With FirstOnly, only the first matching line gets a neighbour and the
// rest of the file passes through untouched.
type Insert struct {
	Match     string
	Line      string
	Position  Position
	FirstOnly bool
}

// Apply implements Rule.Apply
func (r Insert) Apply(lines []string) Result {
	out := make([]string, 0, len(lines)+1)
	newLine := ensureNewline(r.Line)
	inserted := 0

	for i, line := range lines {
		if !strings.Contains(line, r.Match) {
			out = append(out, line)
			continue
		}

		if r.Position == Before {
			out = append(out, newLine, line)
		} else {
			// a final line without terminator would otherwise fuse with the insertion
			out = append(out, ensureNewline(line), newLine)
		}
		inserted++

		if r.FirstOnly {
			out = append(out, lines[i+1:]...)
			break
		}
	}

	return Result{Lines: out, Changed: inserted > 0, Count: inserted}
}

// Validate implements Rule.Validate
func (r Insert) Validate() error {
	if r.Match == "" {
		return errors.New("line match is required")
	}
	return nil
}

// KeywordAdd places Keyword on its own line before every line accepted by When.
// A nil When accepts every line.
type KeywordAdd struct {
	Keyword string
	When    func(line string) bool
}

// Apply implements Rule.Apply
func (r KeywordAdd) Apply(lines []string) Result {
	out := make([]string, 0, len(lines)*2)
	keywordLine := ensureNewline(r.Keyword)
	count := 0
	for _, line := range lines {
		if r.When == nil || r.When(line) {
			out = append(out, keywordLine)
			count++
		}
		out = append(out, line)
	}
	return Result{Lines: out, Changed: count > 0, Count: count}
}

// Validate implements Rule.Validate
func (r KeywordAdd) Validate() error {
	if r.Keyword == "" {
		return errors.New("keyword is required")
	}
	return nil
}
