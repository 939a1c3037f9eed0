package scan

// 📄 Match is one line that holds a keyword
type Match struct {
	Line int    // 1-based line number
	Text string // line text without surrounding whitespace
}

// 🗺️ MatchSet maps file paths to their matched lines, keeping insertion order
type MatchSet struct {
	paths []string
	lines map[string][]Match
}

// NewMatchSet creates an empty set
func NewMatchSet() *MatchSet {
	return &MatchSet{
		lines: make(map[string][]Match),
	}
}

// Add registers path (once) and appends any given matches to it
func (s *MatchSet) Add(path string, matches ...Match) {
	if _, ok := s.lines[path]; !ok {
		s.paths = append(s.paths, path)
		s.lines[path] = nil
	}
	s.lines[path] = append(s.lines[path], matches...)
}

// Paths returns the file paths in insertion order
func (s *MatchSet) Paths() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.paths...)
}

// Lines returns the matches recorded for path
func (s *MatchSet) Lines(path string) []Match {
	if s == nil {
		return nil
	}
	return append([]Match(nil), s.lines[path]...)
}

// Contains reports whether path is in the set
func (s *MatchSet) Contains(path string) bool {
	if s == nil {
		return false
	}
	_, ok := s.lines[path]
	return ok
}

// Len returns the number of files
func (s *MatchSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.paths)
}

// Total returns the number of matched lines across all files
func (s *MatchSet) Total() int {
	if s == nil {
		return 0
	}
	total := 0
	for _, m := range s.lines {
		total += len(m)
	}
	return total
}
