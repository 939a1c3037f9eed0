package report

import "strings"

// DefaultMarker is the path segment TrimToMarker keeps from
const DefaultMarker = "tests/"

// TrimToMarker rewrites each path to start at the first occurrence of marker.
// Backslashes are normalised to slashes first. Paths without the marker are
// dropped. An empty marker means DefaultMarker.
func TrimToMarker(paths []string, marker string) []string {
	if marker == "" {
		marker = DefaultMarker
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.ReplaceAll(p, `\`, "/")
		_, rest, found := strings.Cut(p, marker)
		if !found {
			continue
		}
		out = append(out, marker+rest)
	}
	return out
}

// Join joins paths with a space when singleLine is set and a newline otherwise
func Join(paths []string, singleLine bool) string {
	if singleLine {
		return strings.Join(paths, " ")
	}
	return strings.Join(paths, "\n")
}
