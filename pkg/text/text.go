// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package text holds the pure line transforms applied to matched files.
//
// Lines always keep their terminators, so joining the output of a Rule
// reproduces the file byte for byte outside of the edited lines.
package text

import (
	"strings"
)

// Result contains the outcome of applying a Rule to a file's lines
type Result struct {
	// Lines is the proposed content
	Lines []string

	// Changed reports whether the rule considers the file modified.
	// Each rule has its own equality test.
	Changed bool

	// Count is the number of lines the rule touched
	Count int
}

// Rule computes proposed lines from the original lines of one file
type Rule interface {
	// Apply never mutates the input slice
	Apply(lines []string) Result

	// Validate checks the rule arguments before any file is read
	Validate() error
}

// SplitLines splits content after every "\n", keeping the terminator on each line.
// A trailing fragment without a terminator is kept as the last line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines is the inverse of SplitLines
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}

// TrimTerminator drops a trailing "\n" or "\r\n"
func TrimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// ContainsFold reports whether sub is within s, ignoring case
func ContainsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ContainsFoldFunc returns a line predicate for KeywordAdd
func ContainsFoldFunc(sub string) func(string) bool {
	return func(line string) bool {
		return ContainsFold(line, sub)
	}
}

func ensureNewline(line string) string {
	if strings.HasSuffix(line, "\n") {
		return line
	}
	return line + "\n"
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
