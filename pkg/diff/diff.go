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

// Package diff computes and renders unified line diffs for change previews.
package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/walteh/markfix/pkg/text"
)

// DefaultContext is the number of unchanged lines shown around each change
const DefaultContext = 2

// 🏷️ Kind tags a diff row
type Kind int

const (
	Context Kind = iota
	Delete
	Insert
	Hunk
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	case Hunk:
		return "hunk"
	default:
		return "context"
	}
}

// Marker returns the unified diff prefix for the row kind
func (k Kind) Marker() string {
	switch k {
	case Delete:
		return "-"
	case Insert:
		return "+"
	case Hunk:
		return ""
	default:
		return " "
	}
}

// 📄 Row is one display line of a diff
type Row struct {
	Kind Kind
	// Text is the line without its terminator
	Text string
	// Peer is the counterpart line when a block of lines was replaced
	// one-for-one. Empty otherwise.
	Peer string
}

// String renders the row the way a unified diff prints it
func (r Row) String() string {
	return r.Kind.Marker() + r.Text
}

// 🔍 Compute returns unified diff rows between original and proposed lines.
// Lines may carry terminators; they are stripped from the rows.
func Compute(original, proposed []string, contextLines int) []Row {
	if contextLines < 0 {
		contextLines = 0
	}

	matcher := difflib.NewMatcher(original, proposed)

	var rows []Row
	for _, group := range matcher.GetGroupedOpCodes(contextLines) {
		first, last := group[0], group[len(group)-1]
		rows = append(rows, Row{
			Kind: Hunk,
			Text: fmt.Sprintf("@@ -%s +%s @@", formatRange(first.I1, last.I2), formatRange(first.J1, last.J2)),
		})

		for _, op := range group {
			switch op.Tag {
			case 'e':
				for _, line := range original[op.I1:op.I2] {
					rows = append(rows, Row{Kind: Context, Text: text.TrimTerminator(line)})
				}
			case 'd':
				for _, line := range original[op.I1:op.I2] {
					rows = append(rows, Row{Kind: Delete, Text: text.TrimTerminator(line)})
				}
			case 'i':
				for _, line := range proposed[op.J1:op.J2] {
					rows = append(rows, Row{Kind: Insert, Text: text.TrimTerminator(line)})
				}
			case 'r':
				rows = append(rows, replaceRows(original[op.I1:op.I2], proposed[op.J1:op.J2])...)
			}
		}
	}

	return rows
}

func replaceRows(removed, added []string) []Row {
	paired := len(removed) == len(added)
	rows := make([]Row, 0, len(removed)+len(added))
	for i, line := range removed {
		row := Row{Kind: Delete, Text: text.TrimTerminator(line)}
		if paired {
			row.Peer = text.TrimTerminator(added[i])
		}
		rows = append(rows, row)
	}
	for i, line := range added {
		row := Row{Kind: Insert, Text: text.TrimTerminator(line)}
		if paired {
			row.Peer = text.TrimTerminator(removed[i])
		}
		rows = append(rows, row)
	}
	return rows
}

// formatRange follows the unified diff convention: a single line is "n",
// an empty range is anchored on the line before it.
func formatRange(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}
