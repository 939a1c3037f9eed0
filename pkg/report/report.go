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

// Package report prints scan matches and mutation outcomes.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/walteh/markfix/pkg/mutate"
	"github.com/walteh/markfix/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// 📋 PathOptions controls WritePaths
type PathOptions struct {
	OutputFile string // write the list here instead of w
	Trim       bool   // keep only the part from Marker onwards
	Marker     string // defaults to DefaultMarker
	SingleLine bool   // space separated instead of one per line
}

// 📣 Reporter writes reports to w
type Reporter struct {
	w io.Writer
}

// 🏭 New creates a reporter writing to w
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// PrintMatches lists every file with its matched lines
func (r *Reporter) PrintMatches(set *scan.MatchSet) {
	if set.Len() == 0 {
		r.println("No matches found.")
		return
	}

	r.printf("\nFound %d files with matches:\n", set.Len())
	for _, path := range set.Paths() {
		r.printf("\n%s\n", path)
		for _, m := range set.Lines(path) {
			r.printf("Line %d: %s\n", m.Line, m.Text)
		}
	}
}

// PrintTable prints one row per file with its match count
func (r *Reporter) PrintTable(set *scan.MatchSet) {
	if set.Len() == 0 {
		r.println("No matches found.")
		return
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Path", "Matches"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, path := range set.Paths() {
		table.Append([]string{path, strconv.Itoa(len(set.Lines(path)))})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", set.Len()),
		strconv.Itoa(set.Total()),
	})

	table.Render()
	r.printf("\n%s", buf.String())
}

// WritePaths prints the matched paths, or saves them to opts.OutputFile
func (r *Reporter) WritePaths(set *scan.MatchSet, opts PathOptions) error {
	if set.Len() == 0 {
		r.println("No matches found.")
		return nil
	}

	paths := set.Paths()
	if opts.Trim {
		paths = TrimToMarker(paths, opts.Marker)
	}
	output := Join(paths, opts.SingleLine)

	if opts.OutputFile == "" {
		r.printf("Found %d files with matches:\n", set.Len())
		r.println(output)
		return nil
	}

	if err := os.WriteFile(opts.OutputFile, []byte(output), 0o644); err != nil {
		return errors.Errorf("writing output file: %w", err)
	}
	r.printf("Found %d files with matches. Output saved to %s\n", set.Len(), opts.OutputFile)
	return nil
}

// Summary prints the counts of a mutation run
func (r *Reporter) Summary(result mutate.Result) {
	r.printf("\nModified %d of %d files (%d skipped, %d failed)\n",
		result.Modified, result.Pending, result.Skipped, result.Failed)
}

func (r *Reporter) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}
