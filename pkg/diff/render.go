package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"
)

// 🎨 Renderer writes diff rows for a human to read
type Renderer interface {
	Render(w io.Writer, rows []Row) error
}

// PlainRenderer writes rows with their unified diff markers only
type PlainRenderer struct{}

// Render implements Renderer.Render
func (PlainRenderer) Render(w io.Writer, rows []Row) error {
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return errors.Errorf("writing diff row: %w", err)
		}
	}
	return nil
}

// ColorRenderer colors insertions green, deletions red and hunk headers cyan.
// With Emphasis, the changed span of a one-for-one replaced line is
// underlined inside its row.
type ColorRenderer struct {
	Emphasis bool
}

var (
	insertColor   = color.New(color.FgGreen)
	deleteColor   = color.New(color.FgRed)
	hunkColor     = color.New(color.FgCyan)
	insertEmColor = color.New(color.FgGreen, color.Bold, color.Underline)
	deleteEmColor = color.New(color.FgRed, color.Bold, color.Underline)
)

// Render implements Renderer.Render
func (r ColorRenderer) Render(w io.Writer, rows []Row) error {
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, r.format(row)); err != nil {
			return errors.Errorf("writing diff row: %w", err)
		}
	}
	return nil
}

func (r ColorRenderer) format(row Row) string {
	switch row.Kind {
	case Hunk:
		return hunkColor.Sprint(row.Text)
	case Insert:
		if r.Emphasis && row.Peer != "" {
			return insertColor.Sprint("+") + emphasize(row.Peer, row.Text, diffmatchpatch.DiffInsert, insertColor, insertEmColor)
		}
		return insertColor.Sprint(row.String())
	case Delete:
		if r.Emphasis && row.Peer != "" {
			return deleteColor.Sprint("-") + emphasize(row.Text, row.Peer, diffmatchpatch.DiffDelete, deleteColor, deleteEmColor)
		}
		return deleteColor.Sprint(row.String())
	default:
		return row.String()
	}
}

// emphasize renders one side of a character diff between from and to.
// keep selects which side is being drawn.
func emphasize(from, to string, keep diffmatchpatch.Operation, base, em *color.Color) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(base.Sprint(d.Text))
		case keep:
			b.WriteString(em.Sprint(d.Text))
		}
	}
	return b.String()
}
