package diff

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/markfix/pkg/text"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		original string
		proposed string
		context  int
		want     []string
	}{
		{
			name:     "identical",
			original: "a\nb\n",
			proposed: "a\nb\n",
			context:  2,
			want:     nil,
		},
		{
			name:     "single_line_replaced",
			original: "a\nb\nc\n",
			proposed: "a\nx\nc\n",
			context:  2,
			want:     []string{"@@ -1,3 +1,3 @@", " a", "-b", "+x", " c"},
		},
		{
			name:     "insertions",
			original: "line one\nmatch here\nline three\nmatch here\n",
			proposed: "line one\nmatch here\ninserted line\nline three\nmatch here\ninserted line\n",
			context:  2,
			want: []string{
				"@@ -1,4 +1,6 @@",
				" line one",
				" match here",
				"+inserted line",
				" line three",
				" match here",
				"+inserted line",
			},
		},
		{
			name:     "deletion",
			original: "keep\nremove this\nkeep\n",
			proposed: "keep\nkeep\n",
			context:  2,
			want:     []string{"@@ -1,3 +1,2 @@", " keep", "-remove this", " keep"},
		},
		{
			name:     "context_limits_hunk",
			original: "1\n2\n3\n4\n5\n6\n7\n",
			proposed: "1\n2\n3\nX\n5\n6\n7\n",
			context:  1,
			want:     []string{"@@ -3,3 +3,3 @@", " 3", "-4", "+X", " 5"},
		},
		{
			name:     "zero_context",
			original: "a\nb\n",
			proposed: "a\nb\nc\n",
			context:  0,
			want:     []string{"@@ -2,0 +3 @@", "+c"},
		},
		{
			name:     "separate_hunks",
			original: "1\n2\n3\n4\n5\n6\n7\n8\n9\n",
			proposed: "X\n2\n3\n4\n5\n6\n7\n8\nY\n",
			context:  1,
			want: []string{
				"@@ -1,2 +1,2 @@", "-1", "+X", " 2",
				"@@ -8,2 +8,2 @@", " 8", "-9", "+Y",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Compute(text.SplitLines(tt.original), text.SplitLines(tt.proposed), tt.context)

			var got []string
			for _, row := range rows {
				got = append(got, row.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputePeers(t *testing.T) {
	rows := Compute([]string{"a\n", "@old mark\n"}, []string{"a\n", "@new mark\n"}, 2)
	require.Len(t, rows, 4)

	assert.Equal(t, Delete, rows[2].Kind)
	assert.Equal(t, "@new mark", rows[2].Peer, "deleted row should point at its replacement")
	assert.Equal(t, Insert, rows[3].Kind)
	assert.Equal(t, "@old mark", rows[3].Peer, "inserted row should point at the line it replaced")

	unpaired := Compute([]string{"a\n"}, []string{"b\n", "c\n"}, 2)
	for _, row := range unpaired {
		assert.Empty(t, row.Peer, "uneven replacement should not pair rows")
	}
}

func TestRenderers(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	rows := Compute(text.SplitLines("a\n@old\n"), text.SplitLines("a\n@new\n"), 2)
	want := "@@ -1,2 +1,2 @@\n a\n-@old\n+@new\n"

	tests := []struct {
		name     string
		renderer Renderer
	}{
		{name: "plain", renderer: PlainRenderer{}},
		{name: "color", renderer: ColorRenderer{}},
		{name: "color_with_emphasis", renderer: ColorRenderer{Emphasis: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			require.NoError(t, tt.renderer.Render(buf, rows))
			assert.Equal(t, want, buf.String())
		})
	}
}

func TestColorRendererDistinguishesKinds(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = noColor }()

	rows := []Row{
		{Kind: Hunk, Text: "@@ -1 +1 @@"},
		{Kind: Context, Text: "same"},
		{Kind: Delete, Text: "old"},
		{Kind: Insert, Text: "new"},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, ColorRenderer{}.Render(buf, rows))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, " same", lines[1], "context rows stay uncolored")
	assert.Contains(t, lines[2], "\x1b[31m", "deletions should be red")
	assert.Contains(t, lines[3], "\x1b[32m", "insertions should be green")
	assert.NotEqual(t, lines[2], lines[3])
}
