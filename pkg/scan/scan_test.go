package scan

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/markfix/pkg/log"
	"github.com/walteh/markfix/pkg/store"
)

func setupScanner(t *testing.T) (*Scanner, *bytes.Buffer, context.Context) {
	t.Helper()
	color.NoColor = true
	zlog := zerolog.New(zerolog.NewTestWriter(t))
	var buf bytes.Buffer
	logger := log.New(&buf, zlog)
	ctx := zlog.WithContext(context.Background())
	return New(store.New(false), logger), &buf, ctx
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestTestFileFilter(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		rel        string
		want       bool
	}{
		{name: "default_test_prefix", rel: "tests/test_a.py", want: true},
		{name: "default_test_suffix", rel: "pkg/a_test.py", want: true},
		{name: "upper_case_name", rel: "TestThing.PY", want: true},
		{name: "no_test_in_name", rel: "tests/helpers.py", want: false},
		{name: "test_only_in_directory", rel: "test/helpers.py", want: false},
		{name: "wrong_extension", rel: "test_a.txt", want: false},
		{name: "custom_extension", extensions: []string{"go"}, rel: "a_test.go", want: true},
		{name: "custom_extension_rejects_default", extensions: []string{".go"}, rel: "test_a.py", want: false},
		{name: "multiple_extensions", extensions: []string{".py", ".pyi"}, rel: "test_a.pyi", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TestFileFilter(tt.extensions...).Accept(tt.rel))
		})
	}
}

func TestGlobFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter GlobFilter
		rel    string
		want   bool
	}{
		{name: "empty_accepts_all", filter: GlobFilter{}, rel: "a/b.txt", want: true},
		{name: "include_match", filter: GlobFilter{Include: []string{"**/*.md"}}, rel: "docs/x/readme.md", want: true},
		{name: "include_miss", filter: GlobFilter{Include: []string{"**/*.md"}}, rel: "docs/readme.txt", want: false},
		{name: "ignore_wins", filter: GlobFilter{Include: []string{"**/*.py"}, Ignore: []string{"vendor/**"}}, rel: "vendor/test_a.py", want: false},
		{name: "ignore_other", filter: GlobFilter{Ignore: []string{"vendor/**"}}, rel: "src/test_a.py", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Accept(tt.rel))
		})
	}
}

func TestGlobFilterValidate(t *testing.T) {
	assert.NoError(t, GlobFilter{Include: []string{"**/*.py"}}.Validate())

	err := GlobFilter{Ignore: []string{"[unclosed"}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob pattern")
}

func TestAllOf(t *testing.T) {
	f := AllOf(TestFileFilter(), GlobFilter{Ignore: []string{"skip/**"}}, nil)
	assert.True(t, f.Accept("keep/test_a.py"))
	assert.False(t, f.Accept("skip/test_a.py"))
	assert.False(t, f.Accept("keep/a.py"))
}

func TestConfigMatches(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		exclude  []string
		content  string
		want     bool
	}{
		{name: "single_keyword", keywords: []string{"TODO"}, content: "# todo: fix\n", want: true},
		{name: "all_keywords_required", keywords: []string{"alpha", "beta"}, content: "alpha\n", want: false},
		{name: "keywords_on_different_lines", keywords: []string{"alpha", "beta"}, content: "alpha\nbeta\n", want: true},
		{name: "excluded_keyword", keywords: []string{"alpha"}, exclude: []string{"skip"}, content: "alpha\nSKIP\n", want: false},
		{name: "exclude_absent", keywords: []string{"alpha"}, exclude: []string{"skip"}, content: "alpha\n", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Root: t.TempDir(), Keywords: tt.keywords, Exclude: tt.exclude}
			require.NoError(t, cfg.Validate())
			assert.Equal(t, tt.want, cfg.Matches(tt.content))
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "missing_root", cfg: Config{Keywords: []string{"a"}}, wantErr: "search path is required"},
		{name: "missing_keywords", cfg: Config{Root: "."}, wantErr: "at least one keyword is required"},
		{name: "only_empty_keywords", cfg: Config{Root: ".", Keywords: []string{""}}, wantErr: "at least one keyword is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	cfg := Config{Root: ".", Keywords: []string{"Alpha"}, Exclude: []string{"BETA"}}
	require.NoError(t, cfg.Validate())
	assert.True(t, filepath.IsAbs(cfg.Root))
	assert.Equal(t, []string{"alpha"}, cfg.Keywords)
	assert.Equal(t, []string{"beta"}, cfg.Exclude)
	assert.NotNil(t, cfg.Filter)
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"tests/test_b.py":        "import pytest\n\n@pytest.mark.slow\ndef test_b():\n    pass\n",
		"tests/test_a.py":        "import pytest\n  @PYTEST.mark.skip  \ndef test_a(): pass\n",
		"tests/test_excluded.py": "import pytest\n# legacy\n",
		"tests/helpers.py":       "import pytest\n",
		"tests/sub/test_c.py":    "import pytest\n",
		"tests/test_none.py":     "def test_none(): pass\n",
	})

	s, buf, ctx := setupScanner(t)
	set, err := s.Scan(ctx, Config{
		Root:     root,
		Keywords: []string{"pytest"},
		Exclude:  []string{"LEGACY"},
	})
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "tests", "sub", "test_c.py"),
		filepath.Join(root, "tests", "test_a.py"),
		filepath.Join(root, "tests", "test_b.py"),
	}
	assert.Equal(t, want, set.Paths(), "lexical walk order expected")
	assert.Equal(t, 3, set.Len())
	assert.False(t, set.Contains(filepath.Join(root, "tests", "helpers.py")))
	assert.False(t, set.Contains(filepath.Join(root, "tests", "test_excluded.py")))

	assert.Equal(t, []Match{
		{Line: 1, Text: "import pytest"},
		{Line: 2, Text: "@PYTEST.mark.skip"},
	}, set.Lines(want[1]))
	assert.Equal(t, []Match{
		{Line: 1, Text: "import pytest"},
		{Line: 3, Text: "@pytest.mark.slow"},
	}, set.Lines(want[2]))
	assert.Equal(t, 5, set.Total())

	assert.Contains(t, buf.String(), "Searching in: "+root)
	assert.Contains(t, buf.String(), "Looking for keywords: ['pytest']")
	assert.Contains(t, buf.String(), "Excluding keywords: ['legacy']")
}

func TestScanRecordsOnlyLinesWithKeywords(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"test_a.py": "alpha\nnothing here\nbeta\n",
	})

	s, _, ctx := setupScanner(t)
	set, err := s.Scan(ctx, Config{Root: root, Keywords: []string{"alpha", "beta"}})
	require.NoError(t, err)

	path := filepath.Join(root, "test_a.py")
	assert.Equal(t, []Match{{Line: 1, Text: "alpha"}, {Line: 3, Text: "beta"}}, set.Lines(path))
}

func TestScanKeywordSpanningLines(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"test_a.py": "foo\nbar\n",
	})

	s, _, ctx := setupScanner(t)
	set, err := s.Scan(ctx, Config{Root: root, Keywords: []string{"foo\nbar"}})
	require.NoError(t, err)

	path := filepath.Join(root, "test_a.py")
	assert.True(t, set.Contains(path), "file passes the content test")
	assert.Empty(t, set.Lines(path), "no single line holds the keyword")
}

func TestScanSkipsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"test_good.py": "needle\n",
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, "test_bin.py"), []byte{'n', 'e', 'e', 'd', 'l', 'e', 0xff}, 0o644))

	s, buf, ctx := setupScanner(t)
	set, err := s.Scan(ctx, Config{Root: root, Keywords: []string{"needle"}})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "test_good.py")}, set.Paths())
	assert.Contains(t, buf.String(), "Error reading "+filepath.Join(root, "test_bin.py"))
}

func TestScanWithGlobFilter(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"docs/guide.md":      "needle\n",
		"docs/draft/wip.md":  "needle\n",
		"src/test_needle.py": "needle\n",
	})

	s, _, ctx := setupScanner(t)
	set, err := s.Scan(ctx, Config{
		Root:     root,
		Keywords: []string{"needle"},
		Filter:   GlobFilter{Include: []string{"**/*.md"}, Ignore: []string{"docs/draft/**"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "docs", "guide.md")}, set.Paths())
}

func TestScanInvocationErrors(t *testing.T) {
	s, _, ctx := setupScanner(t)

	_, err := s.Scan(ctx, Config{Root: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one keyword is required")

	_, err = s.Scan(ctx, Config{Root: filepath.Join(t.TempDir(), "missing"), Keywords: []string{"x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading search path")

	file := filepath.Join(t.TempDir(), "test_a.py")
	require.NoError(t, os.WriteFile(file, []byte("x\n"), 0o644))
	_, err = s.Scan(ctx, Config{Root: file, Keywords: []string{"x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestMatchSet(t *testing.T) {
	var empty *MatchSet
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Paths())

	set := NewMatchSet()
	set.Add("b", Match{Line: 1, Text: "x"})
	set.Add("a")
	set.Add("b", Match{Line: 4, Text: "y"})

	assert.Equal(t, []string{"b", "a"}, set.Paths())
	assert.Equal(t, []Match{{Line: 1, Text: "x"}, {Line: 4, Text: "y"}}, set.Lines("b"))
	assert.Empty(t, set.Lines("a"))
	assert.Equal(t, 2, set.Total())

	paths := set.Paths()
	paths[0] = "mutated"
	assert.Equal(t, "b", set.Paths()[0], "Paths returns a copy")
}
