package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/markfix/cmd/markfix/opts"
	"github.com/walteh/markfix/pkg/mutate"
	"github.com/walteh/markfix/pkg/text"
)

// NewReplaceCmd creates a new replace command
func NewReplaceCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "replace OLD NEW",
		Short: "Replace text in every matched file",
		Example: `  # Swap a decorator, confirming each file
  markfix replace -p . -k "@old_decorator" "@old_decorator" "@new_decorator"

  # Preview only
  markfix replace -p . -k "@old" "@old" "@new" --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, mutate.Replace(args[0], args[1]))
		},
	}
}

// NewRemoveCmd creates a new remove command
func NewRemoveCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "remove KEYWORD",
		Short: "Remove a keyword wherever it appears",
		Example: `  # Drop a marker from every matched file at once
  markfix remove -p . -k "@pytest.mark.flaky" "@pytest.mark.flaky" --bulk-confirm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, mutate.RemoveKeyword(args[0]))
		},
	}
}

// NewAddCmd creates a new add command
func NewAddCmd(opts *opts.RootOpts) *cobra.Command {
	var when string

	cmd := &cobra.Command{
		Use:   "add KEYWORD",
		Short: "Add a keyword line before matching lines",
		Long: `Add inserts KEYWORD as its own line before every line of each matched file,
or only before lines containing --when (ignoring case).`,
		Example: `  # Mark every test function as slow
  markfix add -p . -k pytest "@pytest.mark.slow" --when "def test_"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pred func(string) bool
			if when != "" {
				pred = text.ContainsFoldFunc(when)
			}
			return run(cmd, opts, mutate.AddKeyword(args[0], pred))
		},
	}

	cmd.Flags().StringVar(&when, "when", "", "only add before lines containing this text")

	return cmd
}

// NewRemoveLinesCmd creates a new remove-lines command
func NewRemoveLinesCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-lines KEYWORD",
		Short: "Remove whole lines containing a keyword",
		Example: `  # Delete deprecated imports
  markfix remove-lines -p . -k deprecated "import deprecated"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, mutate.RemoveLines(args[0]))
		},
	}
}

// NewReplaceLinesCmd creates a new replace-lines command
func NewReplaceLinesCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "replace-lines OLD NEW",
		Short: "Replace whole lines containing a keyword",
		Example: `  # Rewrite the import line
  markfix replace-lines -p . -k "import old" "import old" "from new import thing"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, mutate.ReplaceLines(args[0], args[1]))
		},
	}
}

// NewAddAfterCmd creates a new add-after command
func NewAddAfterCmd(opts *opts.RootOpts) *cobra.Command {
	return newInsertCmd(opts, text.After)
}

// NewAddBeforeCmd creates a new add-before command
func NewAddBeforeCmd(opts *opts.RootOpts) *cobra.Command {
	return newInsertCmd(opts, text.Before)
}

func newInsertCmd(opts *opts.RootOpts, pos text.Position) *cobra.Command {
	var firstOnly bool

	cmd := &cobra.Command{
		Use:   "add-" + pos.String() + " MATCH LINE",
		Short: "Add a line " + pos.String() + " lines containing MATCH",
		Example: `  # Add an import after the first pytest import
  markfix add-after -p . -k pytest "import pytest" "import mock" --first-only

  # Add a marker before every test function
  markfix add-before -p . -k "def test_" "def test_" "@pytest.mark.unit"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := mutate.AddAfter(args[0], args[1], firstOnly)
			if pos == text.Before {
				op = mutate.AddBefore(args[0], args[1], firstOnly)
			}
			return run(cmd, opts, op)
		},
	}

	cmd.Flags().BoolVar(&firstOnly, "first-only", false, "only insert next to the first match in each file")

	return cmd
}

// NewRemoveFilesCmd creates a new remove-files command
func NewRemoveFilesCmd(opts *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-files",
		Short: "Delete every matched file",
		Example: `  # Delete obsolete test files, keeping a .bak copy
  markfix remove-files -p . -k "obsolete" --backup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, mutate.RemoveFiles())
		},
	}
}
