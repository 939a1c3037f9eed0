package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/markfix/cmd/markfix/opts"
)

// NewFindCmd creates a new find command
func NewFindCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find",
		Short: "List files containing every keyword",
		Long: `Find walks --path and lists each file whose content holds every --keywords
entry and no --not entry, ignoring case, together with the matching lines.`,
		Example: `  # Find test files using pytest
  markfix find -p ./project -k pytest

  # Exclude files that already use a marker
  markfix find -p . -k pytest --not "@pytest.mark.slow"

  # Save the matched paths, trimmed to tests/, on one line
  markfix find -p . -k pytest --trim-paths --single-line -o matches.txt

  # Summarise as a table
  markfix find -p . -k pytest --table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, nil)
		},
	}

	return cmd
}
