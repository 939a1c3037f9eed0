package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/markfix/cmd/markfix/commands"
	"github.com/walteh/markfix/cmd/markfix/opts"
)

// newRootCmd builds the command tree around a fresh set of options
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	find := commands.NewFindCmd(o)

	rootCmd := &cobra.Command{
		Use:   "markfix",
		Short: "Find files by keyword and edit them with a preview and confirmation",
		Long: `markfix finds files whose content holds every given keyword and none of the
excluded ones, then applies one text change to all of them. Every change is
shown as a diff first and only written after confirmation, per file or once
for the whole batch.

Without a subcommand markfix behaves like "find".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd, o.Debug)
			return nil
		},
		RunE: find.RunE,
	}

	o.AddFlags(rootCmd)

	rootCmd.AddCommand(
		find,
		commands.NewReplaceCmd(o),
		commands.NewRemoveCmd(o),
		commands.NewAddCmd(o),
		commands.NewRemoveLinesCmd(o),
		commands.NewReplaceLinesCmd(o),
		commands.NewAddAfterCmd(o),
		commands.NewAddBeforeCmd(o),
		commands.NewRemoveFilesCmd(o),
	)

	return rootCmd
}

// setupLogging puts a zerolog logger in the command context. Structured
// logs are for debugging only; user output goes through pkg/log.
func setupLogging(cmd *cobra.Command, debug bool) {
	level := zerolog.Disabled
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("command", cmd.Name()).
		Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))
}
