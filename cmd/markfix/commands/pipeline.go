package commands

import (
	"context"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/markfix/cmd/markfix/opts"
	"github.com/walteh/markfix/pkg/config"
	"github.com/walteh/markfix/pkg/confirm"
	"github.com/walteh/markfix/pkg/diff"
	"github.com/walteh/markfix/pkg/log"
	"github.com/walteh/markfix/pkg/mutate"
	"github.com/walteh/markfix/pkg/report"
	"github.com/walteh/markfix/pkg/scan"
	"github.com/walteh/markfix/pkg/store"
	"gitlab.com/tozd/go/errors"
)

// run scans, reports the matches and then applies op to them. A nil op only reports.
func run(cmd *cobra.Command, o *opts.RootOpts, op mutate.Operation) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := o.Resolve(ctx, cmd)
	if err != nil {
		return err
	}

	if o.NoColor {
		color.NoColor = true
		pterm.DisableColor()
	}

	ctx = log.NewContext(ctx, log.New(out, *zerolog.Ctx(ctx)))
	fs := store.New(cfg.Backup)

	set, err := find(ctx, fs, o, cfg)
	if err != nil {
		return err
	}

	if op == nil || set.Len() == 0 {
		return nil
	}

	return apply(ctx, cmd, fs, o, cfg, set, op)
}

// find scans the tree and prints the matches in the requested format
func find(ctx context.Context, fs store.FileStore, o *opts.RootOpts, cfg *config.Config) (*scan.MatchSet, error) {
	logger := log.FromContext(ctx)

	set, err := scan.New(fs, logger).Scan(ctx, scan.Config{
		Root:     cfg.Path,
		Keywords: cfg.Keywords,
		Exclude:  cfg.Exclude,
		Filter:   cfg.Filter(),
	})
	if err != nil {
		return nil, errors.Errorf("scanning: %w", err)
	}

	rep := report.New(logger.Console())
	switch {
	case o.Table:
		rep.PrintTable(set)
	case o.PathOutput():
		err := rep.WritePaths(set, report.PathOptions{
			OutputFile: o.Output,
			Trim:       o.TrimPaths,
			Marker:     cfg.TrimMarker,
			SingleLine: o.SingleLine,
		})
		if err != nil {
			return nil, err
		}
	default:
		rep.PrintMatches(set)
	}

	return set, nil
}

// apply runs op over the matched files and prints the recap
func apply(ctx context.Context, cmd *cobra.Command, fs store.FileStore, o *opts.RootOpts, cfg *config.Config, set *scan.MatchSet, op mutate.Operation) error {
	logger := log.FromContext(ctx)

	var renderer diff.Renderer = diff.ColorRenderer{Emphasis: true}
	if o.NoColor {
		renderer = diff.PlainRenderer{}
	}

	driver, err := mutate.New(mutate.Options{
		Store:        fs,
		Gate:         confirm.NewConsole(cmd.InOrStdin(), logger.Console()),
		Logger:       logger,
		Renderer:     renderer,
		ContextLines: cfg.Context(),
		Mode:         mutate.ModeFor(o.DryRun, o.BulkConfirm),
	})
	if err != nil {
		return errors.Errorf("creating driver: %w", err)
	}

	result, err := driver.Run(ctx, set.Paths(), op)
	if err != nil {
		return errors.Errorf("running %s: %w", op.Description(), err)
	}

	if len(result.Files) > 0 {
		logger.Header(op.Description())
		for _, f := range result.Files {
			logger.LogFileChange(ctx, f)
		}
	}
	report.New(logger.Console()).Summary(result)

	switch {
	case result.Failed > 0:
		logger.Warningf("%d files could not be updated", result.Failed)
	case o.DryRun && result.Pending > 0:
		logger.Infof("Dry run: %d files would change, nothing was written", result.Pending)
	case result.Modified > 0:
		logger.Successf("%d files updated", result.Modified)
	}

	return nil
}
