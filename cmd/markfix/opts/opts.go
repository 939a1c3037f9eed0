package opts

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/walteh/markfix/pkg/config"
	"github.com/walteh/markfix/pkg/diff"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile  string
	Debug       bool
	Path        string
	Keywords    []string
	Exclude     []string
	DryRun      bool
	BulkConfirm bool
	Output      string
	TrimPaths   bool
	TrimMarker  string
	SingleLine  bool
	Table       bool
	Context     int
	NoColor     bool
	Backup      bool
}

// AddFlags registers the persistent flags on the root command
func (o *RootOpts) AddFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&o.ConfigFile, "config", "c", config.DefaultFile, "config file path")
	f.BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	f.StringVarP(&o.Path, "path", "p", "", "directory to search")
	f.StringArrayVarP(&o.Keywords, "keywords", "k", nil, "keyword that must appear in a file (repeatable)")
	f.StringArrayVar(&o.Exclude, "not", nil, "keyword that must not appear in a file (repeatable)")
	f.BoolVar(&o.DryRun, "dry-run", false, "preview changes without writing")
	f.BoolVar(&o.BulkConfirm, "bulk-confirm", false, "confirm all changes with a single prompt")
	f.StringVarP(&o.Output, "output", "o", "", "save matched paths to this file")
	f.BoolVar(&o.TrimPaths, "trim-paths", false, "keep only the part of each path from the trim marker onwards")
	f.StringVar(&o.TrimMarker, "trim-marker", "", "path segment used by --trim-paths (default \"tests/\")")
	f.BoolVar(&o.SingleLine, "single-line", false, "print matched paths on one line")
	f.BoolVar(&o.Table, "table", false, "print matches as a table")
	f.IntVar(&o.Context, "context", diff.DefaultContext, "context lines around each change in the preview")
	f.BoolVar(&o.NoColor, "no-color", false, "disable colored output")
	f.BoolVar(&o.Backup, "backup", false, "copy each file to <file>.bak before changing it")
}

// PathOutput reports whether matches should be printed as a bare path list
func (o *RootOpts) PathOutput() bool {
	return o.Output != "" || o.TrimPaths || o.SingleLine
}

// Resolve loads the config file and lays the flags that were set on top of it
func (o *RootOpts) Resolve(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(ctx, o.ConfigFile)
	} else {
		cfg, err = config.LoadOrDefault(ctx, o.ConfigFile)
	}
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("path") {
		cfg.Path = o.Path
	}
	if flags.Changed("keywords") {
		cfg.Keywords = o.Keywords
	}
	if flags.Changed("not") {
		cfg.Exclude = o.Exclude
	}
	if flags.Changed("trim-marker") {
		cfg.TrimMarker = o.TrimMarker
	}
	if flags.Changed("context") {
		n := o.Context
		cfg.ContextLines = &n
	}
	if flags.Changed("backup") {
		cfg.Backup = o.Backup
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}

	if cfg.Path == "" || len(cfg.Keywords) == 0 {
		return nil, errors.New("--path and --keywords are required (directly or through the config file)")
	}

	return cfg, nil
}
