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

package mutate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/markfix/pkg/confirm"
	"github.com/walteh/markfix/pkg/diff"
	"github.com/walteh/markfix/pkg/log"
	"github.com/walteh/markfix/pkg/store"
	"github.com/walteh/markfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🚦 Mode selects how pending changes are confirmed
type Mode int

const (
	PerFileConfirm Mode = iota
	BulkConfirm
	DryRun
)

// String returns a string representation of Mode
func (m Mode) String() string {
	switch m {
	case DryRun:
		return "dry-run"
	case BulkConfirm:
		return "bulk"
	default:
		return "per-file"
	}
}

// ModeFor maps the command line flags to a Mode. Dry-run wins over bulk.
func ModeFor(dryRun, bulk bool) Mode {
	if dryRun {
		return DryRun
	}
	if bulk {
		return BulkConfirm
	}
	return PerFileConfirm
}

// 📊 Result counts what happened during a run
type Result struct {
	Pending  int              // files with a proposed change
	Modified int              // files written or removed
	Skipped  int              // files declined by the user
	Failed   int              // files whose write failed
	Files    []log.FileChange // per file outcome, in order
}

// 🔧 Options configures a Driver
type Options struct {
	// Store reads and writes files
	Store store.FileStore
	// Gate answers confirmation prompts
	Gate confirm.Gate
	// Logger receives all user facing output
	Logger *log.Logger
	// Renderer draws the diff preview; nil means diff.PlainRenderer
	Renderer diff.Renderer
	// ContextLines around each change in the preview; negative means diff.DefaultContext
	ContextLines int
	// Mode selects dry-run, bulk or per-file confirmation
	Mode Mode
}

// 🏃 Driver runs operations with the shared preview and confirmation protocol
type Driver struct {
	store        store.FileStore
	gate         confirm.Gate
	logger       *log.Logger
	renderer     diff.Renderer
	contextLines int
	mode         Mode
}

// 🏭 New creates a driver with the given options
func New(opts Options) (*Driver, error) {
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	if opts.Gate == nil {
		return nil, errors.Errorf("confirmation gate is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Renderer == nil {
		opts.Renderer = diff.PlainRenderer{}
	}
	if opts.ContextLines < 0 {
		opts.ContextLines = diff.DefaultContext
	}
	return &Driver{
		store:        opts.Store,
		gate:         opts.Gate,
		logger:       opts.Logger,
		renderer:     opts.Renderer,
		contextLines: opts.ContextLines,
		mode:         opts.Mode,
	}, nil
}

// Run applies op to paths in order. Per-file problems are logged and counted;
// only an invalid operation or an already cancelled context is an error.
func (d *Driver) Run(ctx context.Context, paths []string, op Operation) (Result, error) {
	if op == nil {
		return Result{}, errors.Errorf("operation is required")
	}
	if err := op.Validate(); err != nil {
		return Result{}, errors.Errorf("invalid operation: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, errors.Errorf("run cancelled: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("operation", op.Description()).
		Str("mode", d.mode.String()).
		Int("files", len(paths)).
		Msg("running operation")

	changes := d.prepare(ctx, paths, op)
	if len(changes) == 0 {
		d.logger.Println("No changes needed.")
		return Result{}, nil
	}

	d.preview(ctx, changes)

	result := Result{Pending: len(changes)}
	switch d.mode {
	case DryRun:
		for _, c := range changes {
			verb := "update"
			if c.Remove {
				verb = "remove"
			}
			d.logger.Printf("[Dry-run] Would %s %s", verb, c.Path)
			result.record(c, log.ActionDryRun, nil)
		}

	case BulkConfirm:
		description := fmt.Sprintf("%s in %d files", op.Description(), len(changes))
		if !d.gate.Confirm(ctx, description) {
			d.logger.Println("Skipped (user canceled bulk operation)")
			for _, c := range changes {
				result.record(c, log.ActionSkipped, nil)
			}
			return result, nil
		}
		for _, c := range changes {
			d.apply(ctx, c, &result)
		}

	default:
		d.logger.LogNewline()
		d.logger.Println("Processing files individually...")
		for _, c := range changes {
			if !d.gate.Confirm(ctx, fmt.Sprintf("%s in %s", op.Description(), c.Path)) {
				d.logger.Printf("Skipped %s", c.Path)
				result.record(c, log.ActionSkipped, nil)
				continue
			}
			d.apply(ctx, c, &result)
		}
	}

	return result, nil
}

// prepare collects the changes op proposes, skipping files it cannot read
func (d *Driver) prepare(ctx context.Context, paths []string, op Operation) []*Change {
	changes := make([]*Change, 0, len(paths))
	for _, path := range paths {
		c, err := op.Prepare(ctx, d.store, path)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("prepare failed")
			d.logger.Errorf("Error processing %s: %v", path, err)
			continue
		}
		if c != nil {
			changes = append(changes, c)
		}
	}
	return changes
}

// preview prints every pending change
func (d *Driver) preview(ctx context.Context, changes []*Change) {
	d.logger.LogNewline()
	d.logger.Printf("Found %d files that would be modified:", len(changes))
	for _, c := range changes {
		d.logger.LogNewline()
		d.logger.Printf("File: %s", c.Path)
		if c.Remove {
			d.logger.Printf("Will remove %s", c.Path)
			continue
		}
		d.logger.Println("Changes to be made:")
		rows := diff.Compute(c.Original, c.Proposed, d.contextLines)
		if err := d.renderer.Render(d.logger.Console(), rows); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("path", c.Path).Msg("rendering diff")
		}
	}
}

// apply writes or removes one file and records the outcome
func (d *Driver) apply(ctx context.Context, c *Change, result *Result) {
	if c.Remove {
		if err := d.store.DeleteFile(ctx, c.Path); err != nil {
			d.logger.Errorf("Error updating %s: %v", c.Path, err)
			result.record(c, log.ActionFailed, err)
			return
		}
		d.logger.Printf("Removed %s", c.Path)
		result.record(c, log.ActionRemoved, nil)
		return
	}

	if err := d.store.WriteFile(ctx, c.Path, []byte(text.JoinLines(c.Proposed))); err != nil {
		d.logger.Errorf("Error updating %s: %v", c.Path, err)
		d.restore(ctx, c)
		result.record(c, log.ActionFailed, err)
		return
	}
	d.logger.Printf("Updated %s", c.Path)
	result.record(c, log.ActionUpdated, nil)
}

// restore puts the backup back when a failed write left the file changed
func (d *Driver) restore(ctx context.Context, c *Change) {
	r, ok := d.store.(store.Restorer)
	if !ok {
		return
	}
	current, err := d.store.ReadFile(ctx, c.Path)
	if err == nil && string(current) == text.JoinLines(c.Original) {
		return
	}
	if err := r.RestoreFile(ctx, c.Path); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", c.Path).Msg("restore skipped")
		return
	}
	d.logger.Printf("Restored %s from backup", c.Path)
}

func (r *Result) record(c *Change, action log.Action, err error) {
	switch action {
	case log.ActionUpdated, log.ActionRemoved:
		r.Modified++
	case log.ActionSkipped:
		r.Skipped++
	case log.ActionFailed:
		r.Failed++
	}
	r.Files = append(r.Files, log.FileChange{
		Path:   c.Path,
		Action: action,
		Count:  c.Count,
		Err:    err,
	})
}
