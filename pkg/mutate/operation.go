package mutate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/markfix/pkg/store"
	"github.com/walteh/markfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📝 Change is a proposed edit to one file
type Change struct {
	Path     string
	Original []string
	Proposed []string
	Count    int  // lines affected
	Remove   bool // the file is deleted instead of rewritten
}

// 🎯 Operation computes the change a mutation would make to a file
type Operation interface {
	// Description is the confirmation text without the target, e.g. "Replace 'a' with 'b'"
	Description() string
	// Prepare returns the change for path, or nil when the file needs none
	Prepare(ctx context.Context, fs store.FileStore, path string) (*Change, error)
	// Validate checks the operation's arguments
	Validate() error
}

// lineOperation rewrites a file with a text.Rule
type lineOperation struct {
	description string
	rule        text.Rule
}

func (o *lineOperation) Description() string {
	return o.description
}

func (o *lineOperation) Validate() error {
	return o.rule.Validate()
}

func (o *lineOperation) Prepare(ctx context.Context, fs store.FileStore, path string) (*Change, error) {
	content, err := fs.ReadFile(ctx, path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	lines := text.SplitLines(string(content))
	res := o.rule.Apply(lines)
	if !res.Changed {
		zerolog.Ctx(ctx).Trace().Str("path", path).Msg("no change proposed")
		return nil, nil
	}

	return &Change{
		Path:     path,
		Original: lines,
		Proposed: res.Lines,
		Count:    res.Count,
	}, nil
}

// 🗑️ removeFiles proposes deleting every file that still exists
type removeFiles struct{}

func (removeFiles) Description() string {
	return "Remove files"
}

func (removeFiles) Validate() error {
	return nil
}

func (removeFiles) Prepare(ctx context.Context, fs store.FileStore, path string) (*Change, error) {
	exists, err := fs.FileExists(ctx, path)
	if err != nil {
		return nil, errors.Errorf("checking %s: %w", path, err)
	}
	if !exists {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("file already gone")
		return nil, nil
	}
	return &Change{Path: path, Remove: true, Count: 1}, nil
}

// Replace substitutes every occurrence of old with new on every line
func Replace(old, new string) Operation {
	return &lineOperation{
		description: fmt.Sprintf("Replace '%s' with '%s'", old, new),
		rule:        text.SubstringReplace{Old: old, New: new},
	}
}

// RemoveKeyword deletes every occurrence of keyword
func RemoveKeyword(keyword string) Operation {
	return &lineOperation{
		description: fmt.Sprintf("Remove '%s'", keyword),
		rule:        text.SubstringReplace{Old: keyword},
	}
}

// AddKeyword inserts keyword as its own line before each line accepted by
// when. A nil when accepts every line.
func AddKeyword(keyword string, when func(line string) bool) Operation {
	return &lineOperation{
		description: fmt.Sprintf("Add '%s'", keyword),
		rule:        text.KeywordAdd{Keyword: keyword, When: when},
	}
}

// RemoveLines drops every line containing keyword, ignoring case
func RemoveLines(keyword string) Operation {
	return &lineOperation{
		description: fmt.Sprintf("Remove lines containing '%s'", keyword),
		rule:        text.LineRemove{Keyword: keyword},
	}
}

// ReplaceLines swaps every line containing old (ignoring case) for line
func ReplaceLines(old, line string) Operation {
	return &lineOperation{
		description: fmt.Sprintf("Replace lines containing '%s'", old),
		rule:        text.LineReplace{Match: old, Line: line},
	}
}

// AddAfter inserts line after each line containing match
func AddAfter(match, line string, firstOnly bool) Operation {
	return insert(match, line, text.After, firstOnly)
}

// AddBefore inserts line before each line containing match
func AddBefore(match, line string, firstOnly bool) Operation {
	return insert(match, line, text.Before, firstOnly)
}

func insert(match, line string, pos text.Position, firstOnly bool) Operation {
	return &lineOperation{
		description: fmt.Sprintf("Add line %s '%s'", pos, match),
		rule:        text.Insert{Match: match, Line: line, Position: pos, FirstOnly: firstOnly},
	}
}

// RemoveFiles deletes each file
func RemoveFiles() Operation {
	return removeFiles{}
}
