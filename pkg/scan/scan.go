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

// Package scan finds the files whose content carries every required keyword
// and none of the excluded ones.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/markfix/pkg/log"
	"github.com/walteh/markfix/pkg/store"
	"github.com/walteh/markfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📚 Config describes one scan
type Config struct {
	// Root is the directory to walk; made absolute by Validate
	Root string
	// Keywords must all appear in a file, ignoring case
	Keywords []string
	// Exclude must not appear in a file, ignoring case
	Exclude []string
	// Filter picks candidate files by path; nil means TestFileFilter()
	Filter Filter
}

// 🔍 Validate checks the config and normalises keywords to lower case
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return errors.New("search path is required")
	}

	c.Keywords = normalizeKeywords(c.Keywords)
	if len(c.Keywords) == 0 {
		return errors.New("at least one keyword is required")
	}
	c.Exclude = normalizeKeywords(c.Exclude)

	abs, err := filepath.Abs(c.Root)
	if err != nil {
		return errors.Errorf("resolving search path: %w", err)
	}
	c.Root = abs

	if c.Filter == nil {
		c.Filter = TestFileFilter()
	}
	return nil
}

// Matches reports whether content passes the keyword test.
// Keywords must already be lower case (see Validate).
func (c *Config) Matches(content string) bool {
	lower := strings.ToLower(content)
	for _, k := range c.Keywords {
		if !strings.Contains(lower, k) {
			return false
		}
	}
	for _, e := range c.Exclude {
		if strings.Contains(lower, e) {
			return false
		}
	}
	return true
}

// matchesLine reports whether a single line holds any keyword
func (c *Config) matchesLine(line string) bool {
	lower := strings.ToLower(line)
	for _, k := range c.Keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		if k == "" {
			continue
		}
		out = append(out, strings.ToLower(k))
	}
	return out
}

// 🏃 Scanner walks a tree and builds a MatchSet
type Scanner struct {
	files  store.FileStore
	logger *log.Logger
}

// 🏭 New creates a new scanner
func New(files store.FileStore, logger *log.Logger) *Scanner {
	return &Scanner{
		files:  files,
		logger: logger,
	}
}

// Scan walks cfg.Root and returns the files passing the keyword test, in
// lexical walk order. Unreadable files are reported and skipped; only an
// invalid config or an unusable root is returned as an error.
func (s *Scanner) Scan(ctx context.Context, cfg Config) (*MatchSet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating scan config: %w", err)
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, errors.Errorf("reading search path: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("search path %s is not a directory", cfg.Root)
	}

	s.logger.Printf("Searching in: %s", cfg.Root)
	s.logger.Printf("Looking for keywords: %s", quoteAll(cfg.Keywords))
	if len(cfg.Exclude) > 0 {
		s.logger.Printf("Excluding keywords: %s", quoteAll(cfg.Exclude))
	}

	set := NewMatchSet()
	err = filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == cfg.Root {
				return err
			}
			s.skip(ctx, path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(cfg.Root, path)
		if err != nil {
			s.skip(ctx, path, err)
			return nil
		}
		if !cfg.Filter.Accept(filepath.ToSlash(rel)) {
			return nil
		}

		s.processFile(ctx, &cfg, path, set)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", cfg.Root, err)
	}

	zerolog.Ctx(ctx).Debug().
		Int("files", set.Len()).
		Int("lines", set.Total()).
		Msg("scan complete")

	return set, nil
}

// processFile adds path to set when its content passes the keyword test
func (s *Scanner) processFile(ctx context.Context, cfg *Config, path string, set *MatchSet) {
	content, err := s.files.ReadFile(ctx, path)
	if err != nil {
		s.skip(ctx, path, err)
		return
	}

	if !cfg.Matches(string(content)) {
		zerolog.Ctx(ctx).Trace().Str("path", path).Msg("keyword test failed")
		return
	}

	// a keyword spanning a line break passes the file test but matches no
	// single line; the file is still part of the set
	set.Add(path)
	for i, line := range text.SplitLines(string(content)) {
		if cfg.matchesLine(line) {
			set.Add(path, Match{Line: i + 1, Text: strings.TrimSpace(line)})
		}
	}
}

func (s *Scanner) skip(ctx context.Context, path string, err error) {
	zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("skipping file")
	s.logger.Warningf("Error reading %s: %v", path, err)
}

func quoteAll(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = "'" + w + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
