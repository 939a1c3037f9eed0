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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/markfix/pkg/diff"
	"github.com/walteh/markfix/pkg/report"
	"github.com/walteh/markfix/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// DefaultFile is read when no config file is named explicitly
const DefaultFile = ".markfix.yaml"

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config holds the defaults a run starts from
type Config struct {
	Path         string   `json:"path,omitempty" yaml:"path,omitempty"`
	Keywords     []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Exclude      []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Include      []string `json:"include,omitempty" yaml:"include,omitempty"`       // doublestar globs, replaces the test file filter
	Ignore       []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`         // doublestar globs, always applied
	Extensions   []string `json:"extensions,omitempty" yaml:"extensions,omitempty"` // for the test file filter
	TrimMarker   string   `json:"trim_marker,omitempty" yaml:"trim_marker,omitempty"`
	ContextLines *int     `json:"context_lines,omitempty" yaml:"context_lines,omitempty"`
	Backup       bool     `json:"backup,omitempty" yaml:"backup,omitempty"`
}

// Default returns a validated config with every default filled in
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("unsupported file extension %q", filepath.Ext(path))
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not exist
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return Default(), nil
	}
	return Load(ctx, path)
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.ContextLines == nil {
		n := diff.DefaultContext
		cfg.ContextLines = &n
	} else if *cfg.ContextLines < 0 {
		return errors.Errorf("context_lines must not be negative")
	}

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), scan.DefaultExtensions...)
	}
	if strings.TrimSpace(cfg.TrimMarker) == "" {
		cfg.TrimMarker = report.DefaultMarker
	}
	if cfg.Path != "" {
		cfg.Path = filepath.Clean(cfg.Path)
	}

	if err := (scan.GlobFilter{Include: cfg.Include, Ignore: cfg.Ignore}).Validate(); err != nil {
		return err
	}

	return nil
}

// Filter builds the file name filter for a scan. Include patterns replace the
// test file filter; Ignore patterns apply in both cases.
func (cfg *Config) Filter() scan.Filter {
	if len(cfg.Include) > 0 {
		return scan.GlobFilter{Include: cfg.Include, Ignore: cfg.Ignore}
	}
	base := scan.TestFileFilter(cfg.Extensions...)
	if len(cfg.Ignore) == 0 {
		return base
	}
	return scan.AllOf(base, scan.GlobFilter{Ignore: cfg.Ignore})
}

// Context returns the configured number of diff context lines
func (cfg *Config) Context() int {
	if cfg.ContextLines == nil {
		return diff.DefaultContext
	}
	return *cfg.ContextLines
}
