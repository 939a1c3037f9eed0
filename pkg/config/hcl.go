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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "markfix.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// env() exposes the environment, e.g. path = env("REPO_ROOT")
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: envFunctions(),
	}

	type hclConfig struct {
		Path         *string  `hcl:"path,optional"`
		Keywords     []string `hcl:"keywords,optional"`
		Exclude      []string `hcl:"exclude,optional"`
		Include      []string `hcl:"include,optional"`
		Ignore       []string `hcl:"ignore,optional"`
		Extensions   []string `hcl:"extensions,optional"`
		TrimMarker   *string  `hcl:"trim_marker,optional"`
		ContextLines *int     `hcl:"context_lines,optional"`
		Backup       *bool    `hcl:"backup,optional"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Keywords:     hclCfg.Keywords,
		Exclude:      hclCfg.Exclude,
		Include:      hclCfg.Include,
		Ignore:       hclCfg.Ignore,
		Extensions:   hclCfg.Extensions,
		ContextLines: hclCfg.ContextLines,
	}
	if hclCfg.Path != nil {
		cfg.Path = *hclCfg.Path
	}
	if hclCfg.TrimMarker != nil {
		cfg.TrimMarker = *hclCfg.TrimMarker
	}
	if hclCfg.Backup != nil {
		cfg.Backup = *hclCfg.Backup
	}

	return cfg, nil
}
