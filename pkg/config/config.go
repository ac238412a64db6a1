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
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/formaturl/pkg/text"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultRoot is the directory scanned when none is given
	DefaultRoot = "."
	// DefaultExtension is the file suffix selected when none is given
	DefaultExtension = ".ts"
)

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

// 📚 Config represents the complete configuration of a run
type Config struct {
	Root      string   `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	Extension string   `json:"extension,omitempty" yaml:"extension,omitempty" hcl:"extension,optional"`
	Ignore    []string `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`
	Prefix    string   `json:"prefix,omitempty" yaml:"prefix,omitempty" hcl:"prefix,optional"`
	Boundary  string   `json:"boundary,omitempty" yaml:"boundary,omitempty" hcl:"boundary,optional"`
	DryRun    bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
	ShowDiff  bool     `json:"diff,omitempty" yaml:"diff,omitempty" hcl:"diff,optional"`
	FailFast  bool     `json:"fail_fast,omitempty" yaml:"fail_fast,omitempty" hcl:"fail_fast,optional"`
}

// 🏭 Default returns a validated config with every default applied
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	// A relative root is relative to the config file, not the working directory
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}

	return cfg, nil
}

// 🔍 Validate applies defaults and checks that the configuration is usable
func (cfg *Config) Validate() error {
	// Set defaults
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	if cfg.Prefix == "" {
		cfg.Prefix = text.DefaultPrefix
	}

	boundary, err := text.ParseBoundary(cfg.Boundary)
	if err != nil {
		return errors.Errorf("boundary: %w", err)
	}
	cfg.Boundary = string(boundary)

	// Clean up paths
	cfg.Root = filepath.Clean(cfg.Root)

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore[%d]: invalid pattern %q", i, pattern)
		}
	}

	if _, err := cfg.Rule(); err != nil {
		return errors.Errorf("prefix: %w", err)
	}

	return nil
}

// 🔄 Rule compiles the rewrite rule described by the config
func (cfg *Config) Rule() (*text.Rule, error) {
	return text.NewRule(cfg.Prefix, text.Boundary(cfg.Boundary))
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s/**/*%s [%s, %s]", cfg.Root, cfg.Extension, cfg.Prefix, cfg.Boundary)
}
