package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdbook-wikilinks/internal/foundation"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdbook-wikilinks/internal/logfields"
)

// PreprocessorName is the key of this preprocessor's table in book.toml,
// i.e. [preprocessor.wikilinks].
const PreprocessorName = "wikilinks"

// Config holds the rewriting options. Keys use the kebab-case spelling of
// book.toml in both the YAML file and the book table.
type Config struct {
	// Extension is appended to every link target. Empty links to the bare target.
	Extension string `yaml:"extension" json:"extension"`
	// IgnoreCode leaves wiki links inside code spans and code blocks alone.
	IgnoreCode bool `yaml:"ignore-code" json:"ignore-code"`
	// SkipRenderers lists renderers for which the book is passed through untouched.
	SkipRenderers []string `yaml:"skip-renderers" json:"skip-renderers"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{Extension: ".md"}
}

// Load reads a YAML options file on top of the defaults. An empty path
// returns the defaults. Environment variables in the file are expanded.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError("failed to read config file").
			WithCause(err).
			WithContext(logfields.KeyFile, path).
			Build()
	}

	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.ConfigError("failed to parse config file").
			WithCause(err).
			WithContext(logfields.KeyFile, path).
			Build()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MergeBookTable applies the [preprocessor.wikilinks] table delivered by
// mdBook. Only keys present in the table override the current values; keys
// mdBook itself uses (command, renderers, before, after) are ignored.
func (c *Config) MergeBookTable(table json.RawMessage) error {
	if len(bytes.TrimSpace(table)) == 0 {
		return nil
	}
	if err := json.Unmarshal(table, c); err != nil {
		return errors.ConfigError("invalid [preprocessor." + PreprocessorName + "] table").
			WithCause(err).
			Build()
	}
	return c.Validate()
}

var configValidators = foundation.NewValidatorChain(
	foundation.Check("extension", "link_safe",
		"must not contain whitespace, '#', brackets or parentheses",
		func(c *Config) bool { return !strings.ContainsAny(c.Extension, "#()[] \t\r\n") }),
	foundation.Check("skip-renderers", "not_blank",
		"must not contain empty names",
		func(c *Config) bool {
			for _, r := range c.SkipRenderers {
				if strings.TrimSpace(r) == "" {
					return false
				}
			}
			return true
		}),
)

// Validate checks that the options can produce well-formed links.
func (c *Config) Validate() error {
	return configValidators.Validate(c).ToError(errors.CategoryConfig)
}

// SkipsRenderer reports whether the book should be passed through untouched
// for the named renderer. Names compare case-insensitively.
func (c *Config) SkipsRenderer(renderer string) bool {
	for _, r := range c.SkipRenderers {
		if strings.EqualFold(strings.TrimSpace(r), renderer) {
			return true
		}
	}
	return false
}
