package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the config file looked up at the project root.
const FileName = ".lintfix.toml"

// DefaultEntry is the downstream entry point used when none is configured.
const DefaultEntry = "scripts/lint_fix.py"

// Known quality tools, in the order the pipeline runs them.
const (
	ToolBlack  = "black"
	ToolIsort  = "isort"
	ToolFlake8 = "flake8"
	ToolPylint = "pylint"
)

var knownTools = []string{ToolBlack, ToolIsort, ToolFlake8, ToolPylint}

// Config captures the user editable settings stored in .lintfix.toml.
type Config struct {
	Wrapper  WrapperBlock  `toml:"wrapper"`
	Pipeline PipelineBlock `toml:"pipeline"`
}

// WrapperBlock describes the downstream program lintwrap forwards to.
type WrapperBlock struct {
	Entry       string `toml:"entry"`
	Interpreter string `toml:"interpreter"`
}

// PipelineBlock governs lintfix's own tool pipeline.
type PipelineBlock struct {
	Python        string   `toml:"python"`
	Tools         []string `toml:"tools"`
	RunTests      bool     `toml:"run_tests"`
	TestArgs      []string `toml:"test_args"`
	PylintExclude []string `toml:"pylint_exclude"`
}

var (
	// ErrMissingEntry indicates the wrapper entry point was set to an empty value.
	ErrMissingEntry = errors.New("config.wrapper.entry must not be empty")
	// ErrUnknownTool indicates pipeline.tools names a tool lintfix cannot run.
	ErrUnknownTool = errors.New("config.pipeline.tools contains an unknown tool")
)

// Default returns the baseline configuration.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (w *WrapperBlock) applyDefaults() {
	w.Entry = strings.TrimSpace(w.Entry)
	if w.Entry == "" {
		w.Entry = DefaultEntry
	}
}

func (p *PipelineBlock) applyDefaults() {
	if p.Tools == nil {
		p.Tools = append([]string(nil), knownTools...)
	}
	for i, tool := range p.Tools {
		p.Tools[i] = strings.ToLower(strings.TrimSpace(tool))
	}
	if p.TestArgs == nil {
		p.TestArgs = []string{"-q"}
	}
	if p.PylintExclude == nil {
		p.PylintExclude = []string{"setup"}
	}
}

func (c *Config) applyDefaults() {
	c.Wrapper.applyDefaults()
	c.Pipeline.applyDefaults()
}

// Validate ensures the configuration can guide lintfix's behavior.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Wrapper.Entry) == "" {
		return ErrMissingEntry
	}
	for _, tool := range c.Pipeline.Tools {
		if !IsKnownTool(tool) {
			return fmt.Errorf("%w: %q", ErrUnknownTool, tool)
		}
	}
	return nil
}

// HasTool reports whether the pipeline is configured to run tool.
func (p PipelineBlock) HasTool(tool string) bool {
	for _, t := range p.Tools {
		if t == tool {
			return true
		}
	}
	return false
}

// IsKnownTool reports whether name is one of the supported quality tools.
func IsKnownTool(name string) bool {
	for _, t := range knownTools {
		if t == name {
			return true
		}
	}
	return false
}

// Load reads configuration from disk. Missing files return a default config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes configuration to disk, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
