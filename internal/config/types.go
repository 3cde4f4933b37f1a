// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMissingEditorBinary is returned when editor.binary is empty.
	ErrMissingEditorBinary = errors.New("editor binary must not be empty")
	// ErrInvalidTimeout is returned when editor.timeout_sec is not positive.
	ErrInvalidTimeout = errors.New("editor timeout must be positive")
	// ErrInvalidOutputCap is returned when editor.max_output_chars is negative.
	ErrInvalidOutputCap = errors.New("output cap must not be negative")
	// ErrMissingRegistryFile is returned when registry_file is empty.
	ErrMissingRegistryFile = errors.New("registry file path must not be empty")
	// ErrMissingListenAddr is returned when server.listen_addr is empty.
	ErrMissingListenAddr = errors.New("listen address must not be empty")
	// ErrInvalidMaxDepth is returned when crawl.max_depth is negative.
	ErrInvalidMaxDepth = errors.New("crawl depth cap must not be negative")
	// ErrInvalidMaxProbes is returned when crawl.max_probes is negative.
	ErrInvalidMaxProbes = errors.New("crawl probe ceiling must not be negative")
)

type (
	// Config is the full savegate configuration, sourced from defaults, an
	// optional TOML file and SAVEGATE_* environment variables (env wins).
	Config struct {
		// RegistryFile is where the crawler writes and the server reads the
		// command registry.
		RegistryFile string `mapstructure:"registry_file" toml:"registry_file"`

		Editor EditorConfig `mapstructure:"editor" toml:"editor"`
		Server ServerConfig `mapstructure:"server" toml:"server"`
		Crawl  CrawlConfig  `mapstructure:"crawl" toml:"crawl"`
	}

	// EditorConfig describes the external save-editor binary.
	EditorConfig struct {
		// Binary is the editor executable, typically relative to BinDir.
		Binary string `mapstructure:"binary" toml:"binary"`
		// BinDir is the working directory for every invocation; the editor
		// resolves its data files relative to it.
		BinDir string `mapstructure:"bin_dir" toml:"bin_dir"`
		// SaveDir is the sandbox root for caller-supplied save-file paths.
		SaveDir string `mapstructure:"save_dir" toml:"save_dir"`
		// TimeoutSec bounds each invocation, in seconds.
		TimeoutSec int `mapstructure:"timeout_sec" toml:"timeout_sec"`
		// MaxOutputChars caps stdout/stderr relayed to callers; 0 disables.
		MaxOutputChars int `mapstructure:"max_output_chars" toml:"max_output_chars"`
	}

	// ServerConfig holds the HTTP dispatcher settings.
	ServerConfig struct {
		ListenAddr string `mapstructure:"listen_addr" toml:"listen_addr"`
	}

	// CrawlConfig holds the crawler settings.
	CrawlConfig struct {
		// MaxDepth is the deepest command path (token count) still expanded.
		MaxDepth int `mapstructure:"max_depth" toml:"max_depth"`
		// MaxProbes caps total help invocations per crawl; 0 means unbounded.
		MaxProbes int `mapstructure:"max_probes" toml:"max_probes"`
		// Seeds is a newline-delimited seed list: "--help <tokens>" expands a
		// help path, bare tokens register a literal command.
		Seeds string `mapstructure:"seeds" toml:"seeds,multiline"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		RegistryFile: "commands.json",
		Editor: EditorConfig{
			Binary:         "./saveedit",
			BinDir:         "/opt/saveedit/bin",
			SaveDir:        "/data",
			TimeoutSec:     60,
			MaxOutputChars: 400000,
		},
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
		Crawl: CrawlConfig{
			MaxDepth:  10,
			MaxProbes: 0,
		},
	}
}

// Timeout returns the editor invocation bound as a duration.
func (e EditorConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSec) * time.Second
}

// Validate checks constraints the file format cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Editor.Binary) == "" {
		return fmt.Errorf("editor.binary: %w", ErrMissingEditorBinary)
	}
	if c.Editor.TimeoutSec <= 0 {
		return fmt.Errorf("editor.timeout_sec = %d: %w", c.Editor.TimeoutSec, ErrInvalidTimeout)
	}
	if c.Editor.MaxOutputChars < 0 {
		return fmt.Errorf("editor.max_output_chars = %d: %w", c.Editor.MaxOutputChars, ErrInvalidOutputCap)
	}
	if strings.TrimSpace(c.RegistryFile) == "" {
		return fmt.Errorf("registry_file: %w", ErrMissingRegistryFile)
	}
	if strings.TrimSpace(c.Server.ListenAddr) == "" {
		return fmt.Errorf("server.listen_addr: %w", ErrMissingListenAddr)
	}
	if c.Crawl.MaxDepth < 0 {
		return fmt.Errorf("crawl.max_depth = %d: %w", c.Crawl.MaxDepth, ErrInvalidMaxDepth)
	}
	if c.Crawl.MaxProbes < 0 {
		return fmt.Errorf("crawl.max_probes = %d: %w", c.Crawl.MaxProbes, ErrInvalidMaxProbes)
	}
	return nil
}
