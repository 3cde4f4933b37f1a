// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"savegate/internal/issue"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for config paths and env prefix.
	AppName = "savegate"
	// EnvPrefix prefixes every environment variable savegate reads.
	EnvPrefix = "SAVEGATE"
	// ConfigFileName is the config file name (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// ConfigDir returns the savegate configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads configuration from defaults, then the config file (when
// present), then SAVEGATE_* environment variables; later sources win.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("registry_file", defaults.RegistryFile)
	v.SetDefault("editor.binary", defaults.Editor.Binary)
	v.SetDefault("editor.bin_dir", defaults.Editor.BinDir)
	v.SetDefault("editor.save_dir", defaults.Editor.SaveDir)
	v.SetDefault("editor.timeout_sec", defaults.Editor.TimeoutSec)
	v.SetDefault("editor.max_output_chars", defaults.Editor.MaxOutputChars)
	v.SetDefault("server.listen_addr", defaults.Server.ListenAddr)
	v.SetDefault("crawl.max_depth", defaults.Crawl.MaxDepth)
	v.SetDefault("crawl.max_probes", defaults.Crawl.MaxProbes)
	v.SetDefault("crawl.seeds", defaults.Crawl.Seeds)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFilePathOverride != "" {
		v.SetConfigFile(configFilePathOverride)
		if err := v.ReadInConfig(); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(configFilePathOverride).
				WithSuggestion("Verify the file exists and contains valid TOML").
				WithSuggestion("Run 'savegate config init' to scaffold a default file").
				Wrap(err).
				BuildError()
		}
	} else {
		cfgDir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(cfgDir)
		if err := v.ReadInConfig(); err != nil {
			// A missing file is fine; everything else is surfaced.
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, issue.NewErrorContext().
					WithOperation("load configuration").
					WithResource(filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)).
					WithSuggestion("Check the file contains valid TOML").
					WithSuggestion("Remove the file to fall back to defaults").
					Wrap(err).
					BuildError()
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Run 'savegate config show' to inspect the effective values").
			Wrap(err).
			BuildError()
	}

	return &cfg, nil
}

// FilePath returns the path of the config file Load would consult.
func FilePath() (string, error) {
	if configFilePathOverride != "" {
		return configFilePathOverride, nil
	}
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// GenerateTOML renders cfg as a TOML document.
func GenerateTOML(cfg *Config) (string, error) {
	var sb strings.Builder
	sb.WriteString("# savegate configuration file.\n")
	sb.WriteString("# Every key can be overridden by a SAVEGATE_* environment variable,\n")
	sb.WriteString("# e.g. editor.bin_dir by SAVEGATE_EDITOR_BIN_DIR.\n\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	sb.Write(data)
	return sb.String(), nil
}

// CreateDefaultConfig writes a default config file unless one already exists.
func CreateDefaultConfig() error {
	cfgPath, err := FilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return nil
	}

	content, err := GenerateTOML(DefaultConfig())
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
