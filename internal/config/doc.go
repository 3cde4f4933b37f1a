// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as
// the file format.
//
// Sources, in increasing precedence: built-in defaults, config.toml in the
// platform config directory (XDG equivalent on Linux, ~/Library/Application
// Support on macOS, %APPDATA% on Windows), and SAVEGATE_* environment
// variables. The environment is the primary deployment interface; the file
// is a convenience for local runs.
package config
