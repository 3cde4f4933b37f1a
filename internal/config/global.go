// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride allows tests to pin the config directory without relying
// on os.UserHomeDir, which does not respect HOME on every platform.
var configDirOverride string

// configFilePathOverride holds the path from the --config flag.
var configFilePathOverride string

// Reset clears overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
	configFilePathOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFilePathOverride sets an explicit config file path, used
// exclusively when non-empty.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}
