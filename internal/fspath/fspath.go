// SPDX-License-Identifier: MPL-2.0

// Package fspath provides filesystem path helpers shared by the dispatcher
// and the CLI layer, most importantly the sandbox containment check that
// keeps caller-supplied save-file paths under the configured save directory.
package fspath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEscapesBase is the sentinel error wrapped when a relative path resolves
// outside its base directory.
var ErrEscapesBase = errors.New("path escapes base directory")

// SafeJoin resolves rel against base and returns the absolute result.
// The check is lexical: the resolved path must equal the absolute base or
// live under it. Symlinks are not followed.
func SafeJoin(base, rel string) (string, error) {
	baseAbs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	candidate := filepath.Join(baseAbs, rel)
	if candidate == baseAbs {
		return candidate, nil
	}
	if !strings.HasPrefix(candidate, baseAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", rel, ErrEscapesBase)
	}
	return candidate, nil
}

// FileExists reports whether path exists and is a regular file (not a directory).
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
