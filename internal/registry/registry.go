// SPDX-License-Identifier: MPL-2.0

// Package registry models the command registry: the mapping from dotted
// command paths (e.g. "player.inventory.ls") to the argv token sequence that
// reaches them in the save editor's subcommand tree. The crawler produces it,
// the serializer persists it, and the dispatcher loads it read-only at startup.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	// ErrNotFound is returned when the registry file does not exist.
	ErrNotFound = errors.New("registry file not found")
	// ErrMalformed is returned when the registry file is not a well-formed
	// key-to-object mapping.
	ErrMalformed = errors.New("registry file is malformed")
)

type (
	// Entry associates a dotted key with the argv tokens passed to the editor
	// binary (binary name and --help excluded). For crawled entries argv
	// reconstructs exactly the command path that produced the key.
	Entry struct {
		Argv []string `json:"argv"`
	}

	// Registry maps dotted keys to entries. Writes during a crawl are
	// last-write-wins; once serialized the value is treated as immutable.
	Registry map[string]Entry
)

// Key joins path tokens into the dotted lookup key.
func Key(tokens []string) string {
	return strings.Join(tokens, ".")
}

// New returns an empty registry.
func New() Registry {
	return make(Registry)
}

// Put registers tokens under their dotted key, overwriting any previous entry.
func (r Registry) Put(tokens []string) {
	r[Key(tokens)] = Entry{Argv: slices.Clone(tokens)}
}

// Lookup returns the entry for key. The second return is false when the key
// is absent or the entry carries no argv (a malformed registry row).
func (r Registry) Lookup(key string) (Entry, bool) {
	e, ok := r[key]
	if !ok || len(e.Argv) == 0 {
		return Entry{}, false
	}
	return e, true
}

// Keys returns all dotted keys in lexicographic order.
func (r Registry) Keys() []string {
	keys := maps.Keys(r)
	slices.Sort(keys)
	return keys
}

// Marshal renders the registry as pretty-printed JSON with lexicographically
// sorted keys and a trailing newline. Identical registries marshal to
// identical bytes, keeping generated files diff-friendly.
func (r Registry) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding registry: %w", err)
	}
	return append(data, '\n'), nil
}

// Write serializes the registry to path. The file is written in one shot,
// only after a crawl has fully completed; there is no incremental write.
func Write(path string, r Registry) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing registry file: %w", err)
	}
	return nil
}

// Load reads and decodes the registry at path. A missing file wraps
// ErrNotFound and a document that is not a JSON object of objects wraps
// ErrMalformed; both are fatal startup conditions for the dispatcher.
func Load(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading registry file %s: %w", path, err)
	}

	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %s: document is null", ErrMalformed, path)
	}
	return r, nil
}
