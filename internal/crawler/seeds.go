// SPDX-License-Identifier: MPL-2.0

package crawler

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

const (
	// SeedHelpProbe marks a seed whose children must be discovered by
	// invoking the editor's help mode at the seed path.
	SeedHelpProbe SeedKind = iota
	// SeedLiteral marks a fully specified command registered verbatim,
	// without expansion or depth checks.
	SeedLiteral
)

type (
	// SeedKind discriminates the two frontier item flavors.
	SeedKind int

	// Seed is one externally supplied crawl instruction.
	Seed struct {
		Kind   SeedKind
		Tokens []string
	}
)

// ParseSeeds parses a newline-delimited seed list. Each non-blank line is
// either "--help <tokens...>" (expand that help path) or bare tokens
// (register a literal command). Lines are split with shell quoting rules, so
// a token may carry spaces when quoted.
func ParseSeeds(raw string) ([]Seed, error) {
	var seeds []Seed
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields, err := shell.Fields(line, nil)
		if err != nil {
			return nil, fmt.Errorf("seed line %d: %w", i+1, err)
		}
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "--help" {
			seeds = append(seeds, Seed{Kind: SeedHelpProbe, Tokens: fields[1:]})
			continue
		}
		seeds = append(seeds, Seed{Kind: SeedLiteral, Tokens: fields})
	}
	return seeds, nil
}
