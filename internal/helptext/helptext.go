// SPDX-License-Identifier: MPL-2.0

// Package helptext extracts subcommand names from the save editor's --help
// output. The editor's help formatting is a versioned, fragile text contract:
// every assumption about it (header spelling, indentation, identifier shape)
// lives in this package so that format drift has a single fix point.
package helptext

import (
	"regexp"
	"strings"
)

var (
	// headerRe matches the section header that opens the subcommand block.
	headerRe = regexp.MustCompile(`(?i)^\s*Subcommands:\s*$`)

	// childRe matches one subcommand line: at least two leading spaces, then
	// an identifier. Trailing description text on the same line is ignored.
	childRe = regexp.MustCompile(`^\s{2,}([A-Za-z0-9][A-Za-z0-9_-]*)\b`)

	digitsRe = regexp.MustCompile(`^[0-9]+$`)
)

// Subcommands returns the direct child command names found in one block of
// help text, de-duplicated, in first-seen order.
//
// Scanning enters collecting mode at the first "Subcommands:" header line and
// stops at the first blank line after it (or end of text). Non-matching,
// non-blank lines inside the block are ignored; so is everything before the
// header. Text with no header yields nil. All-digit tokens are not command
// names (they show up in usage columns) and are skipped.
func Subcommands(text string) []string {
	var subs []string
	collecting := false

	for _, line := range strings.Split(text, "\n") {
		if !collecting {
			if headerRe.MatchString(line) {
				collecting = true
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		m := childRe.FindStringSubmatch(line)
		if m == nil || digitsRe.MatchString(m[1]) {
			continue
		}
		subs = append(subs, m[1])
	}

	return dedup(subs)
}

// dedup removes repeated names, keeping the first occurrence's position.
func dedup(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := names[:0]
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
