// SPDX-License-Identifier: MPL-2.0

// Package crawler discovers the save editor's full command tree by
// repeatedly invoking its help mode and parsing the reported subcommands.
// The traversal is an explicit FIFO work queue rather than native recursion:
// that keeps it breadth-first (deterministic, and more breadth survives when
// the depth cap truncates a large tree) and makes the visited set and depth
// cap auditable invariants instead of incidental call-stack behavior.
package crawler

import (
	"context"
	"fmt"
	"io"

	"savegate/internal/helptext"
	"savegate/internal/registry"

	"github.com/charmbracelet/log"
)

// HelpFunc runs the editor's help mode at a command path and returns the raw
// combined output. Empty or malformed text means "zero children", never an
// error; an error from HelpFunc is an infrastructure failure (binary missing,
// timeout) and aborts the crawl.
type HelpFunc func(ctx context.Context, path []string) (string, error)

type (
	// Options bound a crawl run.
	Options struct {
		// MaxDepth is the deepest path length (in tokens) that is still
		// probed and registered. Paths longer than MaxDepth are dropped.
		MaxDepth int
		// MaxProbes caps the number of help invocations issued; 0 means
		// unbounded. A safety valve against pathological branching at
		// shallow depth, which the depth cap alone does not bound.
		MaxProbes int
		// Logger receives per-probe debug output. Nil discards.
		Logger *log.Logger
	}

	// Crawler drives the discovery. Single-threaded: each probe is a blocking
	// external-process invocation, issued one at a time.
	Crawler struct {
		help   HelpFunc
		opts   Options
		logger *log.Logger
	}

	item struct {
		kind   SeedKind
		tokens []string
	}
)

// New creates a Crawler over the given help primitive.
func New(help HelpFunc, opts Options) *Crawler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Crawler{help: help, opts: opts, logger: logger}
}

// Run crawls the command tree and returns the resulting registry. The
// frontier is seeded with the root help probe (always) plus the supplied
// seeds, and processed in FIFO order until exhausted. The root path itself is
// never registered, only used to discover first-level children.
func (c *Crawler) Run(ctx context.Context, seeds []Seed) (registry.Registry, error) {
	reg := registry.New()
	visited := make(map[string]struct{})

	queue := make([]item, 0, 1+len(seeds))
	queue = append(queue, item{kind: SeedHelpProbe})
	for _, s := range seeds {
		queue = append(queue, item{kind: s.Kind, tokens: s.Tokens})
	}

	probes := 0
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("crawl canceled: %w", err)
		}

		it := queue[0]
		queue = queue[1:]

		if it.kind == SeedLiteral {
			c.logger.Debug("registering literal command", "key", registry.Key(it.tokens))
			reg.Put(it.tokens)
			continue
		}

		key := registry.Key(it.tokens)
		if _, ok := visited[key]; ok {
			continue
		}
		visited[key] = struct{}{}

		if len(it.tokens) > c.opts.MaxDepth {
			c.logger.Debug("depth cap reached, not expanding", "path", key, "depth", len(it.tokens))
			continue
		}
		if c.opts.MaxProbes > 0 && probes >= c.opts.MaxProbes {
			c.logger.Warn("probe ceiling reached, skipping help probe", "path", key, "max_probes", c.opts.MaxProbes)
			continue
		}

		probes++
		text, err := c.help(ctx, it.tokens)
		if err != nil {
			return nil, fmt.Errorf("help probe at %q: %w", key, err)
		}

		children := helptext.Subcommands(text)
		c.logger.Debug("probed help path", "path", key, "children", len(children))
		for _, child := range children {
			next := make([]string, 0, len(it.tokens)+1)
			next = append(next, it.tokens...)
			next = append(next, child)
			queue = append(queue, item{kind: SeedHelpProbe, tokens: next})
		}

		if len(it.tokens) > 0 {
			reg.Put(it.tokens)
		}
	}

	c.logger.Info("crawl complete", "commands", len(reg), "help_probes", probes)
	return reg, nil
}
