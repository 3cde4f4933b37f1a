// SPDX-License-Identifier: MPL-2.0

package crawler

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"savegate/internal/registry"
)

// stubTree builds a HelpFunc over a fixed path -> help-text mapping, keyed by
// space-joined path tokens. Unknown paths return empty text. probeLog, when
// non-nil, records every probed path.
func stubTree(tree map[string]string, probeLog *[]string) HelpFunc {
	return func(_ context.Context, path []string) (string, error) {
		key := strings.Join(path, " ")
		if probeLog != nil {
			*probeLog = append(*probeLog, key)
		}
		return tree[key], nil
	}
}

func subcmdBlock(names ...string) string {
	var b strings.Builder
	b.WriteString("Subcommands:\n")
	for _, n := range names {
		b.WriteString("  " + n + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func TestRunDiscoversTree(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"":     "Subcommands:\n  alpha  does a thing\n  beta   does another\n",
		"alpha": subcmdBlock(),
		"beta":  "Subcommands:\n  gamma\n",
	}

	c := New(stubTree(tree, nil), Options{MaxDepth: 10})
	reg, err := c.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	want := registry.Registry{
		"alpha":      {Argv: []string{"alpha"}},
		"beta":       {Argv: []string{"beta"}},
		"beta.gamma": {Argv: []string{"beta", "gamma"}},
	}
	if !reflect.DeepEqual(reg, want) {
		t.Errorf("registry = %v, want %v", reg, want)
	}
}

func TestRunBreadthFirstOrder(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"":    subcmdBlock("a", "b"),
		"a":   subcmdBlock("a1"),
		"b":   subcmdBlock("b1"),
	}

	var probed []string
	c := New(stubTree(tree, &probed), Options{MaxDepth: 10})
	if _, err := c.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	want := []string{"", "a", "b", "a a1", "b b1"}
	if !reflect.DeepEqual(probed, want) {
		t.Errorf("probe order = %v, want %v", probed, want)
	}
}

func TestRunDepthCap(t *testing.T) {
	t.Parallel()

	// Endless chain: every node reports one child named "down".
	help := func(_ context.Context, path []string) (string, error) {
		return subcmdBlock("down"), nil
	}

	var probed []string
	logHelp := func(ctx context.Context, path []string) (string, error) {
		probed = append(probed, strings.Join(path, " "))
		return help(ctx, path)
	}

	c := New(logHelp, Options{MaxDepth: 2})
	reg, err := c.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	// Registered: "down" (depth 1) and "down.down" (depth 2). Depth 3 is
	// neither probed nor registered.
	want := registry.Registry{
		"down":      {Argv: []string{"down"}},
		"down.down": {Argv: []string{"down", "down"}},
	}
	if !reflect.DeepEqual(reg, want) {
		t.Errorf("registry = %v, want %v", reg, want)
	}
	for _, p := range probed {
		if len(strings.Fields(p)) > 2 {
			t.Errorf("probed beyond depth cap: %q", p)
		}
	}
}

func TestRunProbeCeiling(t *testing.T) {
	t.Parallel()

	// Huge branching at depth 1: the ceiling must stop invocations even
	// though the depth cap never triggers.
	wide := make([]string, 50)
	for i := range wide {
		wide[i] = strings.Repeat("x", 1) + string(rune('a'+i%26)) + strings.Repeat("z", i/26)
	}
	tree := map[string]string{"": subcmdBlock(wide...)}

	var probed []string
	c := New(stubTree(tree, &probed), Options{MaxDepth: 10, MaxProbes: 5})
	if _, err := c.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if len(probed) != 5 {
		t.Errorf("issued %d probes, want 5", len(probed))
	}
}

func TestRunLiteralSeeds(t *testing.T) {
	t.Parallel()

	tree := map[string]string{"": subcmdBlock()}
	seeds := []Seed{
		{Kind: SeedLiteral, Tokens: []string{"help", "inventory", "items"}},
	}

	c := New(stubTree(tree, nil), Options{MaxDepth: 0})
	reg, err := c.Run(context.Background(), seeds)
	if err != nil {
		t.Fatal(err)
	}

	e, ok := reg.Lookup("help.inventory.items")
	if !ok {
		t.Fatal("literal seed not registered")
	}
	if !reflect.DeepEqual(e.Argv, []string{"help", "inventory", "items"}) {
		t.Errorf("argv = %v", e.Argv)
	}
}

func TestRunSeedProbeOverlapProcessedOnce(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"":      subcmdBlock("alpha"),
		"alpha": subcmdBlock(),
	}

	var probed []string
	seeds := []Seed{{Kind: SeedHelpProbe, Tokens: []string{"alpha"}}}
	c := New(stubTree(tree, &probed), Options{MaxDepth: 10})
	reg, err := c.Run(context.Background(), seeds)
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for _, p := range probed {
		if p == "alpha" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("alpha probed %d times, want 1", count)
	}
	if _, ok := reg.Lookup("alpha"); !ok {
		t.Error("alpha not registered")
	}
}

func TestRunMalformedHelpIsZeroChildren(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"": "garbage \x00 output with no header at all",
	}

	c := New(stubTree(tree, nil), Options{MaxDepth: 10})
	reg, err := c.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(reg) != 0 {
		t.Errorf("registry = %v, want empty", reg)
	}
}

func TestRunHelpFuncErrorAborts(t *testing.T) {
	t.Parallel()

	boom := errors.New("binary missing")
	c := New(func(context.Context, []string) (string, error) {
		return "", boom
	}, Options{MaxDepth: 10})

	if _, err := c.Run(context.Background(), nil); !errors.Is(err, boom) {
		t.Errorf("Run error = %v, want wrapped %v", err, boom)
	}
}

func TestRunCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(stubTree(map[string]string{}, nil), Options{MaxDepth: 10})
	if _, err := c.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestRunIdempotentSerialization(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"":     subcmdBlock("beta", "alpha"),
		"beta": subcmdBlock("gamma"),
	}

	serialize := func() []byte {
		c := New(stubTree(tree, nil), Options{MaxDepth: 10})
		reg, err := c.Run(context.Background(), nil)
		if err != nil {
			t.Fatal(err)
		}
		data, err := reg.Marshal()
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	if !bytes.Equal(serialize(), serialize()) {
		t.Error("two identical crawls serialized to different bytes")
	}
}
