// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"savegate/internal/config"
	"savegate/internal/crawler"
)

func TestGatherSeeds(t *testing.T) {
	t.Run("config seeds only", func(t *testing.T) {
		crawlSeedsFile = ""
		cfg := config.DefaultConfig()
		cfg.Crawl.Seeds = "--help inventory\ninventory export --all"

		seeds, err := gatherSeeds(cfg)
		if err != nil {
			t.Fatalf("gatherSeeds() error = %v", err)
		}
		if len(seeds) != 2 {
			t.Fatalf("got %d seeds, want 2", len(seeds))
		}
		if seeds[0].Kind != crawler.SeedHelpProbe {
			t.Error("first seed should be a help probe")
		}
		if seeds[1].Kind != crawler.SeedLiteral {
			t.Error("second seed should be literal")
		}
	})

	t.Run("seeds file appended", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "seeds.txt")
		if err := os.WriteFile(path, []byte("--help roster\n\nroster dump\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		crawlSeedsFile = path
		defer func() { crawlSeedsFile = "" }()

		cfg := config.DefaultConfig()
		cfg.Crawl.Seeds = "--help inventory"

		seeds, err := gatherSeeds(cfg)
		if err != nil {
			t.Fatalf("gatherSeeds() error = %v", err)
		}
		if len(seeds) != 3 {
			t.Fatalf("got %d seeds, want 3", len(seeds))
		}
		last := seeds[2]
		if last.Kind != crawler.SeedLiteral || len(last.Tokens) != 2 {
			t.Errorf("unexpected final seed: %+v", last)
		}
	})

	t.Run("missing seeds file", func(t *testing.T) {
		crawlSeedsFile = filepath.Join(t.TempDir(), "absent.txt")
		defer func() { crawlSeedsFile = "" }()

		if _, err := gatherSeeds(config.DefaultConfig()); err == nil {
			t.Fatal("expected error for missing seeds file")
		}
	})
}

func TestGatherSeedsFromEnvironment(t *testing.T) {
	config.SetConfigDirOverride(t.TempDir())
	defer config.Reset()
	t.Setenv("SAVEGATE_CRAWL_SEEDS", "--help inventory\nroster dump --all")

	crawlSeedsFile = ""
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	seeds, err := gatherSeeds(cfg)
	if err != nil {
		t.Fatalf("gatherSeeds() error = %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("got %d seeds, want 2", len(seeds))
	}
	if seeds[0].Kind != crawler.SeedHelpProbe || len(seeds[0].Tokens) != 1 {
		t.Errorf("unexpected probe seed: %+v", seeds[0])
	}
	if seeds[1].Kind != crawler.SeedLiteral || len(seeds[1].Tokens) != 3 {
		t.Errorf("unexpected literal seed: %+v", seeds[1])
	}
}
