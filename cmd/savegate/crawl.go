// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"savegate/internal/config"
	"savegate/internal/crawler"
	"savegate/internal/editor"
	"savegate/internal/fspath"
	"savegate/internal/registry"

	"github.com/spf13/cobra"
)

var (
	crawlOut       string
	crawlSeedsFile string

	crawlCmd = &cobra.Command{
		Use:   "crawl",
		Short: "Discover editor commands into the registry",
		Long: `Discover editor commands into the registry.

Walks the editor's --help output breadth-first, collecting every
reachable subcommand path, and writes the result as a JSON registry
consumed by 'savegate serve'.

Extra seeds from the configuration (or --seeds-file) are crawled after
the root. Lines starting with --help probe that subtree; other lines
register a literal command without probing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrawl(cmd)
		},
	}
)

func init() {
	crawlCmd.Flags().StringVar(&crawlOut, "out", "", "registry output path (default from configuration)")
	crawlCmd.Flags().StringVar(&crawlSeedsFile, "seeds-file", "", "file with extra seed lines, one per line")
}

func runCrawl(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	if _, err := resolveEditorBinary(cfg); err != nil {
		return err
	}

	seeds, err := gatherSeeds(cfg)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	outPath := crawlOut
	if outPath == "" {
		outPath = cfg.RegistryFile
	}

	logger := newLogger()
	ed := editor.New(cfg.Editor.Binary, cfg.Editor.BinDir, cfg.Editor.Timeout())

	cr := crawler.New(ed.Help, crawler.Options{
		MaxDepth:  cfg.Crawl.MaxDepth,
		MaxProbes: cfg.Crawl.MaxProbes,
		Logger:    logger,
	})

	reg, err := cr.Run(cmd.Context(), seeds)
	if err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("crawling editor help: %w", err)}
	}

	if err := registry.Write(outPath, reg); err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("writing registry: %w", err)}
	}

	fmt.Printf("%s Wrote %d commands to %s\n",
		SuccessStyle.Render("✓"), len(reg), outPath)
	return nil
}

// gatherSeeds combines configured seed lines with the optional seeds file.
func gatherSeeds(cfg *config.Config) ([]crawler.Seed, error) {
	raw := cfg.Crawl.Seeds

	if crawlSeedsFile != "" {
		if !fspath.FileExists(crawlSeedsFile) {
			return nil, fmt.Errorf("seeds file not found: %s", crawlSeedsFile)
		}
		data, err := os.ReadFile(crawlSeedsFile)
		if err != nil {
			return nil, fmt.Errorf("reading seeds file: %w", err)
		}
		raw = raw + "\n" + string(data)
	}

	seeds, err := crawler.ParseSeeds(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing seeds: %w", err)
	}
	return seeds, nil
}
