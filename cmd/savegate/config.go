// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"savegate/internal/config"
	"savegate/internal/fspath"
	"savegate/internal/issue"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage savegate configuration",
	Long: `Manage savegate configuration.

Configuration is stored in:
  - Linux: ~/.config/savegate/config.toml
  - macOS: ~/Library/Application Support/savegate/config.toml
  - Windows: %APPDATA%\savegate\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			content, err := config.GenerateTOML(cfg)
			if err != nil {
				return err
			}
			fmt.Print(content)
			return nil
		},
	})
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	cfgPath, pathErr := config.FilePath()
	if pathErr == nil && fspath.FileExists(cfgPath) {
		fmt.Printf("%s: %s\n", TitleStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", TitleStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", TitleStyle.Render("registry_file"), SuccessStyle.Render(cfg.RegistryFile))

	fmt.Println()
	fmt.Printf("%s:\n", TitleStyle.Render("editor"))
	fmt.Printf("  binary: %s\n", SuccessStyle.Render(cfg.Editor.Binary))
	fmt.Printf("  bin_dir: %s\n", SuccessStyle.Render(cfg.Editor.BinDir))
	fmt.Printf("  save_dir: %s\n", SuccessStyle.Render(cfg.Editor.SaveDir))
	fmt.Printf("  timeout_sec: %s\n", SuccessStyle.Render(fmt.Sprintf("%d", cfg.Editor.TimeoutSec)))
	fmt.Printf("  max_output_chars: %s\n", SuccessStyle.Render(fmt.Sprintf("%d", cfg.Editor.MaxOutputChars)))

	fmt.Println()
	fmt.Printf("%s:\n", TitleStyle.Render("server"))
	fmt.Printf("  listen_addr: %s\n", SuccessStyle.Render(cfg.Server.ListenAddr))

	fmt.Println()
	fmt.Printf("%s:\n", TitleStyle.Render("crawl"))
	fmt.Printf("  max_depth: %s\n", SuccessStyle.Render(fmt.Sprintf("%d", cfg.Crawl.MaxDepth)))
	fmt.Printf("  max_probes: %s\n", SuccessStyle.Render(fmt.Sprintf("%d", cfg.Crawl.MaxProbes)))
	lines := seedLines(cfg.Crawl.Seeds)
	if len(lines) == 0 {
		fmt.Printf("  seeds: %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		fmt.Printf("  seeds:\n")
		for _, s := range lines {
			fmt.Printf("    - %s\n", SuccessStyle.Render(s))
		}
	}

	return nil
}

// seedLines splits a newline-delimited seed list into its non-blank lines.
func seedLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func initConfig() error {
	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	cfgPath, err := config.FilePath()
	if err != nil {
		return err
	}
	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.FilePath()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", cfgPath)
	return nil
}
