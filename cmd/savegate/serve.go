// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"savegate/internal/config"
	"savegate/internal/editor"
	"savegate/internal/fspath"
	"savegate/internal/issue"
	"savegate/internal/registry"
	"savegate/internal/server"

	"github.com/spf13/cobra"
)

// shutdownTimeout bounds graceful HTTP shutdown on interrupt.
const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP gateway",
	Long: `Start the HTTP gateway.

Loads the command registry, verifies the editor binary is reachable and
serves every registered command under POST /run/<key>. The server runs
until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	reg, err := registry.Load(cfg.RegistryFile)
	if err != nil {
		return registryLoadError(cfg.RegistryFile, err)
	}

	binPath, err := resolveEditorBinary(cfg)
	if err != nil {
		return err
	}

	logger := newLogger()
	ed := editor.New(cfg.Editor.Binary, cfg.Editor.BinDir, cfg.Editor.Timeout())

	srv := server.New(server.Config{
		ListenAddr:     cfg.Server.ListenAddr,
		SaveDir:        cfg.Editor.SaveDir,
		MaxOutputChars: cfg.Editor.MaxOutputChars,
	}, reg, ed, logger)

	if err := srv.Start(); err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("starting server: %w", err)}
	}

	logger.Info("gateway started",
		"addr", srv.Addr(),
		"commands", len(reg),
		"editor", binPath,
		"save_dir", cfg.Editor.SaveDir)
	fmt.Printf("%s Serving %d commands on %s\n",
		SuccessStyle.Render("✓"), len(reg), srv.Addr())

	<-ctx.Done()

	logger.Info("shutting down")
	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(stopCtx); err != nil {
		return &ExitError{Code: 1, Err: fmt.Errorf("stopping server: %w", err)}
	}
	return nil
}

// resolveEditorBinary checks that the configured editor binary exists,
// resolving relative paths against the editor bin directory.
func resolveEditorBinary(cfg *config.Config) (string, error) {
	binPath := cfg.Editor.Binary
	if !filepath.IsAbs(binPath) {
		binPath = filepath.Join(cfg.Editor.BinDir, cfg.Editor.Binary)
	}
	if !fspath.FileExists(binPath) {
		rendered, _ := issue.Get(issue.EditorNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return "", &ExitError{Code: 1, Err: fmt.Errorf("editor binary not found: %s", binPath)}
	}
	return binPath, nil
}

// registryLoadError maps registry load failures to catalog issues.
func registryLoadError(path string, err error) error {
	id := issue.RegistryMalformedId
	if errors.Is(err, registry.ErrNotFound) {
		id = issue.RegistryNotFoundId
	}
	rendered, _ := issue.Get(id).Render("dark")
	fmt.Fprint(os.Stderr, rendered)
	return &ExitError{Code: 1, Err: fmt.Errorf("loading registry %s: %w", path, err)}
}
