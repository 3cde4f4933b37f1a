// SPDX-License-Identifier: MPL-2.0

// Package server exposes the command registry over HTTP. Each request looks
// up a dotted command key in the read-only registry loaded at startup, builds
// argv from the entry plus optional caller-supplied file and extra tokens,
// executes the save editor, and relays the captured output. Handlers are
// independent: every request spawns its own process with its own timeout, and
// nothing mutable is shared beyond the registry value.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"savegate/internal/editor"
	"savegate/internal/registry"

	"github.com/charmbracelet/log"
)

// Runner executes the save editor with the given args and captures output.
// It is the single seam between the HTTP layer and process execution;
// *editor.Editor is the production implementation.
type Runner interface {
	Run(ctx context.Context, args []string) (*editor.Result, error)
}

type (
	// Config holds the dispatcher settings.
	Config struct {
		// ListenAddr is the bind address, e.g. ":8080".
		ListenAddr string
		// SaveDir is the sandbox root for caller-supplied file paths.
		SaveDir string
		// MaxOutputChars caps relayed stdout/stderr; 0 disables the cap.
		MaxOutputChars int
	}

	// Server is the HTTP dispatcher. Create with New, run with Start, stop
	// with Stop. A Server is single-use.
	Server struct {
		cfg    Config
		reg    registry.Registry
		runner Runner
		logger *log.Logger

		httpServer *http.Server
		listener   net.Listener
		addr       string
	}
)

// New creates a Server over an immutable registry and a runner.
// A nil logger discards all output.
func New(cfg Config, reg registry.Registry, runner Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		cfg:    cfg,
		reg:    reg,
		runner: runner,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /commands", s.handleCommands)
	mux.HandleFunc("POST /run/{key}", s.handleRun)
	mux.HandleFunc("POST /run/{key}/text", s.handleRunText)

	s.httpServer = &http.Server{
		Handler:     mux,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: responses wait on editor invocations, which are
		// already bounded by the runner's own timeout.
	}

	return s
}

// Handler returns the routing handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start binds the listen address and begins serving. Non-blocking.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.addr = listener.Addr().String()

	go func() {
		if err := s.httpServer.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server stopped unexpectedly", "err", err)
		}
	}()

	s.logger.Info("listening", "addr", s.addr, "commands", len(s.reg))
	return nil
}

// Addr returns the bound address (useful when ListenAddr used port 0).
func (s *Server) Addr() string {
	return s.addr
}

// Stop gracefully shuts the server down, waiting for in-flight requests
// until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
