// SPDX-License-Identifier: MPL-2.0

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"savegate/internal/editor"
	"savegate/internal/fspath"

	"golang.org/x/exp/slices"
)

type (
	// RunRequest is the body of POST /run/{key}. Both fields are optional:
	// without a file the editor runs in pure help/info mode, without extra
	// tokens argv is the registry entry alone.
	RunRequest struct {
		// File is a save-file path relative to the sandboxed save directory.
		File string `json:"file,omitempty"`
		// Extra tokens are appended after the base argv (and after --file).
		Extra []string `json:"extra,omitempty"`
	}

	// RunResponse relays one completed invocation.
	RunResponse struct {
		Cmd      []string `json:"cmd"`
		ExitCode int      `json:"exit_code"`
		Stdout   string   `json:"stdout"`
		Stderr   string   `json:"stderr"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}

	// httpError pairs a client-facing message with a status code.
	httpError struct {
		status int
		msg    string
	}
)

func (e *httpError) Error() string { return e.msg }

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":  "savegate",
		"commands": len(s.reg),
		"endpoints": []string{
			"GET /healthz",
			"GET /commands",
			"POST /run/{key}",
			"POST /run/{key}/text",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleCommands(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.reg)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	result, err := s.dispatch(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &RunResponse{
		Cmd:      result.Cmd,
		ExitCode: result.ExitCode,
		Stdout:   clamp(result.Stdout, s.cfg.MaxOutputChars),
		Stderr:   clamp(result.Stderr, s.cfg.MaxOutputChars),
	})
}

// handleRunText is the text-oriented variant: same dispatch, raw stdout only.
func (s *Server) handleRunText(w http.ResponseWriter, r *http.Request) {
	result, err := s.dispatch(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, clamp(result.Stdout, s.cfg.MaxOutputChars))
}

// dispatch performs the shared lookup/sandbox/execute pipeline.
func (s *Server) dispatch(r *http.Request) (*editor.Result, error) {
	start := time.Now()
	key := r.PathValue("key")

	entry, ok := s.reg.Lookup(key)
	if !ok {
		return nil, &httpError{http.StatusNotFound, fmt.Sprintf("unknown command: %s", key)}
	}

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return nil, &httpError{http.StatusBadRequest, "invalid request body: " + err.Error()}
	}

	args := slices.Clone(entry.Argv)
	if req.File != "" {
		resolved, err := fspath.SafeJoin(s.cfg.SaveDir, req.File)
		if err != nil {
			return nil, &httpError{http.StatusBadRequest, "invalid file path (must be under the save directory)"}
		}
		if !fspath.FileExists(resolved) {
			return nil, &httpError{http.StatusNotFound, "save file not found"}
		}
		args = append(args, "--file", resolved)
	}
	args = append(args, req.Extra...)

	result, err := s.runner.Run(r.Context(), args)
	if err != nil {
		if errors.Is(err, editor.ErrTimeout) {
			s.logger.Warn("command timed out", "key", key)
			return nil, &httpError{http.StatusGatewayTimeout, "command timed out"}
		}
		s.logger.Error("command failed to start", "key", key, "err", err)
		return nil, &httpError{http.StatusInternalServerError, "command failed to start"}
	}

	s.logger.Info("dispatched command",
		"key", key,
		"exit_code", result.ExitCode,
		"duration", time.Since(start))
	return result, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var he *httpError
	if errors.As(err, &he) {
		writeJSON(w, he.status, errorResponse{Error: he.msg})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// clamp truncates s to max characters, appending a marker that names the cap.
// A non-positive max disables truncation. The cut counts characters, not
// bytes, so multibyte output is never split mid-rune.
func clamp(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + fmt.Sprintf("\n\n[output truncated to %d chars]\n", max)
}
