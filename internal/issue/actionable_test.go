// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such file")
	err := NewErrorContext().
		WithOperation("load registry file").
		WithResource("commands.json").
		Wrap(cause).
		BuildError()

	want := "failed to load registry file: commands.json: no such file"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the cause")
	}
}

func TestBuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().WithResource("x").BuildError(); err != nil {
		t.Errorf("BuildError without operation = %v, want nil", err)
	}
}

func TestFormatSuggestionsAndChain(t *testing.T) {
	t.Parallel()

	inner := errors.New("root cause")
	wrapped := fmt.Errorf("middle: %w", inner)
	ae := NewErrorContext().
		WithOperation("start server").
		WithSuggestion("Check the listen address").
		WithSuggestion("Check nothing else is bound to the port").
		Wrap(wrapped).
		Build()

	plain := ae.Format(false)
	if !strings.Contains(plain, "• Check the listen address") {
		t.Errorf("Format(false) missing suggestion:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain:") {
		t.Error("Format(false) includes the error chain")
	}

	verbose := ae.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "root cause") {
		t.Errorf("Format(true) missing chain:\n%s", verbose)
	}
}
