// SPDX-License-Identifier: MPL-2.0

package fspath

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSafeJoin(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	tests := []struct {
		name    string
		rel     string
		want    string
		wantErr bool
	}{
		{name: "plain file", rel: "save.sav", want: filepath.Join(base, "save.sav")},
		{name: "nested file", rel: "slot1/save.sav", want: filepath.Join(base, "slot1", "save.sav")},
		{name: "empty resolves to base", rel: "", want: base},
		{name: "dot resolves to base", rel: ".", want: base},
		{name: "internal dotdot stays inside", rel: "slot1/../save.sav", want: filepath.Join(base, "save.sav")},
		{name: "dotdot escape", rel: "../other", wantErr: true},
		{name: "deep dotdot escape", rel: "a/../../../etc/passwd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := SafeJoin(base, tt.rel)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SafeJoin(%q) = %q, want error", tt.rel, got)
				}
				if !errors.Is(err, ErrEscapesBase) {
					t.Errorf("SafeJoin(%q) error = %v, want ErrEscapesBase", tt.rel, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SafeJoin(%q) unexpected error: %v", tt.rel, err)
			}
			if got != tt.want {
				t.Errorf("SafeJoin(%q) = %q, want %q", tt.rel, got, tt.want)
			}
		})
	}
}

func TestSafeJoinSiblingPrefix(t *testing.T) {
	t.Parallel()

	// A sibling directory sharing the base's name as a prefix must not pass
	// the containment check.
	base := filepath.Join(t.TempDir(), "saves")
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := SafeJoin(base, "../saves-evil/x"); !errors.Is(err, ErrEscapesBase) {
		t.Errorf("sibling-prefix path accepted, want ErrEscapesBase, got %v", err)
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "present.sav")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists(regular file) = false, want true")
	}
	if FileExists(filepath.Join(dir, "absent.sav")) {
		t.Error("FileExists(missing file) = true, want false")
	}
	if FileExists(dir) {
		t.Error("FileExists(directory) = true, want false")
	}
}
