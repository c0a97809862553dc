// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteAndReadFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "dir")
	path := WriteFile(t, dir, "traits.cue", "traits: []\n")

	if path != filepath.Join(dir, "traits.cue") {
		t.Errorf("path = %q", path)
	}
	if got := ReadFile(t, path); got != "traits: []\n" {
		t.Errorf("content = %q", got)
	}

	tmp := WriteFile(t, "", "a.toml", "")
	if _, err := os.Stat(tmp); err != nil {
		t.Errorf("file in fresh temp dir missing: %v", err)
	}
}

// Not parallel: changes the working directory.
func TestMustChdir(t *testing.T) {
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	t.Run("changes and restores", func(t *testing.T) {
		MustChdir(t, dir)
		wd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		if wd != dir {
			t.Errorf("wd = %q, want %q", wd, dir)
		}
	})

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if wd != orig {
		t.Errorf("wd after subtest = %q, want %q", wd, orig)
	}
}
