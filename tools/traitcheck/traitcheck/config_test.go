// SPDX-License-Identifier: MPL-2.0

package traitcheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Exceptions) != 0 {
			t.Errorf("expected 0 exceptions, got %d", len(cfg.Exceptions))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Exceptions) != 0 {
			t.Errorf("expected 0 exceptions, got %d", len(cfg.Exceptions))
		}
	})

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, `
[settings]
exclude_paths = ["gen/"]

[[exceptions]]
pattern = "Player.Entity"
reason = "test reason"
`)
		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.Settings.ExcludePaths) != 1 || cfg.Settings.ExcludePaths[0] != "gen/" {
			t.Errorf("exclude_paths = %v", cfg.Settings.ExcludePaths)
		}
		if len(cfg.Exceptions) != 1 || cfg.Exceptions[0].Reason != "test reason" {
			t.Errorf("exceptions = %+v", cfg.Exceptions)
		}
	})

	t.Run("missing reason", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "[[exceptions]]\npattern = \"Player.Entity\"\n")
		_, err := loadConfig(path)
		if err == nil || !strings.Contains(err.Error(), "reason is required") {
			t.Errorf("error = %v, want missing reason", err)
		}
	})

	t.Run("invalid TOML", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "[[exceptions]\n")
		if _, err := loadConfig(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "traitcheck.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMatchPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"Player.Entity", "Player.Entity", true},
		{"Player.Entity", "Player.Named", false},
		{"*.Entity", "Player.Entity", true},
		{"Player.*", "Player.Named", true},
		{"game.*.Entity", "game.Player.Entity", true},
		{"game.*.Entity", "Player.Entity", false},
		{"Play*.Entity", "Player.Entity", true},
		{"[.Entity", "Player.Entity", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.name, func(t *testing.T) {
			t.Parallel()
			if got := matchPattern(tt.pattern, tt.name); got != tt.want {
				t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.pattern, tt.name, got, tt.want)
			}
		})
	}
}

func TestConfigFilters(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Settings: Settings{ExcludePaths: []string{"internal/legacy/"}},
		Exceptions: []Exception{
			{Pattern: "Player.Entity", Reason: "r"},
			{Pattern: "other.*.Named", Reason: "r"},
		},
	}

	if !cfg.isExcepted("game.Player.Entity") {
		t.Error("two-segment pattern should match without the package")
	}
	if !cfg.isExcepted("other.Foo.Named") {
		t.Error("three-segment pattern should match with the package")
	}
	if cfg.isExcepted("game.Foo.Named") {
		t.Error("pattern for another package matched")
	}
	if !cfg.isExcludedPath("/src/app/internal/legacy/types.go") {
		t.Error("excluded path not matched")
	}
	if cfg.isExcludedPath("/src/app/internal/game/types.go") {
		t.Error("unrelated path excluded")
	}
}
