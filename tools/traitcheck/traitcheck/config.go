// SPDX-License-Identifier: MPL-2.0

package traitcheck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type (
	// Config is the TOML file passed with -config.
	//
	//	[settings]
	//	exclude_paths = ["internal/legacy/"]
	//
	//	[[exceptions]]
	//	pattern = "Player.Entity"
	//	reason = "migrating to the generated state struct"
	Config struct {
		Settings   Settings    `toml:"settings"`
		Exceptions []Exception `toml:"exceptions"`
	}

	// Settings configures which files are analyzed.
	Settings struct {
		// ExcludePaths lists path substrings; matching files are skipped.
		ExcludePaths []string `toml:"exclude_paths"`
	}

	// Exception silences the checks of one trait on one type.
	Exception struct {
		// Pattern is Type.Trait or pkg.Type.Trait; * matches one segment
		// and each segment may use filepath.Match globs.
		Pattern string `toml:"pattern"`
		// Reason documents why the exception exists.
		Reason string `toml:"reason"`
	}
)

// loadConfig reads the config at path. An empty path or a missing file
// yields an empty config.
func loadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}
	for i, exc := range cfg.Exceptions {
		if exc.Reason == "" {
			return nil, fmt.Errorf("exception %d (%s): reason is required", i, exc.Pattern)
		}
	}
	return &cfg, nil
}

// isExcepted reports whether pkg.Type.Trait matches an exception. Two
// segment patterns match without the package.
func (c *Config) isExcepted(qualifiedName string) bool {
	stripped := qualifiedName
	if _, rest, ok := strings.Cut(qualifiedName, "."); ok {
		stripped = rest
	}
	for _, exc := range c.Exceptions {
		if matchPattern(exc.Pattern, qualifiedName) || matchPattern(exc.Pattern, stripped) {
			return true
		}
	}
	return false
}

func (c *Config) isExcludedPath(filePath string) bool {
	for _, p := range c.Settings.ExcludePaths {
		if strings.Contains(filepath.ToSlash(filePath), p) {
			return true
		}
	}
	return false
}

// matchPattern matches dot separated segments; * matches any one segment.
func matchPattern(pattern, name string) bool {
	patParts := strings.Split(pattern, ".")
	nameParts := strings.Split(name, ".")
	if len(patParts) != len(nameParts) {
		return false
	}
	for i, pp := range patParts {
		if pp == "*" {
			continue
		}
		if ok, err := filepath.Match(pp, nameParts[i]); err != nil || !ok {
			return false
		}
	}
	return true
}
