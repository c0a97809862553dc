// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/invowk/traitkit/internal/config"
	"github.com/invowk/traitkit/internal/issue"

	"github.com/charmbracelet/log"
)

type (
	// App wires the services shared by all commands. Every command handler
	// receives the App and writes through its writers, so tests can run the
	// full command tree against buffers.
	App struct {
		Config config.Provider
		Logger *log.Logger

		stdout io.Writer
		stderr io.Writer

		// set by the root persistent flags
		verbose    bool
		configPath string

		// loaded by the root pre-run hook
		cfg *config.Config
	}

	// Dependencies are the injection points of NewApp. Nil fields get the
	// production defaults.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	logger := log.NewWithOptions(deps.Stderr, log.Options{
		Prefix: config.AppName,
		Level:  log.InfoLevel,
	})

	return &App{
		Config: deps.Config,
		Logger: logger,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// initConfig loads the configuration for one invocation. A broken config
// file is reported as a warning and the defaults are used, so that
// `traitkit config ...` stays usable to repair it.
func (a *App) initConfig(ctx context.Context) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg

	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}
	if a.verbose {
		a.Logger.SetLevel(log.DebugLevel)
	}
	a.Logger.Debug("configuration loaded",
		"output", cfg.Generate.Output,
		"runtime_import", cfg.Generate.RuntimeImport,
		"color_scheme", cfg.UI.ColorScheme)
}

// config returns the configuration loaded by initConfig, or the defaults
// when a command runs without the root pre-run hook.
func (a *App) config() *config.Config {
	if a.cfg == nil {
		return config.DefaultConfig()
	}
	return a.cfg
}

// renderIssue prints the catalog entry for id to stderr using the
// configured glamour style.
func (a *App) renderIssue(id issue.Id) {
	is := issue.Get(id)
	if is == nil {
		return
	}
	rendered, err := is.Render(a.config().UI.ColorScheme.String())
	if err != nil {
		a.Logger.Debug("render issue", "id", id, "error", err)
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// fail renders the issue for id and returns err unchanged.
func (a *App) fail(id issue.Id, err error) error {
	a.renderIssue(id)
	return err
}

// formatErrorForDisplay formats an error for user display. ActionableErrors
// use their own Format; verbose mode adds the error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
