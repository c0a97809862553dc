// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the traitkit command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the traitkit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "traitkit",
		Short: "Traits with state for Go types",
		Long: TitleStyle.Render("traitkit") + SubtitleStyle.Render(" - Traits with state for Go types") + `

traitkit turns trait declarations into Go code: a behavior interface, an
embeddable state struct and trait objects that alias the state of the
instance they were made from.

Traits are declared in 'traits.cue' (or a TOML file) next to the Go types
that implement them. A type that misses a behavior does not compile.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a declaration file:  traitkit init
  2. Generate the Go code:       traitkit generate
  3. Implement the behaviors on your types

` + SubtitleStyle.Render("Examples:") + `
  traitkit generate               Generate code for ./traits.cue
  traitkit check a.cue b.toml     Validate several declaration files
  traitkit describe               Show the declared traits
  traitkit config show            Show current configuration`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.initConfig(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is $HOME/.config/traitkit/config.cue)")

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(
		newGenerateCommand(app),
		newCheckCommand(app),
		newDescribeCommand(app),
		newInitCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
