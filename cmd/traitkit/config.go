// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/invowk/traitkit/internal/config"
	"github.com/invowk/traitkit/internal/issue"

	"github.com/spf13/cobra"
)

// configKeys lists the keys accepted by `traitkit config set`.
var configKeys = []string{
	"generate.output",
	"generate.package",
	"generate.runtime_import",
	"ui.color_scheme",
	"ui.verbose",
}

// newConfigCommand creates the `traitkit config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage traitkit configuration",
		Long: `Manage traitkit configuration.

Configuration is stored in:
  - Linux: ~/.config/traitkit/config.cue
  - macOS: ~/Library/Application Support/traitkit/config.cue
  - Windows: %APPDATA%\traitkit\config.cue

Every key can be overridden with a TRAITKIT_ environment variable, e.g.
TRAITKIT_GENERATE_OUTPUT=traits_gen.go.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: app.configPath})
			if err != nil {
				return app.fail(issue.ConfigLoadFailedId, err)
			}
			_, err = fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return err
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: app.configPath})
	if err != nil {
		return app.fail(issue.ConfigLoadFailedId, err)
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	cfgPath := app.configPath
	if cfgPath == "" {
		if p, pathErr := config.ConfigFilePath(); pathErr == nil && fileExistsCheck(p) {
			cfgPath = p
		}
	}
	if cfgPath != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	pkg := cfg.Generate.Package.String()
	if pkg == "" {
		pkg = SubtitleStyle.Render("(from declaration file)")
	} else {
		pkg = valueStyle.Render(pkg)
	}

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("generate"))
	fmt.Fprintf(w, "  output: %s\n", valueStyle.Render(cfg.Generate.Output.String()))
	fmt.Fprintf(w, "  package: %s\n", pkg)
	fmt.Fprintf(w, "  runtime_import: %s\n", valueStyle.Render(cfg.Generate.RuntimeImport.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))

	return nil
}

func initConfig(app *App) error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	existed := fileExistsCheck(path)

	if _, err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if existed {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", cfgPath)
	return nil
}

func setConfigValue(ctx context.Context, app *App, key, value string) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: app.configPath})
	if err != nil {
		return app.fail(issue.ConfigLoadFailedId, err)
	}

	switch key {
	case "generate.output":
		cfg.Generate.Output = config.OutputFileName(value)
	case "generate.package":
		cfg.Generate.Package = config.PackageName(value)
	case "generate.runtime_import":
		cfg.Generate.RuntimeImport = config.ImportPath(value)
	case "ui.color_scheme":
		cfg.UI.ColorScheme = config.ColorScheme(value)
	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"
	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: %v", key, configKeys)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
