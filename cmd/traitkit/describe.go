// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invowk/traitkit/pkg/traitdecl"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

const (
	formatMarkdown = "markdown"
	formatTOML     = "toml"
)

type describeOptions struct {
	format string
	schema bool
	raw    bool
}

func newDescribeCommand(app *App) *cobra.Command {
	var opts describeOptions

	cmd := &cobra.Command{
		Use:   "describe [file]",
		Short: "Show the traits of a declaration file",
		Long: `Show the traits and implementation blocks of a declaration file.

The markdown format is rendered for the terminal. The toml format prints
the declarations as a TOML declaration file, which is a way to convert
traits.cue to traits.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.schema {
				_, err := app.stdout.Write(traitdecl.Schema())
				return err
			}
			return runDescribe(app, resolveDeclarationPath(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", formatMarkdown, "output format: markdown or toml")
	cmd.Flags().BoolVar(&opts.schema, "schema", false, "print the CUE schema of declaration files")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print markdown without terminal rendering")

	return cmd
}

func runDescribe(app *App, path string, opts describeOptions) error {
	if opts.format != formatMarkdown && opts.format != formatTOML {
		return fmt.Errorf("unknown format %q: must be %s or %s", opts.format, formatMarkdown, formatTOML)
	}

	f, id, err := loadDeclarations(path)
	if err != nil {
		return app.fail(id, err)
	}

	if opts.format == formatTOML {
		data, err := f.EncodeTOML()
		if err != nil {
			return fmt.Errorf("encode %s as TOML: %w", path, err)
		}
		_, err = app.stdout.Write(data)
		return err
	}

	md := describeMarkdown(f)
	if opts.raw {
		_, err := fmt.Fprint(app.stdout, md)
		return err
	}
	rendered, err := glamour.Render(md, app.config().UI.ColorScheme.String())
	if err != nil {
		return fmt.Errorf("render description: %w", err)
	}
	_, err = fmt.Fprint(app.stdout, rendered)
	return err
}

// describeMarkdown renders the declarations of f as a markdown document.
func describeMarkdown(f *traitdecl.File) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Traits in %s\n", filepath.Base(f.Source))
	if f.Package != "" {
		fmt.Fprintf(&sb, "\nPackage `%s`.\n", f.Package)
	}

	for _, t := range f.Traits {
		fmt.Fprintf(&sb, "\n## %s\n", t.Name)
		if t.Doc != "" {
			fmt.Fprintf(&sb, "\n%s\n", t.Doc)
		}
		if len(t.Members) == 0 {
			sb.WriteString("\nNo members.\n")
			continue
		}
		sb.WriteString("\n| member | kind | Go |\n|---|---|---|\n")
		for _, md := range t.Members {
			sig := md.GoName()
			if m, err := md.Member(); err == nil {
				sig = m.Signature()
			}
			fmt.Fprintf(&sb, "| `%s` | %s | `%s` |\n", md.Name, md.Kind, sig)
		}
	}

	if len(f.Impls) > 0 {
		sb.WriteString("\n## Implementations\n\n")
		for _, impl := range f.Impls {
			fmt.Fprintf(&sb, "- `%s`: %s", impl.Type, strings.Join(impl.Traits, ", "))
			if impl.Init != "" {
				fmt.Fprintf(&sb, " (init `%s`)", impl.Init)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
