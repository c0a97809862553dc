// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invowk/traitkit/internal/config"
	"github.com/invowk/traitkit/internal/gen"
	"github.com/invowk/traitkit/internal/issue"

	"github.com/spf13/cobra"
)

type generateOptions struct {
	stdout  bool
	pkg     string
	output  string
	runtime string
}

func newGenerateCommand(app *App) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Generate Go code for a declaration file",
		Long: `Generate the trait schemas, behavior interfaces, state structs,
constructors and conformance bindings declared in a CUE or TOML file.

The output is written next to the declaration file, as generate.output
from the configuration (default zz_traits_gen.go).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), app, resolveDeclarationPath(args), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "print the generated code instead of writing it")
	cmd.Flags().StringVar(&opts.pkg, "package", "", "package clause of the generated file (overrides the declaration file)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "generated file name (overrides generate.output)")
	cmd.Flags().StringVar(&opts.runtime, "runtime-import", "", "import path of the trait runtime (overrides generate.runtime_import)")

	return cmd
}

func runGenerate(ctx context.Context, app *App, path string, opts generateOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg := app.config()

	f, id, err := loadDeclarations(path)
	if err != nil {
		return app.fail(id, err)
	}

	src, err := gen.Generate(f, gen.Options{
		Package:       cmp.Or(opts.pkg, cfg.Generate.Package.String()),
		RuntimeImport: cmp.Or(opts.runtime, cfg.Generate.RuntimeImport.String()),
		Source:        filepath.Base(path),
	})
	if err != nil {
		ec := issue.NewErrorContext().
			WithOperation("generate code").
			WithResource(path)
		if errors.Is(err, gen.ErrNoPackage) {
			ec.WithSuggestion("Add a 'package' field to the declaration file or pass --package")
		} else {
			ec.WithSuggestion("Check the Go types named in member and param declarations")
		}
		return app.fail(issue.DeclarationInvalidId, ec.Wrap(err).BuildError())
	}

	if opts.stdout {
		_, err := app.stdout.Write(src)
		return err
	}

	output := config.OutputFileName(cmp.Or(opts.output, cfg.Generate.Output.String()))
	if ok, errs := output.IsValid(); !ok {
		return errs[0]
	}
	target := filepath.Join(filepath.Dir(path), output.String())

	if err := os.WriteFile(target, src, 0o644); err != nil {
		return app.fail(issue.GenerateOutputFailedId, issue.NewErrorContext().
			WithOperation("write generated code").
			WithResource(target).
			WithSuggestion("Use --stdout to inspect the generated code").
			Wrap(err).
			BuildError())
	}

	app.Logger.Debug("generated", "file", target, "traits", len(f.Traits), "impls", len(f.Impls))
	fmt.Fprintf(app.stdout, "%s Generated %s (%d traits, %d implementation blocks)\n",
		SuccessStyle.Render("✓"), target, len(f.Traits), len(f.Impls))
	return nil
}
