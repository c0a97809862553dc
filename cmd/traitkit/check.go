// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invowk/traitkit/internal/gen"
	"github.com/invowk/traitkit/internal/issue"
	"github.com/invowk/traitkit/pkg/traitdecl"

	"github.com/spf13/cobra"
)

type checkOptions struct {
	build bool
}

func newCheckCommand(app *App) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate declaration files",
		Long: `Validate one or more declaration files and merge their traits into a
single catalog. A trait declared in several files must be declared
identically everywhere.

With --build, the code for each file is generated in memory and the Go
package next to it is type-checked, so that types missing a behavior of
a trait they are bound to are reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{traitdecl.DefaultFileName}
			}
			return runCheck(cmd.Context(), app, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.build, "build", false, "type-check the Go package of every file against the generated code")

	return cmd
}

func runCheck(ctx context.Context, app *App, paths []string, opts checkOptions) error {
	var (
		files  []*traitdecl.File
		failed int
		lastID issue.Id
	)
	for _, path := range paths {
		f, id, err := loadDeclarations(path)
		if err != nil {
			fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("✗"), formatErrorForDisplay(err, app.verbose))
			failed++
			lastID = id
			continue
		}
		files = append(files, f)
	}

	if len(files) > 0 {
		cat, err := traitdecl.Merge(files...)
		if err != nil {
			fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("✗"), err)
			failed++
			lastID = issue.DeclarationInvalidId
		} else {
			for _, name := range cat.Names() {
				t, _ := cat.Lookup(name)
				fmt.Fprintf(app.stdout, "%s %s: %d state, %d behavior\n",
					SuccessStyle.Render("✓"), TitleStyle.Render(name), len(t.States()), len(t.Behaviors()))
			}
			for _, f := range files {
				for _, impl := range f.Impls {
					fmt.Fprintf(app.stdout, "  %s implements %s\n", CmdStyle.Render(impl.Type), strings.Join(impl.Traits, ", "))
				}
			}
		}
	}

	if opts.build && failed == 0 {
		for _, f := range files {
			n, err := checkBuild(ctx, app, f)
			if err != nil {
				return err
			}
			if n > 0 {
				failed++
				lastID = issue.ConformanceFailedId
			}
		}
	}

	if failed > 0 {
		app.renderIssue(lastID)
		return &ExitError{Code: 1, Err: fmt.Errorf("%d problem(s) found", failed)}
	}
	return nil
}

// checkBuild type-checks the package of f with the generated code overlaid
// and prints the type errors. It returns their number.
func checkBuild(ctx context.Context, app *App, f *traitdecl.File) (int, error) {
	cfg := app.config()
	src, err := gen.Generate(f, gen.Options{
		Package:       cfg.Generate.Package.String(),
		RuntimeImport: cfg.Generate.RuntimeImport.String(),
		Source:        filepath.Base(f.Source),
	})
	if err != nil {
		return 0, issue.WrapWithContext(err, "generate code", f.Source)
	}

	dir := filepath.Dir(f.Source)
	app.Logger.Debug("type-checking package", "dir", dir)
	typeErrs, err := gen.TypeCheck(ctx, dir, cfg.Generate.Output.String(), src, nil)
	if err != nil {
		return 0, issue.WrapWithContext(err, "type-check package", dir)
	}
	for _, e := range typeErrs {
		fmt.Fprintf(app.stderr, "%s %s\n", ErrorStyle.Render("✗"), e)
	}
	if len(typeErrs) == 0 {
		fmt.Fprintf(app.stdout, "%s %s builds\n", SuccessStyle.Render("✓"), dir)
	}
	return len(typeErrs), nil
}
