// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/invowk/traitkit/internal/issue"
	"github.com/invowk/traitkit/pkg/traitdecl"

	"github.com/spf13/cobra"
)

// starter declaration files for `traitkit init`
var initTemplates = map[string]string{
	"entity": `// Trait declarations for traitkit. Run 'traitkit generate' after editing.

package: "%s"

traits: [{
	name: "Entity"
	doc:  "An Entity has health and can describe itself."
	members: [
		{name: "health", kind: "state", type: "int"},
		{name: "get_status", kind: "behavior", type: "string"},
	]
}]

impls: [{type: "Player", traits: ["Entity"], init: "Init"}]
`,
	"adhoc": `// Trait declarations for traitkit. Run 'traitkit generate' after editing.

package: "%s"

traits: [
	{
		name: "A"
		members: [{name: "a_method", kind: "behavior"}]
	},
	{
		name: "B"
		members: [{name: "b_method", kind: "behavior", type: "int", params: ["int"]}]
	},
]

impls: [
	{type: "Foo", traits: ["A", "B"]},
	{type: "Bar", traits: ["A", "B"]},
]
`,
}

type initOptions struct {
	template string
	pkg      string
	force    bool
}

func newInitCommand(app *App) *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create a starter declaration file",
		Long: `Create a starter declaration file (default traits.cue). A file name
ending in .toml gets the same declarations in TOML.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(app, resolveDeclarationPath(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "entity", "starter template: "+strings.Join(templateNames(), ", "))
	cmd.Flags().StringVar(&opts.pkg, "package", "", "package name (default: the directory name)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing file")

	return cmd
}

func templateNames() []string {
	names := make([]string, 0, len(initTemplates))
	for name := range initTemplates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// renderTemplate returns the starter file for name. For .toml paths the CUE
// template is parsed and re-encoded, so both formats carry the same
// declarations.
func renderTemplate(name, pkg, path string) ([]byte, error) {
	tmpl, ok := initTemplates[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q: must be one of %s", name, strings.Join(templateNames(), ", "))
	}
	content := []byte(fmt.Sprintf(tmpl, pkg))
	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		return content, nil
	}

	f, err := traitdecl.Parse(content, name+".cue")
	if err != nil {
		return nil, err
	}
	return f.EncodeTOML()
}

// packageFor derives a package name from the directory that will hold path.
func packageFor(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "main"
	}
	name := strings.ToLower(strings.NewReplacer("-", "", ".", "", " ", "").Replace(filepath.Base(filepath.Dir(abs))))
	if !token.IsIdentifier(name) {
		return "main"
	}
	return name
}

func runInit(app *App, path string, opts initOptions) error {
	if _, err := os.Stat(path); err == nil && !opts.force {
		return issue.NewErrorContext().
			WithOperation("create declaration file").
			WithResource(path).
			WithSuggestion("Use --force to overwrite it").
			Wrap(os.ErrExist).
			BuildError()
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	pkg := opts.pkg
	if pkg == "" {
		pkg = packageFor(path)
	}
	content, err := renderTemplate(opts.template, pkg, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return issue.WrapWithContext(err, "create declaration file", path)
	}

	app.Logger.Debug("created declaration file", "path", path, "template", opts.template, "package", pkg)
	fmt.Fprintf(app.stdout, "%s Created %s\n", SuccessStyle.Render("✓"), path)
	fmt.Fprintf(app.stdout, "  Next: %s\n", CmdStyle.Render("traitkit generate "+path))
	return nil
}
