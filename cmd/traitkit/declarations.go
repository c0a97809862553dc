// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/invowk/traitkit/internal/issue"
	"github.com/invowk/traitkit/pkg/traitdecl"
)

// resolveDeclarationPath returns the declaration file named by args, or
// traits.cue in the working directory.
func resolveDeclarationPath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return traitdecl.DefaultFileName
}

// loadDeclarations loads and validates the declaration file at path. Errors
// are actionable and tagged with the issue that explains them.
func loadDeclarations(path string) (*traitdecl.File, issue.Id, error) {
	f, err := traitdecl.Load(path)
	if err != nil {
		return nil, declarationIssue(err), declarationError(path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, issue.DeclarationInvalidId, declarationError(path, err)
	}
	return f, 0, nil
}

func declarationIssue(err error) issue.Id {
	if errors.Is(err, fs.ErrNotExist) {
		return issue.DeclarationNotFoundId
	}
	var declErr *traitdecl.DeclError
	if errors.As(err, &declErr) {
		return issue.DeclarationInvalidId
	}
	return issue.DeclarationParseErrorId
}

func declarationError(path string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("load trait declarations").
		WithResource(path)

	switch declarationIssue(err) {
	case issue.DeclarationNotFoundId:
		ctx.WithSuggestions(
			"Run 'traitkit init' to create "+filepath.Base(path),
			"Pass the declaration file as an argument",
		)
	case issue.DeclarationInvalidId:
		ctx.WithSuggestion("Member names must be unique per trait, also after conversion to Go names")
		ctx.WithSuggestion("Every trait named in an implementation block must be declared")
	default:
		if errors.Is(err, traitdecl.ErrUnsupportedFormat) {
			ctx.WithSuggestion("Use a .cue or .toml file")
		} else {
			ctx.WithSuggestion("Run 'traitkit describe --schema' to see the expected structure")
		}
	}
	return ctx.Wrap(err).BuildError()
}
