// SPDX-License-Identifier: MPL-2.0

package gen

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// TypeError is a compile error reported for the package the generated code
// was placed in.
type TypeError struct {
	Pos string
	Msg string
}

func (e TypeError) Error() string {
	if e.Pos == "" || e.Pos == "-" {
		return e.Msg
	}
	return e.Pos + ": " + e.Msg
}

// TypeCheck type-checks the Go package in dir as if src had been written to
// dir/name, without touching the file system. Extra files are overlaid the
// same way, keyed by base name. A type that lacks a behavior of a trait it
// is bound to shows up as a "missing method" error from the proof closure.
//
// The returned error is non-nil only when the package could not be loaded
// at all (no go command, bad directory).
func TypeCheck(ctx context.Context, dir, name string, src []byte, extra map[string][]byte) ([]TypeError, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	overlay := map[string][]byte{filepath.Join(abs, name): src}
	for file, content := range extra {
		overlay[filepath.Join(abs, file)] = content
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Dir:     abs,
		Overlay: overlay,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("load package in %s: %w", abs, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("load package in %s: got %d packages, want 1", abs, len(pkgs))
	}

	errs := make([]TypeError, 0, len(pkgs[0].Errors))
	for _, e := range pkgs[0].Errors {
		errs = append(errs, TypeError{Pos: e.Pos, Msg: e.Msg})
	}
	return errs, nil
}
