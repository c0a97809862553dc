// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/traitkit/internal/config"
	"github.com/invowk/traitkit/internal/gen"
	"github.com/invowk/traitkit/internal/issue"
	"github.com/invowk/traitkit/pkg/traitdecl"
)

func TestGenerateWritesNextToDeclarations(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	path := writeFile(t, "traits.cue", entityCUE)

	if err := app.run("generate", path); err != nil {
		t.Fatalf("generate error = %v", err)
	}

	target := filepath.Join(filepath.Dir(path), config.DefaultOutputFileName)
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("generated file not written: %v", err)
	}

	f, err := traitdecl.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want, err := gen.Generate(f, gen.Options{Source: "traits.cue"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("written code differs from gen.Generate output")
	}
	if !strings.Contains(app.out.String(), "Generated "+target) {
		t.Errorf("stdout = %q", app.out.String())
	}
}

func TestGenerateFlags(t *testing.T) {
	t.Parallel()

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, nil)
		path := writeFile(t, "traits.cue", entityCUE)

		if err := app.run("generate", "--stdout", "--package", "game", path); err != nil {
			t.Fatalf("generate error = %v", err)
		}
		out := app.out.String()
		if !strings.Contains(out, "// Code generated by traitkit from traits.cue. DO NOT EDIT.") {
			t.Errorf("missing header:\n%s", out)
		}
		if !strings.Contains(out, "package game") {
			t.Errorf("--package not applied:\n%s", out)
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(path), config.DefaultOutputFileName)); !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("--stdout wrote a file, stat err = %v", err)
		}
	})

	t.Run("output", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, nil)
		path := writeFile(t, "traits.cue", entityCUE)

		if err := app.run("generate", "-o", "entity_gen.go", path); err != nil {
			t.Fatalf("generate error = %v", err)
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(path), "entity_gen.go")); err != nil {
			t.Errorf("output file missing: %v", err)
		}
	})

	t.Run("invalid output", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, nil)
		path := writeFile(t, "traits.cue", entityCUE)

		err := app.run("generate", "-o", "traits_test.go", path)
		if !errors.Is(err, config.ErrInvalidOutputFileName) {
			t.Errorf("error = %v, want ErrInvalidOutputFileName", err)
		}
	})

	t.Run("config output", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Generate.Output = "traits_gen.go"
		cfg.Generate.Package = "configured"
		app := newTestApp(t, staticProvider{cfg: cfg})
		path := writeFile(t, "traits.cue", entityCUE)

		if err := app.run("generate", path); err != nil {
			t.Fatalf("generate error = %v", err)
		}
		data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "traits_gen.go"))
		if err != nil {
			t.Fatalf("configured output missing: %v", err)
		}
		if !bytes.Contains(data, []byte("package configured")) {
			t.Error("generate.package not applied")
		}
	})
}

func TestPackageFromFlagWhenDeclarationHasNone(t *testing.T) {
	t.Parallel()

	noPkg := `traits: [{name: "A", members: [{name: "x", kind: "behavior"}]}]` + "\n"

	app := newTestApp(t, nil)
	path := writeFile(t, "traits.cue", noPkg)
	if err := app.run("generate", "--stdout", path); !errors.Is(err, gen.ErrNoPackage) {
		t.Fatalf("generate without package error = %v, want ErrNoPackage", err)
	}

	app = newTestApp(t, nil)
	if err := app.run("generate", "--stdout", "--package", "given", path); err != nil {
		t.Fatalf("generate --package error = %v", err)
	}
	if !strings.Contains(app.out.String(), "package given") {
		t.Errorf("--package not applied:\n%s", app.out.String())
	}

	app = newTestApp(t, nil)
	if err := app.run("describe", "--schema"); err != nil {
		t.Fatalf("describe --schema error = %v", err)
	}
	if schema := app.out.String(); !strings.Contains(schema, "--package") || strings.Contains(schema, "Defaults to the directory name") {
		t.Errorf("schema documents package resolution wrongly:\n%s", schema)
	}
}

func TestGenerateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing file",
			file:    "",
			wantErr: fs.ErrNotExist,
			wantMsg: "traitkit init",
		},
		{
			name: "duplicate member",
			file: "traits.cue",
			content: `package: "demo"
traits: [{name: "A", members: [
	{name: "x", kind: "state", type: "int"},
	{name: "x", kind: "behavior"},
]}]
`,
			wantErr: traitdecl.ErrDuplicateMember,
		},
		{
			name:    "no package",
			file:    "traits.cue",
			content: `traits: [{name: "A", members: [{name: "x", kind: "behavior"}]}]` + "\n",
			wantErr: gen.ErrNoPackage,
			wantMsg: "--package",
		},
		{
			name:    "unsupported format",
			file:    "traits.yaml",
			content: "traits: []\n",
			wantErr: traitdecl.ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			app := newTestApp(t, nil)

			path := filepath.Join(t.TempDir(), "traits.cue")
			if tt.file != "" {
				path = writeFile(t, tt.file, tt.content)
			}

			err := app.run("generate", path)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error %T is not actionable", err)
			}
			if tt.wantMsg != "" && !strings.Contains(ae.Format(false), tt.wantMsg) {
				t.Errorf("Format() = %q, want it to mention %q", ae.Format(false), tt.wantMsg)
			}
		})
	}
}

func TestGenerateRendersIssue(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	if err := app.run("generate", filepath.Join(t.TempDir(), "traits.cue")); err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(app.err.String(), "No trait declaration file found") {
		t.Errorf("stderr does not carry the issue:\n%s", app.err.String())
	}
}

func TestDeclarationIssue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"not found", fs.ErrNotExist, issue.DeclarationNotFoundId},
		{"invalid", &traitdecl.DeclError{Err: traitdecl.ErrUnknownTrait}, issue.DeclarationInvalidId},
		{"parse", errors.New("traits.0.members: conflicting values"), issue.DeclarationParseErrorId},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := declarationIssue(tt.err); got != tt.want {
				t.Errorf("declarationIssue() = %v, want %v", got, tt.want)
			}
		})
	}
}
