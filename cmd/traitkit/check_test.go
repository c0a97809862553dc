// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const adhocTOML = `package = "adhoc"

[[traits]]
name = "A"
members = [{ name = "a_method", kind = "behavior" }]

[[traits]]
name = "B"
members = [{ name = "b_method", kind = "behavior", type = "int", params = ["int"] }]

[[impls]]
type = "Foo"
traits = ["A", "B"]
`

func TestCheckMergesFiles(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	cuePath := writeFile(t, "traits.cue", entityCUE)
	tomlPath := writeFile(t, "traits.toml", adhocTOML)

	if err := app.run("check", cuePath, tomlPath); err != nil {
		t.Fatalf("check error = %v\nstderr:\n%s", err, app.err.String())
	}

	out := app.out.String()
	for _, want := range []string{
		"A: 0 state, 1 behavior",
		"B: 0 state, 1 behavior",
		"Entity: 1 state, 1 behavior",
		"Player implements Entity",
		"Foo implements A, B",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stdout missing %q:\n%s", want, out)
		}
	}
}

func TestCheckReportsEveryFile(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	good := writeFile(t, "traits.cue", entityCUE)
	missing := filepath.Join(t.TempDir(), "traits.cue")
	broken := writeFile(t, "traits.cue", `traits: [{name: "A", members: [{name: "x", kind: "other"}]}]`)

	err := app.run("check", good, missing, broken)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}
	if !strings.Contains(exitErr.Error(), "2 problem(s)") {
		t.Errorf("error = %q", exitErr.Error())
	}
	stderr := app.err.String()
	if !strings.Contains(stderr, missing) || !strings.Contains(stderr, broken) {
		t.Errorf("stderr does not name both bad files:\n%s", stderr)
	}
	if !strings.Contains(app.out.String(), "Entity") {
		t.Error("the valid file was not summarized")
	}
}

func TestCheckConflictingTraits(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, nil)
	a := writeFile(t, "a.cue", `traits: [{name: "A", members: [{name: "x", kind: "state", type: "int"}]}]`)
	b := writeFile(t, "b.cue", `traits: [{name: "A", members: [{name: "x", kind: "state", type: "string"}]}]`)

	err := app.run("check", a, b)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if !strings.Contains(app.err.String(), "trait A already declared with a different member list") {
		t.Errorf("stderr does not report the conflict:\n%s", app.err.String())
	}
}

func TestCheckBuild(t *testing.T) {
	t.Parallel()

	if testing.Short() {
		t.Skip("skipping type check in short mode")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go command not available")
	}

	t.Run("complete", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, nil)
		path := filepath.Join("..", "..", "examples", "entity", "traits.cue")

		if err := app.run("check", "--build", path); err != nil {
			t.Fatalf("check --build error = %v\nstderr:\n%s", err, app.err.String())
		}
		if !strings.Contains(app.out.String(), "builds") {
			t.Errorf("stdout = %q", app.out.String())
		}
	})

	t.Run("missing behavior", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, nil)
		path := filepath.Join("..", "..", "internal", "gen", "testdata", "partial", "traits.cue")

		err := app.run("check", "--build", path)
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("error = %v, want *ExitError", err)
		}
		if !strings.Contains(app.err.String(), "missing method TestMethod") {
			t.Errorf("stderr does not name the missing behavior:\n%s", app.err.String())
		}
	})
}
