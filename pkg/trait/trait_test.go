// SPDX-License-Identifier: MPL-2.0

package trait

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestDeclare(t *testing.T) {
	t.Parallel()

	t.Run("keeps member order", func(t *testing.T) {
		t.Parallel()
		tr, err := Declare("Entity",
			State("health", "int"),
			Behavior("get_status", "string"),
			State("armor", "int"),
		)
		if err != nil {
			t.Fatalf("Declare() error = %v", err)
		}
		var names []string
		for _, m := range tr.Members() {
			names = append(names, m.Name)
		}
		if want := []string{"health", "get_status", "armor"}; !slices.Equal(names, want) {
			t.Errorf("Members() = %v, want %v", names, want)
		}
		if got := len(tr.States()); got != 2 {
			t.Errorf("States() len = %d, want 2", got)
		}
		if got := len(tr.Behaviors()); got != 1 {
			t.Errorf("Behaviors() len = %d, want 1", got)
		}
	})

	t.Run("duplicate member name", func(t *testing.T) {
		t.Parallel()
		_, err := Declare("Testable",
			Behavior("test_method", ""),
			Behavior("test_method", "int", "int"),
		)
		var dup *DuplicateMemberError
		if !errors.As(err, &dup) {
			t.Fatalf("Declare() error = %v, want DuplicateMemberError", err)
		}
		if dup.Name != "test_method" {
			t.Errorf("duplicate name = %q", dup.Name)
		}
		if !errors.Is(err, ErrDuplicateMember) {
			t.Errorf("error does not wrap ErrDuplicateMember")
		}
	})

	t.Run("members colliding on Go name", func(t *testing.T) {
		t.Parallel()
		_, err := Declare("Entity", Behavior("get_status", "string"), Behavior("getStatus", "string"))
		if !errors.Is(err, ErrDuplicateMember) {
			t.Fatalf("Declare() error = %v, want ErrDuplicateMember", err)
		}
		if !strings.Contains(err.Error(), "GetStatus") {
			t.Errorf("error %q does not name the Go identifier", err)
		}
	})

	t.Run("state and behavior share a name", func(t *testing.T) {
		t.Parallel()
		_, err := Declare("Entity", State("status", "string"), Behavior("status", "string"))
		if !errors.Is(err, ErrDuplicateMember) {
			t.Fatalf("Declare() error = %v, want ErrDuplicateMember", err)
		}
	})

	t.Run("invalid trait name", func(t *testing.T) {
		t.Parallel()
		_, err := Declare("not a name")
		if !errors.Is(err, ErrInvalidTrait) {
			t.Fatalf("Declare() error = %v, want ErrInvalidTrait", err)
		}
	})

	t.Run("reports every invalid member", func(t *testing.T) {
		t.Parallel()
		_, err := Declare("Broken", State("a", ""), Behavior("b-c", ""))
		if err == nil {
			t.Fatal("Declare() error = nil")
		}
		if got := strings.Count(err.Error(), "invalid"); got != 2 {
			t.Errorf("expected 2 member errors, got %d in %q", got, err)
		}
	})

	t.Run("empty trait", func(t *testing.T) {
		t.Parallel()
		tr, err := Declare("Marker")
		if err != nil {
			t.Fatalf("Declare() error = %v", err)
		}
		if len(tr.Members()) != 0 {
			t.Errorf("Members() = %v, want none", tr.Members())
		}
	})
}

func TestMustDeclarePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustDeclare did not panic on a duplicate member")
		}
	}()
	MustDeclare("A", Behavior("a_method", ""), Behavior("a_method", ""))
}

func TestTraitMembersAreCopies(t *testing.T) {
	t.Parallel()

	tr := MustDeclare("B", Behavior("b_method", "int", "int"))
	members := tr.Members()
	members[0].Params[0] = "string"
	members[0].Name = "other"

	m, ok := tr.Member("b_method")
	if !ok {
		t.Fatal("Member(b_method) not found")
	}
	if m.Params[0] != "int" {
		t.Errorf("trait schema was mutated through Members(): %v", m.Params)
	}
}

func TestTraitEqual(t *testing.T) {
	t.Parallel()

	a := MustDeclare("A", Behavior("a_method", ""))
	same := MustDeclare("A", Behavior("a_method", ""))
	renamed := MustDeclare("C", Behavior("a_method", ""))
	reshaped := MustDeclare("A", Behavior("a_method", "int"))

	if !a.Equal(same) {
		t.Error("identical declarations are not Equal")
	}
	if a.Equal(renamed) {
		t.Error("traits with different names are Equal")
	}
	if a.Equal(reshaped) {
		t.Error("traits with different members are Equal")
	}
	if a.Equal(nil) {
		t.Error("trait Equal(nil) = true")
	}
}

func TestTraitString(t *testing.T) {
	t.Parallel()

	tr := MustDeclare("Entity", State("health", "int"), Behavior("get_status", "string"))
	want := "trait Entity {\n\tHealth int\n\tGetStatus() string\n}"
	if got := tr.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	c := NewCatalog()
	if err := c.Add(MustDeclare("B", Behavior("b_method", "int", "int"))); err != nil {
		t.Fatalf("Add(B) error = %v", err)
	}
	if err := c.Add(MustDeclare("A", Behavior("a_method", ""))); err != nil {
		t.Fatalf("Add(A) error = %v", err)
	}

	if err := c.Add(MustDeclare("A", Behavior("a_method", ""))); err != nil {
		t.Errorf("identical redeclaration error = %v, want nil", err)
	}

	err := c.Add(MustDeclare("A", Behavior("a_method", ""), State("extra", "int")))
	var conflict *TraitConflictError
	if !errors.As(err, &conflict) || conflict.Name != "A" {
		t.Errorf("conflicting redeclaration error = %v, want TraitConflictError for A", err)
	}

	if err := c.Add(nil); !errors.Is(err, ErrNilTrait) {
		t.Errorf("Add(nil) error = %v, want ErrNilTrait", err)
	}

	if got := c.Names(); !slices.Equal(got, []string{"A", "B"}) {
		t.Errorf("Names() = %v", got)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, ok := c.Lookup("B"); !ok {
		t.Error("Lookup(B) not found")
	}
	if _, ok := c.Lookup("Z"); ok {
		t.Error("Lookup(Z) found")
	}
}
