// SPDX-License-Identifier: MPL-2.0

package traitdecl

import (
	"errors"
	"strings"
	"testing"

	"github.com/invowk/traitkit/pkg/trait"
)

func state(name, typ string) MemberDecl { return MemberDecl{Name: name, Kind: "state", Type: typ} }

func behavior(name, returns string, params ...string) MemberDecl {
	return MemberDecl{Name: name, Kind: "behavior", Type: returns, Params: params}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	entity := TraitDecl{Name: "Entity", Members: []MemberDecl{state("health", "int"), behavior("get_status", "string")}}
	named := TraitDecl{Name: "Named", Members: []MemberDecl{state("name", "string")}}
	healthy := TraitDecl{Name: "Healthy", Members: []MemberDecl{state("Health", "float64")}}

	tests := []struct {
		name     string
		file     File
		want     error
		wantPath string
	}{
		{
			name: "valid",
			file: File{Traits: []TraitDecl{entity, named}, Impls: []ImplDecl{{Type: "Player", Traits: []string{"Entity", "Named"}, Init: "Init"}}},
		},
		{
			name:     "duplicate trait",
			file:     File{Traits: []TraitDecl{entity, entity}},
			want:     ErrDuplicateTrait,
			wantPath: "traits[1].name",
		},
		{
			name:     "duplicate member name",
			file:     File{Traits: []TraitDecl{{Name: "Broken", Members: []MemberDecl{behavior("run", ""), behavior("run", "")}}}},
			want:     ErrDuplicateMember,
			wantPath: "traits[0].members[1]",
		},
		{
			name:     "duplicate member Go name",
			file:     File{Traits: []TraitDecl{{Name: "Broken", Members: []MemberDecl{behavior("get_value", "int"), behavior("GetValue", "int")}}}},
			want:     ErrDuplicateMember,
			wantPath: "traits[0].members[1]",
		},
		{
			name:     "unknown trait",
			file:     File{Traits: []TraitDecl{entity}, Impls: []ImplDecl{{Type: "Player", Traits: []string{"Entiti"}}}},
			want:     ErrUnknownTrait,
			wantPath: "impls[0].traits[0]",
		},
		{
			name:     "trait embedded twice",
			file:     File{Traits: []TraitDecl{entity}, Impls: []ImplDecl{{Type: "Player", Traits: []string{"Entity", "Entity"}}}},
			want:     ErrDuplicateTrait,
			wantPath: "impls[0].traits[1]",
		},
		{
			name:     "member collision",
			file:     File{Traits: []TraitDecl{entity, healthy}, Impls: []ImplDecl{{Type: "Player", Traits: []string{"Entity", "Healthy"}}}},
			want:     ErrMemberCollision,
			wantPath: "impls[0].traits[1]",
		},
		{
			name: "member shadows embedded state of earlier trait",
			file: File{
				Traits: []TraitDecl{entity, {Name: "Inspect", Members: []MemberDecl{behavior("entity_state", "string")}}},
				Impls:  []ImplDecl{{Type: "Player", Traits: []string{"Entity", "Inspect"}}},
			},
			want:     ErrMemberCollision,
			wantPath: "impls[0].traits[1]",
		},
		{
			name: "embedded state shadows member of earlier trait",
			file: File{
				Traits: []TraitDecl{{Name: "Inspect", Members: []MemberDecl{behavior("entity_state", "string")}}, entity},
				Impls:  []ImplDecl{{Type: "Player", Traits: []string{"Inspect", "Entity"}}},
			},
			want:     ErrMemberCollision,
			wantPath: "impls[0].traits[1]",
		},
		{
			name:     "member shadows own embedded state",
			file:     File{Traits: []TraitDecl{{Name: "Entity", Members: []MemberDecl{state("health", "int"), behavior("entity_state", "string")}}}},
			want:     ErrMemberCollision,
			wantPath: "traits[0].members[1]",
		},
		{
			name: "stateless trait may name a member after itself",
			file: File{Traits: []TraitDecl{{Name: "Entity", Members: []MemberDecl{behavior("entity_state", "string")}}}},
		},
		{
			name:     "init shadows embedded state",
			file:     File{Traits: []TraitDecl{entity}, Impls: []ImplDecl{{Type: "Player", Traits: []string{"Entity"}, Init: "EntityState"}}},
			want:     ErrMemberCollision,
			wantPath: "impls[0].init",
		},
		{
			name:     "init shadows member",
			file:     File{Traits: []TraitDecl{entity}, Impls: []ImplDecl{{Type: "Player", Traits: []string{"Entity"}, Init: "GetStatus"}}},
			want:     ErrMemberCollision,
			wantPath: "impls[0].init",
		},
		{
			name:     "duplicate impl",
			file:     File{Traits: []TraitDecl{entity}, Impls: []ImplDecl{{Type: "Player", Traits: []string{"Entity"}}, {Type: "Player", Traits: []string{"Entity"}}}},
			want:     ErrDuplicateImpl,
			wantPath: "impls[1].type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.file.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.want)
			}
			var de *DeclError
			if !errors.As(err, &de) {
				t.Fatalf("error %v is not a *DeclError", err)
			}
			if string(de.Path) != tt.wantPath {
				t.Errorf("Path = %q, want %q", de.Path, tt.wantPath)
			}
		})
	}
}

func TestValidateReportsEverything(t *testing.T) {
	t.Parallel()

	f := File{
		Traits: []TraitDecl{{Name: "Broken", Members: []MemberDecl{behavior("run", ""), behavior("run", "")}}},
		Impls:  []ImplDecl{{Type: "Foo", Traits: []string{"Missing"}}},
	}
	err := f.Validate()
	if !errors.Is(err, ErrDuplicateMember) || !errors.Is(err, ErrUnknownTrait) {
		t.Fatalf("Validate() error = %v, want both problems", err)
	}
	if !strings.Contains(err.Error(), `member "run" declared more than once`) {
		t.Errorf("message = %q", err)
	}
}

func TestTraitsAndMerge(t *testing.T) {
	t.Parallel()

	entity := TraitDecl{Name: "Entity", Members: []MemberDecl{state("health", "int"), behavior("get_status", "string")}}
	a := &File{Source: "a.cue", Traits: []TraitDecl{entity}}
	b := &File{Source: "b.cue", Traits: []TraitDecl{entity, {Name: "Testable", Members: []MemberDecl{behavior("test_method", "")}}}}

	traits, err := b.Traits()
	if err != nil {
		t.Fatalf("Traits() error = %v", err)
	}
	if len(traits) != 2 || traits[1].Name() != "Testable" {
		t.Errorf("Traits() = %v", traits)
	}

	cat, err := Merge(a, b)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("catalog has %d traits, want 2", cat.Len())
	}

	conflict := &File{Source: "c.cue", Traits: []TraitDecl{{Name: "Entity", Members: []MemberDecl{state("health", "float64")}}}}
	_, err = Merge(a, conflict)
	if !errors.Is(err, trait.ErrTraitConflict) {
		t.Fatalf("Merge(conflict) error = %v, want ErrTraitConflict", err)
	}
	if !strings.HasPrefix(err.Error(), "c.cue: ") {
		t.Errorf("conflict error not attributed to its file: %v", err)
	}
}
