// SPDX-License-Identifier: MPL-2.0

package trait

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Trait is a named, ordered schema of state and behavior members. It owns
// no instance state. Two traits with the same members but different names
// are distinct.
type Trait struct {
	name    string
	members []Member

	mu         sync.Mutex
	conformers map[string]struct{}
}

// Declare validates members and returns the trait schema. Two members may
// not share a name, nor map to the same Go identifier.
func Declare(name string, members ...Member) (*Trait, error) {
	if !IsIdentifier(name) {
		return nil, &InvalidTraitError{Name: name, Reason: "name is not an identifier"}
	}

	byName := make(map[string]string, len(members))
	byGoName := make(map[string]string, len(members))
	var errs []error
	for _, m := range members {
		if err := m.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := byName[m.Name]; dup {
			errs = append(errs, &DuplicateMemberError{Trait: name, Name: m.Name, Other: m.Name, GoName: m.GoName()})
			continue
		}
		if other, dup := byGoName[m.GoName()]; dup {
			errs = append(errs, &DuplicateMemberError{Trait: name, Name: m.Name, Other: other, GoName: m.GoName()})
			continue
		}
		byName[m.Name] = m.Name
		byGoName[m.GoName()] = m.Name
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	t := &Trait{
		name:       name,
		members:    make([]Member, len(members)),
		conformers: make(map[string]struct{}),
	}
	for i, m := range members {
		t.members[i] = m.clone()
	}
	return t, nil
}

// MustDeclare is like Declare but panics on error. It is meant for
// package-level trait variables, where an invalid declaration must stop the
// program before any instance exists.
func MustDeclare(name string, members ...Member) *Trait {
	t, err := Declare(name, members...)
	if err != nil {
		panic(fmt.Sprintf("trait: %v", err))
	}
	return t
}

// Name returns the trait name.
func (t *Trait) Name() string { return t.name }

// Members returns a copy of the members in declaration order.
func (t *Trait) Members() []Member {
	out := make([]Member, len(t.members))
	for i, m := range t.members {
		out[i] = m.clone()
	}
	return out
}

// States returns the state members in declaration order.
func (t *Trait) States() []Member { return t.filter(KindState) }

// Behaviors returns the behavior members in declaration order.
func (t *Trait) Behaviors() []Member { return t.filter(KindBehavior) }

// Member looks up a member by name.
func (t *Trait) Member(name string) (Member, bool) {
	for _, m := range t.members {
		if m.Name == name {
			return m.clone(), true
		}
	}
	return Member{}, false
}

// Equal reports whether o has the same name and the same ordered members.
func (t *Trait) Equal(o *Trait) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.name == o.name && slices.EqualFunc(t.members, o.members, Member.equal)
}

// Conformers returns the sorted names of the types registered with Conform.
func (t *Trait) Conformers() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.conformers))
	for name := range t.conformers {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// String renders the trait as a Go-like declaration block.
func (t *Trait) String() string {
	var sb strings.Builder
	sb.WriteString("trait ")
	sb.WriteString(t.name)
	sb.WriteString(" {\n")
	for _, m := range t.members {
		sb.WriteString("\t")
		sb.WriteString(m.Signature())
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

func (t *Trait) filter(kind MemberKind) []Member {
	var out []Member
	for _, m := range t.members {
		if m.Kind == kind {
			out = append(out, m.clone())
		}
	}
	return out
}

func (t *Trait) hasKind(kind MemberKind) bool {
	return slices.ContainsFunc(t.members, func(m Member) bool { return m.Kind == kind })
}

func (t *Trait) addConformer(typeName string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, dup := t.conformers[typeName]; dup {
		return ErrDuplicateConformance
	}
	t.conformers[typeName] = struct{}{}
	return nil
}
