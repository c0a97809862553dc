// SPDX-License-Identifier: MPL-2.0

package trait

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// KindState marks a named, typed slot that conforming types contain.
	KindState MemberKind = iota + 1
	// KindBehavior marks a named operation that conforming types implement.
	KindBehavior
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type (
	// MemberKind distinguishes state members from behavior members.
	MemberKind int

	// Member describes one member of a trait.
	//
	// For state members Type is the Go type of the slot. For behavior members
	// Type is the result type ("" for none) and Params lists the parameter
	// types in order. Types are Go type expressions as written in source.
	Member struct {
		Kind   MemberKind
		Name   string
		Type   string
		Params []string
	}
)

// State returns a state member descriptor.
func State(name, typ string) Member {
	return Member{Kind: KindState, Name: name, Type: typ}
}

// Behavior returns a behavior member descriptor. An empty returns means the
// operation has no result.
func Behavior(name, returns string, params ...string) Member {
	return Member{Kind: KindBehavior, Name: name, Type: returns, Params: slices.Clone(params)}
}

// String returns "state" or "behavior".
func (k MemberKind) String() string {
	switch k {
	case KindState:
		return "state"
	case KindBehavior:
		return "behavior"
	default:
		return fmt.Sprintf("MemberKind(%d)", int(k))
	}
}

// IsValid reports whether k is a known member kind.
func (k MemberKind) IsValid() bool {
	return k == KindState || k == KindBehavior
}

// Validate returns an error wrapping ErrInvalidMember for unknown kinds.
func (k MemberKind) Validate() error {
	if !k.IsValid() {
		return fmt.Errorf("%w: unknown member kind %s", ErrInvalidMember, k)
	}
	return nil
}

// ParseMemberKind parses "state" or "behavior".
func ParseMemberKind(s string) (MemberKind, error) {
	switch s {
	case "state":
		return KindState, nil
	case "behavior":
		return KindBehavior, nil
	default:
		return 0, fmt.Errorf("%w: unknown member kind %q", ErrInvalidMember, s)
	}
}

// IsState reports whether m is a state member.
func (m Member) IsState() bool { return m.Kind == KindState }

// IsBehavior reports whether m is a behavior member.
func (m Member) IsBehavior() bool { return m.Kind == KindBehavior }

// GoName returns the exported Go identifier used for the member in
// generated code: the field name of a state member, the method name of a
// behavior member.
func (m Member) GoName() string { return GoName(m.Name) }

// Signature renders the member the way it appears in Go source, e.g.
// "Health int" or "GetValue(int) int".
func (m Member) Signature() string {
	if m.IsState() {
		return m.GoName() + " " + m.Type
	}
	sig := m.GoName() + "(" + strings.Join(m.Params, ", ") + ")"
	if m.Type != "" {
		sig += " " + m.Type
	}
	return sig
}

// Validate returns an error wrapping ErrInvalidMember if the descriptor is
// malformed.
func (m Member) Validate() error {
	if !m.Kind.IsValid() {
		return &InvalidMemberError{Member: m, Reason: "unknown member kind"}
	}
	if !IsIdentifier(m.Name) {
		return &InvalidMemberError{Member: m, Reason: "name is not an identifier"}
	}
	if m.IsState() {
		if strings.TrimSpace(m.Type) == "" {
			return &InvalidMemberError{Member: m, Reason: "state member has no type"}
		}
		if len(m.Params) > 0 {
			return &InvalidMemberError{Member: m, Reason: "state member cannot take parameters"}
		}
		return nil
	}
	for i, p := range m.Params {
		if strings.TrimSpace(p) == "" {
			return &InvalidMemberError{Member: m, Reason: fmt.Sprintf("parameter %d has no type", i)}
		}
	}
	return nil
}

func (m Member) clone() Member {
	m.Params = slices.Clone(m.Params)
	return m
}

func (m Member) equal(o Member) bool {
	return m.Kind == o.Kind && m.Name == o.Name && m.Type == o.Type && slices.Equal(m.Params, o.Params)
}

// IsIdentifier reports whether s is a valid member or trait name.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// GoName converts a member name to an exported Go identifier: underscores
// separate words and each word is capitalised ("get_status" -> "GetStatus",
// "getValue" -> "GetValue"). Names without a leading letter get an "X"
// prefix.
func GoName(name string) string {
	var sb strings.Builder
	for part := range strings.SplitSeq(name, "_") {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(part[size:])
	}
	out := sb.String()
	if first, _ := utf8.DecodeRuneInString(out); !unicode.IsLetter(first) {
		return "X" + out
	}
	return out
}
