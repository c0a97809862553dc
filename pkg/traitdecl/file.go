// SPDX-License-Identifier: MPL-2.0

package traitdecl

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invowk/traitkit/pkg/cueutil"
	"github.com/invowk/traitkit/pkg/trait"
	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultFileName is the declaration file the CLI looks for.
	DefaultFileName = "traits.cue"

	schemaRoot = "#TraitFile"
)

//go:embed traitdecl_schema.cue
var schema []byte

type (
	// File is a parsed declaration file.
	File struct {
		Package string      `json:"package,omitempty" toml:"package,omitempty"`
		Imports []string    `json:"imports,omitempty" toml:"imports,omitempty"`
		Traits  []TraitDecl `json:"traits" toml:"traits"`
		Impls   []ImplDecl  `json:"impls,omitempty" toml:"impls,omitempty"`

		// Source is the path the file was read from, if any.
		Source string `json:"-" toml:"-"`
	}

	// TraitDecl declares one trait.
	TraitDecl struct {
		Name    string       `json:"name" toml:"name"`
		Doc     string       `json:"doc,omitempty" toml:"doc,omitempty"`
		Members []MemberDecl `json:"members,omitempty" toml:"members,omitempty"`
	}

	// MemberDecl declares one trait member. Type is the slot type of a
	// state member and the result type of a behavior member.
	MemberDecl struct {
		Name   string   `json:"name" toml:"name"`
		Kind   string   `json:"kind" toml:"kind"`
		Type   string   `json:"type,omitempty" toml:"type,omitempty"`
		Params []string `json:"params,omitempty" toml:"params,omitempty"`
	}

	// ImplDecl is an implementation block: a Go type and the traits it
	// conforms to, in embedding order.
	ImplDecl struct {
		Type   string   `json:"type" toml:"type"`
		Traits []string `json:"traits" toml:"traits"`
		Init   string   `json:"init,omitempty" toml:"init,omitempty"`
	}
)

// Schema returns the embedded CUE schema.
func Schema() []byte { return schema }

// Parse decodes a CUE declaration file. filename is only used in errors.
func Parse(data []byte, filename string) (*File, error) {
	res, err := cueutil.ParseAndDecode[File](schema, data, schemaRoot, cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	res.Value.Source = filename
	return res.Value, nil
}

// ParseTOML decodes a TOML declaration file and checks it against the same
// schema as Parse.
func ParseTOML(data []byte, filename string) (*File, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	res, err := cueutil.EncodeAndDecode[File](schema, raw, schemaRoot, cueutil.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	res.Value.Source = filename
	return res.Value, nil
}

// Load reads path and parses it according to its extension (.cue or .toml).
// The result is not validated; call Validate.
func Load(path string) (*File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".cue" && ext != ".toml" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > cueutil.DefaultMaxFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", path, info.Size(), cueutil.DefaultMaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if ext == ".toml" {
		return ParseTOML(data, path)
	}
	return Parse(data, path)
}

// EncodeTOML renders f as a TOML declaration file.
func (f *File) EncodeTOML() ([]byte, error) {
	return toml.Marshal(f)
}

// Trait returns the declaration named name.
func (f *File) Trait(name string) (TraitDecl, bool) {
	for _, t := range f.Traits {
		if t.Name == name {
			return t, true
		}
	}
	return TraitDecl{}, false
}

// Member converts the declaration into a trait.Member.
func (m MemberDecl) Member() (trait.Member, error) {
	kind, err := trait.ParseMemberKind(m.Kind)
	if err != nil {
		return trait.Member{}, err
	}
	if kind == trait.KindState {
		return trait.State(m.Name, m.Type), nil
	}
	return trait.Behavior(m.Name, m.Type, m.Params...), nil
}

// GoName returns the member's Go identifier.
func (m MemberDecl) GoName() string { return trait.GoName(m.Name) }

// HasState reports whether the trait declares any state member.
func (t TraitDecl) HasState() bool {
	for _, m := range t.Members {
		if m.Kind == trait.KindState.String() {
			return true
		}
	}
	return false
}

// Declare builds the runtime trait schema.
func (t TraitDecl) Declare() (*trait.Trait, error) {
	members := make([]trait.Member, 0, len(t.Members))
	for _, md := range t.Members {
		m, err := md.Member()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return trait.Declare(t.Name, members...)
}
