// SPDX-License-Identifier: MPL-2.0

// Package gen renders trait declaration files as Go source.
//
// For every trait the output holds the runtime schema (<Trait>Trait), the
// behavior interface (<Trait>), the embeddable state struct (<Trait>State,
// only when the trait has state members) and the trait object alias
// (<Trait>Object). For every implementation block it holds the
// zero-initialising constructor (New<Type>), the conformance binding
// (<Type><Trait>) with its compile-time proof closure, and the to_trait and
// from_trait helpers (<Trait>From<Type>, <Type>From<Trait>).
package gen

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"go/format"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"text/template"

	"github.com/invowk/traitkit/pkg/trait"
	"github.com/invowk/traitkit/pkg/traitdecl"
)

// DefaultRuntimeImport is the import path of the trait runtime.
const DefaultRuntimeImport = "github.com/invowk/traitkit/pkg/trait"

// ErrNoPackage is returned when neither the options nor the file name the
// package of the generated code.
var ErrNoPackage = errors.New("no package name for generated code")

//go:embed traits.go.tmpl
var templateText string

var fileTemplate = template.Must(template.New("traits").Parse(templateText))

type (
	// Options tune the generated file.
	Options struct {
		// Package overrides the package clause of the declaration file.
		Package string
		// RuntimeImport overrides DefaultRuntimeImport.
		RuntimeImport string
		// Source is the declaration file name recorded in the header.
		Source string
	}

	fileData struct {
		Source  string
		Package string
		Runtime string
		Imports []string
		Traits  []traitData
		Impls   []implData
	}

	traitData struct {
		Name      string
		Doc       []string
		Members   []memberData
		Behaviors []memberData
		States    []memberData
		StateType string
	}

	memberData struct {
		Decl      string
		Signature string
		Field     string
		Type      string
	}

	implData struct {
		Type     string
		Init     string
		Bindings []bindingData
	}

	bindingData struct {
		Var       string
		Trait     string
		StateType string
		HasState  bool
	}
)

// Generate validates f and renders it as gofmt'ed Go source.
func Generate(f *traitdecl.File, opts Options) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	data, err := buildData(f, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", data.Source, err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code for %s: %w", data.Source, err)
	}
	return out, nil
}

func buildData(f *traitdecl.File, opts Options) (*fileData, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = f.Package
	}
	if pkg == "" {
		return nil, ErrNoPackage
	}

	source := opts.Source
	if source == "" {
		source = filepath.Base(f.Source)
	}
	if source == "" || source == "." {
		source = traitdecl.DefaultFileName
	}

	runtime := opts.RuntimeImport
	if runtime == "" {
		runtime = DefaultRuntimeImport
	}
	imports := slices.DeleteFunc(slices.Clone(f.Imports), func(path string) bool { return path == runtime })
	slices.Sort(imports)
	imports = slices.Compact(imports)

	data := &fileData{
		Source:  source,
		Package: pkg,
		Runtime: runtime,
		Imports: imports,
	}

	traits := make(map[string]traitData, len(f.Traits))
	for _, decl := range f.Traits {
		td := traitData{Name: decl.Name, StateType: "trait.NoState"}
		if decl.Doc != "" {
			td.Doc = strings.Split(strings.TrimSpace(decl.Doc), "\n")
		}
		for _, md := range decl.Members {
			m, err := md.Member()
			if err != nil {
				return nil, err
			}
			mdata := memberData{
				Decl:      memberConstructor(m),
				Signature: m.Signature(),
				Field:     m.GoName(),
				Type:      m.Type,
			}
			td.Members = append(td.Members, mdata)
			if m.IsState() {
				td.States = append(td.States, mdata)
			} else {
				td.Behaviors = append(td.Behaviors, mdata)
			}
		}
		if len(td.States) > 0 {
			td.StateType = traitdecl.StateField(decl.Name)
		}
		traits[decl.Name] = td
		data.Traits = append(data.Traits, td)
	}

	for _, impl := range f.Impls {
		id := implData{Type: impl.Type, Init: impl.Init}
		for _, name := range impl.Traits {
			td := traits[name]
			id.Bindings = append(id.Bindings, bindingData{
				Var:       impl.Type + name,
				Trait:     name,
				StateType: td.StateType,
				HasState:  len(td.States) > 0,
			})
		}
		data.Impls = append(data.Impls, id)
	}
	return data, nil
}

// memberConstructor renders the trait.State or trait.Behavior call that
// declares m.
func memberConstructor(m trait.Member) string {
	if m.IsState() {
		return fmt.Sprintf("trait.State(%s, %s)", strconv.Quote(m.Name), strconv.Quote(m.Type))
	}
	args := []string{strconv.Quote(m.Name), strconv.Quote(m.Type)}
	for _, p := range m.Params {
		args = append(args, strconv.Quote(p))
	}
	return "trait.Behavior(" + strings.Join(args, ", ") + ")"
}
