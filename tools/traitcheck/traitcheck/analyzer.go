// SPDX-License-Identifier: MPL-2.0

// Package traitcheck implements a go/analysis analyzer for trait
// declarations and for types that declare the traits they implement with a
// directive:
//
//	//trait:implements Entity, Named
//	type Player struct {
//		EntityState
//		NamedState
//		Level int
//	}
//
// A trait X is looked up as the interface X (its behavior) and the optional
// struct XState (its state) in the package of the type, or in an imported
// package for qualified names such as game.Entity. These are the
// declarations traitkit generates.
//
// Calls to trait.Declare and trait.MustDeclare are checked for members that
// share a name or a Go identifier.
//
// Findings can be suppressed per type with //traitcheck:ignore or through
// the exceptions of a TOML config file.
package traitcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Diagnostic categories, as reported in -json output.
const (
	CategoryBadDirective      = "bad-directive"
	CategoryUnknownTrait      = "unknown-trait"
	CategoryDuplicateTrait    = "duplicate-trait"
	CategoryMissingBehavior   = "missing-behavior"
	CategoryBehaviorSignature = "behavior-signature"
	CategoryMissingState      = "missing-state"
	CategoryStateType         = "state-type"
	CategoryStateShadow       = "state-shadow"
	CategoryMemberCollision   = "member-collision"
	CategoryDuplicateMember   = "duplicate-member"
)

// configPath is bound to the -config flag.
var configPath string

// Analyzer is the traitcheck analysis pass. Use it with singlechecker or
// via go vet -vettool.
var Analyzer = &analysis.Analyzer{
	Name:     "traitcheck",
	Doc:      "reports trait declarations with duplicate members and types that do not conform to the traits named in their //trait:implements directive",
	URL:      "https://github.com/invowk/traitkit/tools/traitcheck",
	Run:      run,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func init() {
	Analyzer.Flags.StringVar(&configPath, "config", "",
		"path to a TOML file with exceptions and excluded paths")
}

// traitInfo is a trait as seen through its generated declarations.
type traitInfo struct {
	name  string
	iface *types.Interface
	state *types.TypeName // nil for traits without state members
}

func run(pass *analysis.Pass) (any, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.GenDecl)(nil), (*ast.CallExpr)(nil)}, func(n ast.Node) {
		if isTestFile(pass, n.Pos()) || cfg.isExcludedPath(pass.Fset.Position(n.Pos()).Filename) {
			return
		}
		if call, ok := n.(*ast.CallExpr); ok {
			checkDeclare(pass, call)
			return
		}
		decl := n.(*ast.GenDecl)
		if decl.Tok != token.TYPE {
			return
		}

		for _, spec := range decl.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(decl.Specs) == 1 {
				doc = decl.Doc
			}
			d, found := parseDirective(doc)
			if !found || d.ignored {
				continue
			}
			checkType(pass, cfg, ts, d)
		}
	})

	return nil, nil
}

// checkType checks one annotated type against every trait of its directive.
func checkType(pass *analysis.Pass, cfg *Config, ts *ast.TypeSpec, d directive) {
	typeName := ts.Name.Name
	report := func(category, format string, args ...any) {
		pass.Report(analysis.Diagnostic{
			Pos:      ts.Name.Pos(),
			Category: category,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if len(d.traits) == 0 {
		report(CategoryBadDirective, "//trait:implements on %s names no traits", typeName)
		return
	}

	obj, ok := pass.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return
	}
	named, ok := obj.Type().(*types.Named)
	if !ok || ts.Assign.IsValid() {
		report(CategoryBadDirective, "//trait:implements on %s: traits are implemented by defined struct types", typeName)
		return
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		report(CategoryBadDirective, "//trait:implements on %s: traits are implemented by defined struct types", typeName)
		return
	}

	seen := make(map[string]bool, len(d.traits))
	owners := make(map[string]string)
	for _, name := range d.traits {
		if seen[name] {
			report(CategoryDuplicateTrait, "trait %s is listed more than once for %s", name, typeName)
			continue
		}
		seen[name] = true

		if cfg.isExcepted(packageName(pass.Pkg) + "." + typeName + "." + unqualified(name)) {
			continue
		}

		tr, ok := lookupTrait(pass.Pkg, name)
		if !ok {
			report(CategoryUnknownTrait, "%s implements unknown trait %s: no interface %s in scope", typeName, name, name)
			continue
		}

		for _, msg := range missingBehaviors(named, tr) {
			report(msg.category, "%s", msg.text)
		}
		for _, msg := range stateProblems(typeName, st, tr) {
			report(msg.category, "%s", msg.text)
		}
		for _, member := range memberNames(tr) {
			if owner, dup := owners[member]; dup {
				report(CategoryMemberCollision, "traits %s and %s of %s both declare member %s", owner, tr.name, typeName, member)
				continue
			}
			owners[member] = tr.name
		}
	}
}

type finding struct {
	category string
	text     string
}

// missingBehaviors reports the behaviors of tr that *T lacks or implements
// with another signature.
func missingBehaviors(named *types.Named, tr traitInfo) []finding {
	var out []finding
	ptr := types.NewPointer(named)
	for i := range tr.iface.NumMethods() {
		want := tr.iface.Method(i)
		obj, _, _ := types.LookupFieldOrMethod(ptr, false, want.Pkg(), want.Name())
		got, ok := obj.(*types.Func)
		if !ok {
			out = append(out, finding{CategoryMissingBehavior, fmt.Sprintf(
				"%s is missing behavior %s of trait %s", named.Obj().Name(), want.Name(), tr.name)})
			continue
		}
		// Identical ignores receivers.
		if !types.Identical(got.Type(), want.Type()) {
			out = append(out, finding{CategoryBehaviorSignature, fmt.Sprintf(
				"behavior %s of %s has signature %s, trait %s declares %s",
				want.Name(), named.Obj().Name(), signature(got), tr.name, signature(want))})
		}
	}
	return out
}

// stateProblems checks that the state struct of tr is embedded by value
// and that no field of the type hides one of its members.
func stateProblems(typeName string, st *types.Struct, tr traitInfo) []finding {
	if tr.state == nil {
		return nil
	}

	var out []finding
	embedded := false
	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		if types.Identical(f.Type(), tr.state.Type()) {
			embedded = true
			continue
		}
		if p, ok := f.Type().(*types.Pointer); ok && types.Identical(p.Elem(), tr.state.Type()) {
			out = append(out, finding{CategoryStateType, fmt.Sprintf(
				"%s embeds *%s: the state of trait %s must be embedded by value", typeName, tr.state.Name(), tr.name)})
			embedded = true
		}
	}
	if !embedded {
		out = append(out, finding{CategoryMissingState, fmt.Sprintf(
			"%s does not embed %s required by trait %s", typeName, tr.state.Name(), tr.name)})
		return out
	}

	stateStruct, ok := tr.state.Type().Underlying().(*types.Struct)
	if !ok {
		return out
	}
	own := make(map[string]bool, st.NumFields())
	for i := range st.NumFields() {
		if f := st.Field(i); !f.Embedded() {
			own[f.Name()] = true
		}
	}
	for i := range stateStruct.NumFields() {
		name := stateStruct.Field(i).Name()
		if own[name] {
			out = append(out, finding{CategoryStateShadow, fmt.Sprintf(
				"field %s of %s shadows state member %s of trait %s", name, typeName, name, tr.name)})
		}
	}
	return out
}

// memberNames returns the Go names of the behaviors and state fields of tr.
func memberNames(tr traitInfo) []string {
	var names []string
	for i := range tr.iface.NumMethods() {
		names = append(names, tr.iface.Method(i).Name())
	}
	if tr.state != nil {
		if st, ok := tr.state.Type().Underlying().(*types.Struct); ok {
			for i := range st.NumFields() {
				names = append(names, st.Field(i).Name())
			}
		}
	}
	return names
}

// lookupTrait resolves name, or pkg.Name for an imported package, to the
// trait's interface and optional state struct.
func lookupTrait(pkg *types.Package, name string) (traitInfo, bool) {
	scope := pkg.Scope()
	local := name
	if qual, rest, ok := strings.Cut(name, "."); ok {
		scope = nil
		for _, imp := range pkg.Imports() {
			if imp.Name() == qual {
				scope = imp.Scope()
				break
			}
		}
		if scope == nil {
			return traitInfo{}, false
		}
		local = rest
	}

	tn, ok := scope.Lookup(local).(*types.TypeName)
	if !ok {
		return traitInfo{}, false
	}
	iface, ok := tn.Type().Underlying().(*types.Interface)
	if !ok {
		return traitInfo{}, false
	}

	tr := traitInfo{name: name, iface: iface}
	if state, ok := scope.Lookup(local + "State").(*types.TypeName); ok {
		if _, isStruct := state.Type().Underlying().(*types.Struct); isStruct {
			tr.state = state
		}
	}
	return tr, true
}

func signature(fn *types.Func) string {
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return fn.Type().String()
	}
	return strings.TrimPrefix(types.TypeString(types.NewSignatureType(nil, nil, nil, sig.Params(), sig.Results(), sig.Variadic()), types.RelativeTo(fn.Pkg())), "func")
}

func unqualified(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

func isTestFile(pass *analysis.Pass, pos token.Pos) bool {
	return strings.HasSuffix(pass.Fset.Position(pos).Filename, "_test.go")
}

// packageName returns the last segment of the package path.
func packageName(pkg *types.Package) string {
	if pkg == nil {
		return ""
	}
	path := pkg.Path()
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
