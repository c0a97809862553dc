// SPDX-License-Identifier: MPL-2.0

package traitcheck

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/invowk/traitkit/pkg/trait"
)

// runtimePackage is the package name of the trait runtime. Generated code
// always imports it under this name, whatever its import path.
const runtimePackage = "trait"

// checkDeclare reports members of a trait.Declare or trait.MustDeclare call
// that share a name, or map to the same Go identifier. Only members built
// in place with trait.State or trait.Behavior and a constant name are
// checked; a spread member list is skipped.
func checkDeclare(pass *analysis.Pass, call *ast.CallExpr) {
	fn := runtimeFunc(pass, call)
	if fn == nil || (fn.Name() != "Declare" && fn.Name() != "MustDeclare") {
		return
	}
	if call.Ellipsis.IsValid() || len(call.Args) < 2 {
		return
	}

	traitName, ok := constString(pass, call.Args[0])
	if !ok {
		traitName = "?"
	}

	names := make(map[string]bool, len(call.Args)-1)
	goNames := make(map[string]string, len(call.Args)-1)
	for _, arg := range call.Args[1:] {
		name, ok := memberName(pass, arg, fn.Pkg())
		if !ok {
			continue
		}
		if names[name] {
			pass.Report(analysis.Diagnostic{
				Pos:      arg.Pos(),
				Category: CategoryDuplicateMember,
				Message:  fmt.Sprintf("trait %s: member %q declared more than once", traitName, name),
			})
			continue
		}
		names[name] = true

		goName := trait.GoName(name)
		if other, dup := goNames[goName]; dup {
			pass.Report(analysis.Diagnostic{
				Pos:      arg.Pos(),
				Category: CategoryDuplicateMember,
				Message:  fmt.Sprintf("trait %s: members %q and %q both map to Go name %s", traitName, other, name, goName),
			})
			continue
		}
		goNames[goName] = name
	}
}

// memberName returns the constant name passed to trait.State or
// trait.Behavior in expr.
func memberName(pass *analysis.Pass, expr ast.Expr, pkg *types.Package) (string, bool) {
	call, ok := ast.Unparen(expr).(*ast.CallExpr)
	if !ok || len(call.Args) == 0 {
		return "", false
	}
	fn := runtimeFunc(pass, call)
	if fn == nil || fn.Pkg() != pkg || (fn.Name() != "State" && fn.Name() != "Behavior") {
		return "", false
	}
	return constString(pass, call.Args[0])
}

// runtimeFunc returns the package-level function of the trait runtime that
// call invokes, or nil.
func runtimeFunc(pass *analysis.Pass, call *ast.CallExpr) *types.Func {
	fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Name() != runtimePackage {
		return nil
	}
	if sig, ok := fn.Type().(*types.Signature); !ok || sig.Recv() != nil {
		return nil
	}
	return fn
}

func constString(pass *analysis.Pass, expr ast.Expr) (string, bool) {
	tv, ok := pass.TypesInfo.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}
	return constant.StringVal(tv.Value), true
}
