// SPDX-License-Identifier: MPL-2.0

package trait

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

var (
	qualifierPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*\.`)

	aliasPatterns = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\bbyte\b`), "uint8"},
		{regexp.MustCompile(`\brune\b`), "int32"},
		{regexp.MustCompile(`\bany\b`), "interface{}"},
	}
)

// checkShape matches the method set of I against tr's behavior members and
// the fields of S against tr's state members. It runs once per Conform call.
func checkShape[I, S any](tr *Trait) (member, reason string, err error) {
	if behaviors := tr.Behaviors(); len(behaviors) > 0 {
		iface := reflect.TypeFor[I]()
		for _, m := range behaviors {
			if why := checkMethod(iface, m); why != "" {
				return m.Name, why, ErrUnboundBehavior
			}
		}
	}

	if states := tr.States(); len(states) > 0 {
		block := reflect.TypeFor[S]()
		for _, m := range states {
			if why := checkField(block, m); why != "" {
				return m.Name, why, ErrMissingState
			}
		}
	}
	return "", "", nil
}

func checkMethod(t reflect.Type, m Member) string {
	method, ok := t.MethodByName(m.GoName())
	if !ok {
		return fmt.Sprintf("%s has no method %s", t, m.GoName())
	}
	fn := method.Type
	recv := 0
	if t.Kind() != reflect.Interface {
		recv = 1
	}

	params := make([]string, 0, fn.NumIn()-recv)
	for i := recv; i < fn.NumIn(); i++ {
		p := fn.In(i)
		if fn.IsVariadic() && i == fn.NumIn()-1 {
			params = append(params, "..."+p.Elem().String())
			continue
		}
		params = append(params, p.String())
	}
	results := make([]string, 0, fn.NumOut())
	for i := range fn.NumOut() {
		results = append(results, fn.Out(i).String())
	}

	got := m.GoName() + "(" + strings.Join(params, ", ") + ")"
	switch len(results) {
	case 0:
	case 1:
		got += " " + results[0]
	default:
		got += " (" + strings.Join(results, ", ") + ")"
	}
	if normalizeType(got) != normalizeType(m.Signature()) {
		return fmt.Sprintf("method is %s, trait declares %s", got, m.Signature())
	}
	return ""
}

func checkField(t reflect.Type, m Member) string {
	if t.Kind() != reflect.Struct {
		return fmt.Sprintf("state type %s is not a struct", t)
	}
	f, ok := t.FieldByName(m.GoName())
	if !ok {
		return fmt.Sprintf("%s has no field %s", t, m.GoName())
	}
	if normalizeType(f.Type.String()) != normalizeType(m.Type) {
		return fmt.Sprintf("field %s is %s, trait declares %s", m.GoName(), f.Type, m.Type)
	}
	return ""
}

// normalizeType reduces a Go type expression to a form comparable with
// reflect's rendering: package qualifiers and spaces are dropped and the
// predeclared aliases are spelled out.
func normalizeType(expr string) string {
	for _, a := range aliasPatterns {
		expr = a.re.ReplaceAllString(expr, a.repl)
	}
	expr = qualifierPattern.ReplaceAllString(expr, "")
	return strings.Join(strings.Fields(expr), "")
}
