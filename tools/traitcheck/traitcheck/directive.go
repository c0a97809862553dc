// SPDX-License-Identifier: MPL-2.0

package traitcheck

import (
	"go/ast"
	"strings"
)

const (
	implementsDirective = "//trait:implements"
	ignoreDirective     = "//traitcheck:ignore"
)

// directive is the parsed //trait:implements comment of a type.
type directive struct {
	traits  []string
	ignored bool
}

// parseDirective finds the //trait:implements line in doc. The trait list
// is comma separated; empty entries are dropped. found is false when the
// type carries no directive.
func parseDirective(doc *ast.CommentGroup) (d directive, found bool) {
	if doc == nil {
		return directive{}, false
	}
	for _, c := range doc.List {
		text := strings.TrimSpace(c.Text)
		switch {
		case text == ignoreDirective || strings.HasPrefix(text, ignoreDirective+" "):
			d.ignored = true
		case text == implementsDirective || strings.HasPrefix(text, implementsDirective+" "):
			found = true
			for _, name := range strings.Split(strings.TrimPrefix(text, implementsDirective), ",") {
				if name = strings.TrimSpace(name); name != "" {
					d.traits = append(d.traits, name)
				}
			}
		}
	}
	return d, found
}
