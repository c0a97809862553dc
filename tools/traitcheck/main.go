// SPDX-License-Identifier: MPL-2.0

// traitcheck reports Go types whose //trait:implements directive names
// traits they do not conform to: missing or mistyped behaviors, state
// structs that are not embedded, and members that collide across traits.
//
// Usage:
//
//	traitcheck [-config=traitcheck.toml] [-json] ./...
//	go vet -vettool=$(which traitcheck) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/invowk/traitkit/tools/traitcheck/traitcheck"
)

func main() {
	singlechecker.Main(traitcheck.Analyzer)
}
