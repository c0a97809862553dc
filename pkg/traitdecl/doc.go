// SPDX-License-Identifier: MPL-2.0

// Package traitdecl reads trait declaration files.
//
// A declaration file lists traits (named sets of state and behavior members)
// and implementation blocks (a Go type together with the traits it
// conforms to). It is written in CUE or TOML and validated against the
// embedded traitdecl_schema.cue before the semantic checks of
// [File.Validate] run:
//
//	package: "entity"
//	traits: [{
//		name: "Entity"
//		members: [
//			{name: "health", kind: "state", type: "int"},
//			{name: "get_status", kind: "behavior", type: "string"},
//		]
//	}]
//	impls: [{type: "Player", traits: ["Entity"], init: "Init"}]
//
// The traitkit generator turns a validated File into Go source.
package traitdecl
