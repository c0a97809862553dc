// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Result holds a decoded value together with the unified CUE value it was
// decoded from.
type Result[T any] struct {
	Value   *T
	Unified cue.Value
}

// ParseAndDecode compiles data as CUE, unifies it with the definition at
// schemaPath (for example "#TraitFile") inside schema, validates it and
// decodes it into a T.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*Result[T], error) {
	o := applyOptions(opts)
	name := o.name()

	if err := CheckFileSize(data, o.maxFileSize, name); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	root, err := lookupSchema(ctx, schema, schemaPath)
	if err != nil {
		return nil, err
	}

	user := ctx.CompileBytes(data, cue.Filename(name))
	if user.Err() != nil {
		return nil, FormatError(user.Err(), name)
	}

	return decode[T](root.Unify(user), o)
}

// EncodeAndDecode encodes an already parsed Go value (typically a
// map[string]any produced by a TOML or JSON decoder) into CUE and runs it
// through the same unify, validate and decode steps as ParseAndDecode.
func EncodeAndDecode[T any](schema []byte, data any, schemaPath string, opts ...Option) (*Result[T], error) {
	o := applyOptions(opts)
	name := o.name()

	ctx := cuecontext.New()
	root, err := lookupSchema(ctx, schema, schemaPath)
	if err != nil {
		return nil, err
	}

	user := ctx.Encode(data)
	if user.Err() != nil {
		return nil, FormatError(user.Err(), name)
	}

	return decode[T](root.Unify(user), o)
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func lookupSchema(ctx *cue.Context, schema []byte, schemaPath string) (cue.Value, error) {
	compiled := ctx.CompileBytes(schema)
	if compiled.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: compile schema: %w", compiled.Err())
	}
	root := compiled.LookupPath(cue.ParsePath(schemaPath))
	if !root.Exists() || root.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s not found", schemaPath)
	}
	return root, nil
}

func decode[T any](unified cue.Value, o options) (*Result[T], error) {
	name := o.name()
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, FormatError(err, name)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, name)
	}
	return &Result[T]{Value: &out, Unified: unified}, nil
}
