// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user data against embedded CUE schemas.
//
// Every decoder in traitkit follows the same flow:
//
//  1. Compile the embedded schema
//  2. Compile (or encode) the user data and unify it with a schema definition
//  3. Validate and decode into a Go struct
//
// Declaration files written in CUE go through ParseAndDecode. Formats that
// are parsed by another library first, such as TOML declarations, hand the
// resulting Go value to EncodeAndDecode so that the same schema applies.
//
//	//go:embed traitdecl_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[File](schema, data, "#TraitFile",
//		cueutil.WithFilename("traits.cue"))
//	if err != nil {
//		return nil, err // carries "<file>: <path>: <message>"
//	}
//	return res.Value, nil
package cueutil
