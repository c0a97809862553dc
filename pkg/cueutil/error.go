// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// ValidationError is one schema violation located by file and path.
type ValidationError struct {
	File    string
	Path    CUEPath
	Message string
}

// Error renders "<file>: <path>: <message>", dropping the path when empty.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// FormatError flattens a CUE error into path-prefixed lines:
//
//	traits.cue: traits[0].members[1].kind: conflicting values "state" and "field"
//
// Errors that do not come from CUE are wrapped with the file name.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", file, err)
	}

	violations := make([]*ValidationError, 0, len(list))
	for _, e := range list {
		path := FormatPath(cueerrors.Path(e))
		msg := e.Error()
		if path != "" {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, string(path)), ":"))
		}
		violations = append(violations, &ValidationError{File: file, Path: path, Message: msg})
	}

	if len(violations) == 1 {
		return violations[0]
	}
	lines := make([]string, len(violations))
	for i, v := range violations {
		lines[i] = strings.TrimPrefix(v.Error(), file+": ")
	}
	return fmt.Errorf("%s: validation failed:\n  %s", file, strings.Join(lines, "\n  "))
}

// FormatPath turns a CUE selector list such as ["traits", "0", "name"] into
// "traits[0].name".
func FormatPath(path []string) CUEPath {
	var sb strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			sb.WriteString("[" + part + "]")
		case i > 0:
			sb.WriteString("." + part)
		default:
			sb.WriteString(part)
		}
	}
	return CUEPath(sb.String())
}

// CheckFileSize fails if data is larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, file string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", file, len(data), maxSize)
	}
	return nil
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
