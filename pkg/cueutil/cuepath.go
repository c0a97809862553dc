// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCUEPath is returned when a CUEPath is blank.
var ErrInvalidCUEPath = errors.New("invalid CUE path")

// CUEPath locates a value inside a document, e.g. "traits[0].members[2]".
type CUEPath string

// String returns the path.
func (p CUEPath) String() string { return string(p) }

// Validate rejects blank paths.
func (p CUEPath) Validate() error {
	if strings.TrimSpace(string(p)) == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidCUEPath)
	}
	return nil
}

// Index appends "[i]" to p.
func (p CUEPath) Index(i int) CUEPath {
	return CUEPath(fmt.Sprintf("%s[%d]", p, i))
}

// Field appends ".name" to p, or returns name when p is empty.
func (p CUEPath) Field(name string) CUEPath {
	if p == "" {
		return CUEPath(name)
	}
	return p + "." + CUEPath(name)
}
