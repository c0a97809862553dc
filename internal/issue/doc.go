// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures of the traitkit CLI into user-facing
// messages: ActionableError carries the failed operation, the resource and
// remediation hints, and the Markdown issue catalog explains the common
// problems in more depth.
package issue
