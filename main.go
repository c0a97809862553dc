// SPDX-License-Identifier: MPL-2.0

// traitkit generates Go code for traits with state from CUE or TOML
// declaration files.
package main

import cmd "github.com/invowk/traitkit/cmd/traitkit"

func main() {
	cmd.Execute()
}
