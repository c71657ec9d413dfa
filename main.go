// SPDX-License-Identifier: MPL-2.0

package main

import cmd "pyfreeze-cli/cmd/pyfreeze"

func main() {
	cmd.Execute()
}
