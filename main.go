// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/projrun/projrun/cmd/projrun"

func main() {
	cmd.Execute()
}
