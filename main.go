// SPDX-License-Identifier: MPL-2.0

package main

import (
	cmd "savegate/cmd/savegate"
)

func main() {
	cmd.Execute()
}
