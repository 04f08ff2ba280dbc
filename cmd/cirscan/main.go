// SPDX-License-Identifier: Apache-2.0

// cirscan checks component inspection reports (CIR) against the requirements
// of a component issue document (CIM).
//
// Usage:
//
//	cirscan analyze --requirements <cim-file> <cir-file> [-o result.json]
//	cirscan batch --requirements <cim-file> [--workers N] [--max-files N] <dir|files...>
//	cirscan requirements <cim-file>
//	cirscan metadata <cir-file>
//	cirscan rules [--rules overlay.yaml]
//	cirscan serve
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
