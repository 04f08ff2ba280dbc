// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cirscan/cirscan/internal/source"
	"github.com/cirscan/cirscan/internal/source/parsers"
)

func newLoader() *source.Loader {
	return source.NewLoader(parsers.Default()...)
}

// writeJSON writes v as indented JSON to path, or to the command's stdout
// when path is empty.
func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Result written to %s\n", path)
	return nil
}

func writeText(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
