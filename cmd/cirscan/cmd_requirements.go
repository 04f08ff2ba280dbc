// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/cirscan/cirscan/internal/analysis"
	"github.com/cirscan/cirscan/internal/logging"
)

var requirementsFlags struct {
	summary bool
	output  string
}

var requirementsCmd = &cobra.Command{
	Use:   "requirements <cim-file>",
	Short: "Extract requirements from a requirements document",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequirements,
}

func init() {
	f := requirementsCmd.Flags()
	f.BoolVar(&requirementsFlags.summary, "summary", false, "Print counts per requirement type instead of the full analysis")
	f.StringVarP(&requirementsFlags.output, "output", "o", "", "Write the JSON result to this path instead of stdout")
}

func runRequirements(cmd *cobra.Command, args []string) error {
	table, err := loadRules()
	if err != nil {
		return err
	}
	doc, err := newLoader().LoadFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	pipeline := analysis.New(table, analysis.WithLogger(logging.New("analysis")))
	a, err := pipeline.ExtractRequirements(analysis.RequirementsFrom(doc))
	if err != nil {
		return err
	}
	if requirementsFlags.summary {
		return writeJSON(cmd, requirementsFlags.output, a.Summarize())
	}
	return writeJSON(cmd, requirementsFlags.output, a)
}
