// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cirscan/cirscan/internal/analysis"
	"github.com/cirscan/cirscan/internal/logging"
)

var analyzeFlags struct {
	requirements string
	output       string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze --requirements <cim-file> <cir-file>",
	Short: "Check one evidence document against a requirements document",
	Long: `Analyze one evidence document (CIR) against a requirements document (CIM)
and print the requirement matches, the match summary, the structural verdict
and the combined GO/NO-GO decision as JSON.

Supported inputs: .pdf (text layer), .md, .yaml/.yml/.json records, .txt.

Usage:
  cirscan analyze --requirements cim-12345.pdf cir-0042.pdf
  cirscan analyze --requirements cim.md report.txt -o result.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeFlags.requirements, "requirements", "r", "", "Requirements document (CIM)")
	f.StringVarP(&analyzeFlags.output, "output", "o", "", "Write the JSON result to this path instead of stdout")
	_ = analyzeCmd.MarkFlagRequired("requirements")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	table, err := loadRules()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	loader := newLoader()

	reqDoc, err := loader.LoadFile(ctx, analyzeFlags.requirements)
	if err != nil {
		return fmt.Errorf("requirements: %w", err)
	}
	evDoc, err := loader.LoadFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("evidence: %w", err)
	}

	pipeline := analysis.New(table, analysis.WithLogger(logging.New("analysis")))
	res, err := pipeline.AnalyzePair(ctx, analysis.RequirementsFrom(reqDoc), analysis.EvidenceFrom(evDoc))
	if err != nil {
		return err
	}
	return writeJSON(cmd, analyzeFlags.output, res)
}
