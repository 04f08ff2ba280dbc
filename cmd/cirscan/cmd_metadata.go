// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/cirscan/cirscan/internal/metadata"
)

var metadataFlags struct {
	output string
}

var metadataCmd = &cobra.Command{
	Use:   "metadata <cir-file>",
	Short: "Extract metadata fields from an evidence document",
	Args:  cobra.ExactArgs(1),
	RunE:  runMetadata,
}

func init() {
	metadataCmd.Flags().StringVarP(&metadataFlags.output, "output", "o", "", "Write the JSON result to this path instead of stdout")
}

type metadataReport struct {
	ID      string           `json:"id"`
	Parser  string           `json:"parser"`
	Headers []string         `json:"headers"`
	Fields  []metadata.Field `json:"fields"`
}

func runMetadata(cmd *cobra.Command, args []string) error {
	table, err := loadRules()
	if err != nil {
		return err
	}
	doc, err := newLoader().LoadFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	set := metadata.NewExtractor(table).ExtractWithSeed(doc.Text, doc.Seed)
	return writeJSON(cmd, metadataFlags.output, metadataReport{
		ID:      doc.ID,
		Parser:  doc.Parser,
		Headers: set.Headers(table.Metadata.Priority),
		Fields:  set.Fields(),
	})
}
