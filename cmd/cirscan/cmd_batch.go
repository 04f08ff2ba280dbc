// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cirscan/cirscan/internal/analysis"
	"github.com/cirscan/cirscan/internal/logging"
	"github.com/cirscan/cirscan/internal/source"
)

var batchFlags struct {
	requirements string
	workers      int
	maxFiles     int
	output       string
}

var batchCmd = &cobra.Command{
	Use:   "batch --requirements <cim-file> <dir|files...>",
	Short: "Check many evidence documents against one requirements document",
	Long: `Extract requirements once and analyze every evidence document found in the
given files and directories (recursively). A document that cannot be read or
analyzed is reported with status "error" and does not stop the batch.

Usage:
  cirscan batch --requirements cim-12345.pdf reports/
  cirscan batch -r cim.md --workers 4 --max-files 100 a.pdf b.pdf -o batch.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchFlags.requirements, "requirements", "r", "", "Requirements document (CIM)")
	f.IntVar(&batchFlags.workers, "workers", 1, "Number of evidence documents analyzed concurrently")
	f.IntVar(&batchFlags.maxFiles, "max-files", 0, "Maximum number of evidence files (0 = no limit)")
	f.StringVarP(&batchFlags.output, "output", "o", "", "Write the JSON result to this path instead of stdout")
	_ = batchCmd.MarkFlagRequired("requirements")
}

// unreadable is an evidence file that text acquisition rejected.
type unreadable struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type batchReport struct {
	*analysis.BatchResult
	Unreadable []unreadable `json:"unreadable,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	table, err := loadRules()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	log := logging.New("batch")
	loader := newLoader()

	reqDoc, err := loader.LoadFile(ctx, batchFlags.requirements)
	if err != nil {
		return fmt.Errorf("requirements: %w", err)
	}

	files, err := source.Discover(args, batchFlags.maxFiles)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no evidence files found in %v", args)
	}

	report := batchReport{}
	docs := make([]analysis.EvidenceInput, 0, len(files))
	for _, path := range files {
		doc, err := loader.LoadFile(ctx, path)
		if err != nil {
			log.Warn("skipping unreadable evidence", slog.String("path", path), slog.String("error", err.Error()))
			report.Unreadable = append(report.Unreadable, unreadable{Path: path, Error: err.Error()})
			continue
		}
		docs = append(docs, analysis.EvidenceFrom(doc))
	}
	log.Info("evidence loaded", slog.Int("documents", len(docs)), slog.Int("unreadable", len(report.Unreadable)))

	pipeline := analysis.New(table,
		analysis.WithWorkers(batchFlags.workers),
		analysis.WithLogger(logging.New("analysis")),
	)
	report.BatchResult, err = pipeline.AnalyzeBatch(ctx, analysis.RequirementsFrom(reqDoc), docs)
	if err != nil {
		return err
	}
	report.Statistics.Total += len(report.Unreadable)
	report.Statistics.Failed += len(report.Unreadable)
	return writeJSON(cmd, batchFlags.output, report)
}
