// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/cirscan/cirscan/internal/logging"
	"github.com/cirscan/cirscan/internal/rules"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	rulesPath string
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "cirscan",
	Short: "GO/NO-GO compliance checks for component change documents",
	Long: `cirscan extracts verifiable requirements from a requirements document (CIM),
extracts metadata from evidence documents (CIR), matches each requirement
against the evidence and checks the evidence for structural completeness.

Rule tables and thresholds can be overridden with --rules (YAML or JSON).
Run "cirscan rules" to print the effective table.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.rulesPath, "rules", "", "Rule table overlay (YAML or JSON) applied on top of the built-in rules")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(requirementsCmd)
	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(rootFlags.logLevel)
	if err != nil {
		return err
	}
	logging.Init(level, rootFlags.logFormat, cmd.ErrOrStderr())
	return nil
}

// loadRules returns the built-in table, overlaid with --rules when set.
func loadRules() (*rules.Table, error) {
	if rootFlags.rulesPath == "" {
		return rules.Default().Compile()
	}
	return rules.Load(rootFlags.rulesPath)
}
