// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/cirscan/cirscan/internal/rules"
)

var rulesFlags struct {
	check bool
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print or check the effective rule table",
	Long: `Print the effective rule table as YAML: the built-in rules, overlaid with
the file given by --rules. The output is a valid overlay and can be edited
and passed back with --rules.

With --check, only validate the overlay against the schema and compile
every pattern.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesFlags.check, "check", false, "Validate the rule table without printing it")
}

func runRules(cmd *cobra.Command, _ []string) error {
	table, err := loadRules()
	if err != nil {
		return err
	}
	if rulesFlags.check {
		source := "built-in rules"
		if rootFlags.rulesPath != "" {
			source = rootFlags.rulesPath
		}
		writeText(cmd.OutOrStdout(), "%s: OK (%d requirement rules, %d metadata fields)\n",
			source, len(table.Requirements), len(table.Fields))
		return nil
	}
	data, err := rules.Marshal(table.Config)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
