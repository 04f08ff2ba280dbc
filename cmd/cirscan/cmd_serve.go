// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/cirscan/cirscan/internal/logging"
	"github.com/cirscan/cirscan/internal/tool"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the analyze_compliance,
extract_requirements and extract_metadata tools. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	table, err := loadRules()
	if err != nil {
		return err
	}
	log := logging.New("mcp")
	srv := tool.NewServer(table, version, log)

	log.Info("starting cirscan MCP server over stdio")
	return srv.Run(cmd.Context(), &mcp.StdioTransport{})
}
