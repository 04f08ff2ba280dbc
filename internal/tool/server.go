// SPDX-License-Identifier: Apache-2.0

// Package tool exposes the compliance engine as MCP tools.
package tool

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cirscan/cirscan/internal/analysis"
	"github.com/cirscan/cirscan/internal/metadata"
	"github.com/cirscan/cirscan/internal/rules"
	"github.com/cirscan/cirscan/internal/source"
	"github.com/cirscan/cirscan/internal/source/parsers"
)

// ServerName is the MCP implementation name.
const ServerName = "cirscan"

// Toolset holds the engine instances shared by all tool handlers.
type Toolset struct {
	pipeline *analysis.Pipeline
	metadata *metadata.Extractor
	loader   *source.Loader
	priority []string
}

// NewToolset builds the handlers over table. Documents are acquired with
// the default parsers.
func NewToolset(table *rules.Table, logger *slog.Logger) *Toolset {
	return &Toolset{
		pipeline: analysis.New(table, analysis.WithLogger(logger)),
		metadata: metadata.NewExtractor(table),
		loader:   source.NewLoader(parsers.Default()...),
		priority: table.Metadata.Priority,
	}
}

// Register adds every tool to s.
func (t *Toolset) Register(s *mcp.Server) {
	mcp.AddTool(s, MetadataAnalyzeCompliance, t.AnalyzeCompliance)
	mcp.AddTool(s, MetadataExtractRequirements, t.ExtractRequirements)
	mcp.AddTool(s, MetadataExtractMetadata, t.ExtractMetadata)
}

// NewServer creates an MCP server with every tool registered. The caller
// runs it with server.Run(ctx, &mcp.StdioTransport{}).
func NewServer(table *rules.Table, version string, logger *slog.Logger) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	NewToolset(table, logger).Register(s)
	return s
}
