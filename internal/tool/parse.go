// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cirscan/cirscan/internal/analysis"
	"github.com/cirscan/cirscan/internal/metadata"
	"github.com/cirscan/cirscan/internal/requirement"
	"github.com/cirscan/cirscan/internal/source"
)

var documentProperties = map[string]interface{}{
	"content": map[string]interface{}{
		"type":        "string",
		"description": "Raw content of the document",
	},
	"format": map[string]interface{}{
		"type":        "string",
		"description": "Format hint for the document. One of: pdf, markdown, yaml, json, text. If omitted, auto-detection is used.",
		"enum":        []string{"pdf", "markdown", "md", "yaml", "yml", "json", "text", "txt"},
	},
	"source_id": map[string]interface{}{
		"type":        "string",
		"description": "Optional identifier for the document (file path, URL, etc.) reported back in results.",
	},
}

// MetadataExtractRequirements describes the extract_requirements tool.
var MetadataExtractRequirements = &mcp.Tool{
	Name: "extract_requirements",
	Description: "Extract verifiable requirements from a requirements (CIM) document. " +
		"Returns the case identifier, title, affected components, failure types and one entry " +
		"per requirement with its type, severity, acceptance criteria and expected evidence. " +
		"Requirement ids are numbered per call (TEST-001, DOC-002, ...).",
	InputSchema: map[string]interface{}{
		"type":       "object",
		"required":   []string{"content"},
		"properties": documentProperties,
	},
}

// InputDocument is the input shared by the extraction tools.
type InputDocument struct {
	Content  string `json:"content"`
	Format   string `json:"format"`
	SourceID string `json:"source_id"`
}

// OutputExtractRequirements is the output for the ExtractRequirements tool.
type OutputExtractRequirements struct {
	Analysis requirement.Analysis `json:"analysis"`
	Summary  requirement.Summary  `json:"summary"`
	// ParserUsed is the name of the parser that acquired the text.
	ParserUsed string `json:"parser_used"`
}

// MetadataExtractMetadata describes the extract_metadata tool.
var MetadataExtractMetadata = &mcp.Tool{
	Name: "extract_metadata",
	Description: "Extract labeled metadata from an evidence (CIR) document: identifiers, dates, " +
		"technician, component, observations and any generic 'key: value' lines. Fields are " +
		"returned in extraction order, each tagged with the strategy that produced it; headers " +
		"lists the same names in display priority order.",
	InputSchema: map[string]interface{}{
		"type":       "object",
		"required":   []string{"content"},
		"properties": documentProperties,
	},
}

// OutputExtractMetadata is the output for the ExtractMetadata tool.
type OutputExtractMetadata struct {
	Fields     []metadata.Field `json:"fields"`
	Headers    []string         `json:"headers"`
	ParserUsed string           `json:"parser_used"`
}

// load acquires the text of in, defaulting the source id.
func (t *Toolset) load(ctx context.Context, in InputDocument) (*source.Document, error) {
	if in.Content == "" {
		return nil, fmt.Errorf("content is required")
	}
	id := in.SourceID
	if id == "" {
		id = "unknown"
	}
	return t.loader.Load(ctx, source.Input{
		Content: []byte(in.Content),
		Format:  in.Format,
		ID:      id,
	})
}

// ExtractRequirements runs requirement extraction over the provided document.
func (t *Toolset) ExtractRequirements(ctx context.Context, _ *mcp.CallToolRequest, input InputDocument) (*mcp.CallToolResult, OutputExtractRequirements, error) {
	doc, err := t.load(ctx, input)
	if err != nil {
		return nil, OutputExtractRequirements{}, err
	}
	a, err := t.pipeline.ExtractRequirements(analysis.RequirementsFrom(doc))
	if err != nil {
		return nil, OutputExtractRequirements{}, err
	}
	return nil, OutputExtractRequirements{
		Analysis:   *a,
		Summary:    a.Summarize(),
		ParserUsed: doc.Parser,
	}, nil
}

// ExtractMetadata runs metadata extraction over the provided document.
// Scalar fields of yaml/json records are used as seed values.
func (t *Toolset) ExtractMetadata(ctx context.Context, _ *mcp.CallToolRequest, input InputDocument) (*mcp.CallToolResult, OutputExtractMetadata, error) {
	doc, err := t.load(ctx, input)
	if err != nil {
		return nil, OutputExtractMetadata{}, err
	}
	set := t.metadata.ExtractWithSeed(doc.Text, doc.Seed)
	return nil, OutputExtractMetadata{
		Fields:     set.Fields(),
		Headers:    set.Headers(t.priority),
		ParserUsed: doc.Parser,
	}, nil
}
