// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cirscan/cirscan/internal/analysis"
	"github.com/cirscan/cirscan/internal/evidence"
	"github.com/cirscan/cirscan/internal/metadata"
	"github.com/cirscan/cirscan/internal/validator"
)

// MetadataAnalyzeCompliance describes the analyze_compliance tool.
var MetadataAnalyzeCompliance = &mcp.Tool{
	Name: "analyze_compliance",
	Description: "Check an evidence (CIR) document against a requirements (CIM) document. " +
		"Returns one match per applicable requirement (Met, Partial, Not Met, Unable to Verify) " +
		"with a compliance score and GO/NO-GO, plus an independent structural verdict listing " +
		"missing fields and quality issues. The decision is GO only when both are GO.",
	InputSchema: map[string]interface{}{
		"type":     "object",
		"required": []string{"requirements", "evidence"},
		"properties": map[string]interface{}{
			"requirements": map[string]interface{}{
				"type":        "string",
				"description": "Raw content of the requirements document",
			},
			"requirements_format": map[string]interface{}{
				"type":        "string",
				"description": "Format hint for the requirements document (pdf, markdown, yaml, json, text)",
			},
			"evidence": map[string]interface{}{
				"type":        "string",
				"description": "Raw content of the evidence document",
			},
			"evidence_format": map[string]interface{}{
				"type":        "string",
				"description": "Format hint for the evidence document (pdf, markdown, yaml, json, text)",
			},
			"evidence_id": map[string]interface{}{
				"type":        "string",
				"description": "Optional identifier for the evidence document",
			},
			"metadata_seed": map[string]interface{}{
				"type":                 "object",
				"description":          "Optional known metadata pairs, applied before extraction",
				"additionalProperties": map[string]interface{}{"type": "string"},
			},
		},
	},
}

// InputAnalyzeCompliance is the input for the AnalyzeCompliance tool.
type InputAnalyzeCompliance struct {
	Requirements       string            `json:"requirements"`
	RequirementsFormat string            `json:"requirements_format"`
	Evidence           string            `json:"evidence"`
	EvidenceFormat     string            `json:"evidence_format"`
	EvidenceID         string            `json:"evidence_id"`
	MetadataSeed       map[string]string `json:"metadata_seed"`
}

// OutputAnalyzeCompliance is the output for the AnalyzeCompliance tool.
type OutputAnalyzeCompliance struct {
	CaseID             string              `json:"case_id"`
	EvidenceID         string              `json:"evidence_id"`
	Metadata           []metadata.Field    `json:"metadata"`
	RequirementMatches []evidence.Evidence `json:"requirement_matches"`
	MatchSummary       evidence.Summary    `json:"match_summary"`
	StructuralVerdict  validator.Verdict   `json:"structural_verdict"`
	Decision           string              `json:"decision"`
}

// AnalyzeCompliance acquires both documents and runs the pair analysis.
func (t *Toolset) AnalyzeCompliance(ctx context.Context, _ *mcp.CallToolRequest, input InputAnalyzeCompliance) (*mcp.CallToolResult, OutputAnalyzeCompliance, error) {
	if input.Requirements == "" {
		return nil, OutputAnalyzeCompliance{}, fmt.Errorf("requirements is required")
	}
	if input.Evidence == "" {
		return nil, OutputAnalyzeCompliance{}, fmt.Errorf("evidence is required")
	}

	reqDoc, err := t.load(ctx, InputDocument{Content: input.Requirements, Format: input.RequirementsFormat, SourceID: "requirements"})
	if err != nil {
		return nil, OutputAnalyzeCompliance{}, fmt.Errorf("requirements: %w", err)
	}
	evDoc, err := t.load(ctx, InputDocument{Content: input.Evidence, Format: input.EvidenceFormat, SourceID: input.EvidenceID})
	if err != nil {
		return nil, OutputAnalyzeCompliance{}, fmt.Errorf("evidence: %w", err)
	}

	ev := analysis.EvidenceFrom(evDoc)
	ev.ID = input.EvidenceID
	if len(input.MetadataSeed) > 0 {
		seed := make(map[string]string, len(ev.MetadataSeed)+len(input.MetadataSeed))
		for k, v := range ev.MetadataSeed {
			seed[k] = v
		}
		for k, v := range input.MetadataSeed {
			seed[k] = v
		}
		ev.MetadataSeed = seed
	}

	res, err := t.pipeline.AnalyzePair(ctx, analysis.RequirementsFrom(reqDoc), ev)
	if err != nil {
		return nil, OutputAnalyzeCompliance{}, err
	}

	return nil, OutputAnalyzeCompliance{
		CaseID:             res.CaseID,
		EvidenceID:         res.ID,
		Metadata:           res.Metadata.Fields(),
		RequirementMatches: res.RequirementMatches,
		MatchSummary:       res.MatchSummary,
		StructuralVerdict:  *res.StructuralVerdict,
		Decision:           res.Decision,
	}, nil
}
