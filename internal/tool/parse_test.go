// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirscan/cirscan/internal/evidence"
	"github.com/cirscan/cirscan/internal/logging"
	"github.com/cirscan/cirscan/internal/metadata"
	"github.com/cirscan/cirscan/internal/requirement"
	"github.com/cirscan/cirscan/internal/rules"
	"github.com/cirscan/cirscan/internal/validator"
)

func newToolset() *Toolset {
	return NewToolset(rules.MustDefault(), logging.Discard())
}

func TestExtractRequirements(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}
	ts := newToolset()

	tests := []struct {
		name           string
		input          InputDocument
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputExtractRequirements)
	}{
		{
			name:        "empty content returns error",
			input:       InputDocument{Content: ""},
			wantErr:     true,
			errContains: "content is required",
		},
		{
			name: "markdown requirements document produces requirements",
			input: InputDocument{
				Content:  "# CIM 12345\nVisual inspection: check the blade root for cracks\n",
				Format:   "markdown",
				SourceID: "cim-12345.md",
			},
			validateOutput: func(t *testing.T, output OutputExtractRequirements) {
				assert.Equal(t, "markdown", output.ParserUsed)
				assert.Equal(t, "12345", output.Analysis.CaseID)
				assert.Equal(t, "cim-12345.md", output.Analysis.Source)
				require.NotEmpty(t, output.Analysis.Requirements)
				assert.Equal(t, requirement.TypeVisualInspection, output.Analysis.Requirements[0].Type)
				assert.Equal(t, "VIS-001", output.Analysis.Requirements[0].ID)
				assert.Equal(t, len(output.Analysis.Requirements), output.Summary.TotalRequirements)
				assert.Equal(t, []string{"Blade"}, output.Summary.AffectedComponents)
			},
		},
		{
			name: "auto-detection without format hint",
			input: InputDocument{
				Content: "Case ID: ABC-7\nStep 1: Remove the damaged connector housing\n",
			},
			validateOutput: func(t *testing.T, output OutputExtractRequirements) {
				assert.Equal(t, "text", output.ParserUsed)
				assert.Equal(t, "ABC-7", output.Analysis.CaseID)
				assert.Equal(t, "unknown", output.Analysis.Source, "source_id defaults gracefully")
				assert.Equal(t, 1, output.Summary.ByType[requirement.TypeProcedure])
			},
		},
		{
			name: "whitespace-only document is rejected",
			input: InputDocument{
				Content: "   \n\n",
				Format:  "text",
			},
			wantErr:     true,
			errContains: "requirements text is empty",
		},
		{
			name: "unsupported format returns error",
			input: InputDocument{
				Content: "some binary or unsupported content",
				Format:  "docx",
			},
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := ts.ExtractRequirements(ctx, req, tt.input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestExtractMetadata(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}
	ts := newToolset()

	tests := []struct {
		name           string
		input          InputDocument
		wantErr        bool
		validateOutput func(t *testing.T, output OutputExtractMetadata)
	}{
		{
			name:    "empty content returns error",
			input:   InputDocument{},
			wantErr: true,
		},
		{
			name: "plain text report",
			input: InputDocument{
				Content: "CIR ID: CIR-2024-7\nTechnician: A. Jones\nTurbine ID: T-12\n",
				Format:  "text",
			},
			validateOutput: func(t *testing.T, output OutputExtractMetadata) {
				assert.Equal(t, "text", output.ParserUsed)
				require.NotEmpty(t, output.Fields)
				assert.Equal(t, metadata.Field{Name: "CIR ID", Value: metadata.TextValue("CIR-2024-7"), Source: metadata.SourcePattern}, output.Fields[0])
				assert.Equal(t, []string{"CIR ID", "Turbine ID", "Technician"}, output.Headers)
			},
		},
		{
			name: "yaml record scalars become seed fields",
			input: InputDocument{
				Content: "CIR ID: CIR-3\ntext: |\n  Technician: B. Lee\n",
				Format:  "yaml",
			},
			validateOutput: func(t *testing.T, output OutputExtractMetadata) {
				assert.Equal(t, "record", output.ParserUsed)
				require.NotEmpty(t, output.Fields)
				assert.Equal(t, metadata.Field{Name: "CIR ID", Value: metadata.TextValue("CIR-3"), Source: metadata.SourceSeed}, output.Fields[0])
				assert.Contains(t, output.Headers, "Technician")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := ts.ExtractMetadata(ctx, req, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateOutput(t, output)
		})
	}
}

func TestAnalyzeCompliance(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}
	ts := newToolset()

	t.Run("missing inputs", func(t *testing.T) {
		_, _, err := ts.AnalyzeCompliance(ctx, req, InputAnalyzeCompliance{Evidence: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requirements is required")

		_, _, err = ts.AnalyzeCompliance(ctx, req, InputAnalyzeCompliance{Requirements: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "evidence is required")
	})

	t.Run("photo evidence meets a visual requirement", func(t *testing.T) {
		_, output, err := ts.AnalyzeCompliance(ctx, req, InputAnalyzeCompliance{
			Requirements: "Visual inspection: take photos of the repaired area",
			Evidence:     "Photos attached: IMG_1.jpg",
			EvidenceID:   "cir-1.txt",
		})
		require.NoError(t, err)

		assert.Equal(t, "cir-1.txt", output.EvidenceID)
		require.Len(t, output.RequirementMatches, 1)
		assert.Equal(t, evidence.StatusMet, output.RequirementMatches[0].Status)
		assert.Equal(t, evidence.DecisionGo, output.MatchSummary.GoNoGo)
		assert.Equal(t, validator.StatusNoGo, output.StructuralVerdict.Status)
		assert.Equal(t, evidence.DecisionNoGo, output.Decision)
	})

	t.Run("metadata seed is applied first", func(t *testing.T) {
		_, output, err := ts.AnalyzeCompliance(ctx, req, InputAnalyzeCompliance{
			Requirements: "Visual inspection: take photos of the repaired area",
			Evidence:     "CIR ID: CIR-1\nPhotos attached: IMG_1.jpg",
			MetadataSeed: map[string]string{"CIR ID": "CIR-9"},
		})
		require.NoError(t, err)

		require.NotEmpty(t, output.Metadata)
		assert.Equal(t, "CIR-9", output.Metadata[0].Value.Text)
		assert.Equal(t, metadata.SourceSeed, output.Metadata[0].Source)
		assert.NotEmpty(t, output.EvidenceID, "an id is assigned when none is given")
	})
}
