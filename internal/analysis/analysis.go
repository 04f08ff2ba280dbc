// SPDX-License-Identifier: Apache-2.0

// Package analysis sequences requirement extraction, metadata extraction,
// evidence matching and structural validation for one requirements document
// against one or many evidence documents.
package analysis

import (
	"errors"

	"github.com/cirscan/cirscan/internal/evidence"
	"github.com/cirscan/cirscan/internal/metadata"
	"github.com/cirscan/cirscan/internal/requirement"
	"github.com/cirscan/cirscan/internal/validator"
)

var (
	// ErrEmptyRequirements is returned when the requirements text is blank.
	ErrEmptyRequirements = errors.New("requirements text is empty")
	// ErrEmptyEvidence is returned when an evidence document's text is blank.
	ErrEmptyEvidence = errors.New("evidence text is empty")
)

// Stage is a step of the per-document state machine. Stages advance
// linearly and are never retried.
type Stage string

const (
	StageStart                 Stage = "Start"
	StageRequirementsExtracted Stage = "RequirementsExtracted"
	StageEvidenceExtracted     Stage = "EvidenceExtracted"
	StageMatched               Stage = "Matched"
	StageScored                Stage = "Scored"
	StageDone                  Stage = "Done"
)

// DocumentStatus reports whether a document was analyzed.
type DocumentStatus string

const (
	StatusOK    DocumentStatus = "ok"
	StatusError DocumentStatus = "error"
)

// RequirementsInput is the requirements document text.
type RequirementsInput struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// EvidenceInput is one evidence document as delivered by text acquisition.
type EvidenceInput struct {
	// ID identifies the document in results. A random UUID is assigned
	// when empty.
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
	// Pages is the per-page text, if known.
	Pages []string `json:"pages,omitempty"`
	// MetadataSeed pairs are written into the metadata set before any
	// extraction strategy runs.
	MetadataSeed         map[string]string `json:"metadata_seed,omitempty"`
	ExtractionConfidence float64           `json:"extraction_confidence"`
	ExtractionErrors     []string          `json:"extraction_errors,omitempty"`
}

// Result is the analysis of one evidence document. When Status is error,
// Stage is the last stage the document reached and only the identifying
// fields are set.
type Result struct {
	ID     string         `json:"id"`
	Name   string         `json:"name,omitempty"`
	Status DocumentStatus `json:"status"`
	Error  string         `json:"error,omitempty"`
	Stage  Stage          `json:"stage"`
	// CaseID is the requirements document's case identifier.
	CaseID string `json:"case_id"`

	Metadata           *metadata.Set       `json:"metadata,omitempty"`
	Document           *validator.Document `json:"document,omitempty"`
	RequirementMatches []evidence.Evidence `json:"requirement_matches"`
	MatchSummary       evidence.Summary    `json:"match_summary"`
	StructuralVerdict  *validator.Verdict  `json:"structural_verdict,omitempty"`
	// Decision is GO only when both the match summary and the structural
	// verdict are GO.
	Decision string `json:"decision,omitempty"`
}

// BatchResult is the outcome of AnalyzeBatch. Documents keep input order.
type BatchResult struct {
	Requirements *requirement.Analysis `json:"requirements"`
	Documents    []Result              `json:"documents"`
	Statistics   BatchStatistics       `json:"statistics"`
}

// Decide combines the two compliance notions.
func Decide(match evidence.Summary, verdict validator.Verdict) string {
	if match.GoNoGo == evidence.DecisionGo && verdict.Status == validator.StatusGo {
		return evidence.DecisionGo
	}
	return evidence.DecisionNoGo
}
