// SPDX-License-Identifier: Apache-2.0

// Package requirement extracts verifiable obligations from the text of a
// requirements document (CIM).
package requirement

import "github.com/cirscan/cirscan/internal/rules"

// Type classifies a requirement by the trigger that produced it.
type Type string

const (
	TypeTestMethod       Type = "test-method"
	TypeDocumentation    Type = "documentation"
	TypeVisualInspection Type = "visual-inspection"
	TypeProcedure        Type = "procedure"
	TypeOther            Type = "other"
)

// Requirement is one verifiable obligation. It is never modified after
// extraction.
type Requirement struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Type               Type           `json:"type"`
	Components         []string       `json:"components"`
	AcceptanceCriteria string         `json:"acceptance_criteria"`
	ExpectedEvidence   []string       `json:"expected_evidence"`
	Severity           rules.Severity `json:"severity"`
	Source             string         `json:"source"`
}

// Section is a labeled block of display-only text.
type Section struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Analysis is the result of one extraction run over a requirements
// document.
type Analysis struct {
	CaseID             string        `json:"case_id"`
	Title              string        `json:"title"`
	Source             string        `json:"source"`
	AffectedComponents []string      `json:"affected_components"`
	FailureTypes       []string      `json:"failure_types"`
	Requirements       []Requirement `json:"requirements"`

	// Display-only side channels; not consumed by matching or scoring.
	WorkInstructions    []Section `json:"work_instructions,omitempty"`
	TestProcedures      []Section `json:"test_procedures,omitempty"`
	AcceptanceStandards []Section `json:"acceptance_standards,omitempty"`
	VisualCriteria      []string  `json:"visual_criteria,omitempty"`
	DocumentationTypes  []string  `json:"documentation_types,omitempty"`
}

// CountByType tallies requirements per type.
func (a *Analysis) CountByType() map[Type]int {
	counts := make(map[Type]int)
	for _, r := range a.Requirements {
		counts[r.Type]++
	}
	return counts
}

// Summary is a compact view of an analysis for listings.
type Summary struct {
	CaseID             string       `json:"case_id"`
	Title              string       `json:"title"`
	TotalRequirements  int          `json:"total_requirements"`
	ByType             map[Type]int `json:"by_type"`
	AffectedComponents []string     `json:"affected_components"`
	FailureTypes       []string     `json:"failure_types"`
}

// Summarize returns the listing view of a.
func (a *Analysis) Summarize() Summary {
	return Summary{
		CaseID:             a.CaseID,
		Title:              a.Title,
		TotalRequirements:  len(a.Requirements),
		ByType:             a.CountByType(),
		AffectedComponents: a.AffectedComponents,
		FailureTypes:       a.FailureTypes,
	}
}
