// SPDX-License-Identifier: Apache-2.0

// Package evidence decides, per requirement, whether an evidence document
// supports it and aggregates the outcomes into a GO/NO-GO summary.
package evidence

// Status is the outcome of assessing one requirement.
type Status string

const (
	StatusMet            Status = "Met"
	StatusPartial        Status = "Partial"
	StatusNotMet         Status = "Not Met"
	StatusUnableToVerify Status = "Unable to Verify"
)

// Decision values shared by the matcher summary and the structural verdict.
const (
	DecisionGo   = "GO"
	DecisionNoGo = "NO-GO"
)

// Evidence is the matcher's verdict for one requirement.
type Evidence struct {
	RequirementID    string   `json:"requirement_id"`
	RequirementTitle string   `json:"requirement_title"`
	Status           Status   `json:"status"`
	Found            []string `json:"found"`
	ExpectedEvidence []string `json:"expected_evidence"`
	Comment          string   `json:"comment"`
	Excerpt          string   `json:"excerpt"`
	VisualEvidence   []string `json:"visual_evidence"`
	Confidence       float64  `json:"confidence"`
}

// Summary aggregates the statuses of all applicable requirements.
type Summary struct {
	Total           int     `json:"total"`
	Met             int     `json:"met"`
	Partial         int     `json:"partial"`
	NotMet          int     `json:"not_met"`
	UnableToVerify  int     `json:"unable_to_verify"`
	ComplianceScore float64 `json:"compliance_score"`
	GoNoGo          string  `json:"go_nogo"`
}
