// SPDX-License-Identifier: Apache-2.0

// Package validator runs the structural completeness checks on an evidence
// document and derives a GO/NO-GO verdict independent of requirement
// matching.
package validator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cirscan/cirscan/internal/logging"
	"github.com/cirscan/cirscan/internal/rules"
)

// Status is the structural verdict.
type Status string

const (
	StatusGo      Status = "GO"
	StatusNoGo    Status = "NO-GO"
	StatusPending Status = "PENDING"
)

// CheckResult is the outcome of one check. Only PASS counts as passed.
type CheckResult string

const (
	CheckPass CheckResult = "PASS"
	CheckFail CheckResult = "FAIL"
	CheckWarn CheckResult = "WARN"
)

// Category groups issues by the part of the document they concern.
type Category string

const (
	CategoryTechnicalData Category = "Technical Data"
	CategoryChangeDetails Category = "Change Details"
	CategoryDocumentation Category = "Documentation"
	CategoryApprovals     Category = "Approvals"
	CategoryQuality       Category = "Quality"
)

// Check records one applied check.
type Check struct {
	Name   string      `json:"check"`
	Status CheckResult `json:"status"`
}

// Issue is a defect raised by a failed or warned check.
type Issue struct {
	ID                string         `json:"id"`
	Severity          rules.Severity `json:"severity"`
	Category          Category       `json:"category"`
	Description       string         `json:"description"`
	AffectedSection   string         `json:"affected_section"`
	RecommendedAction string         `json:"recommended_action"`
}

// Verdict is the result of Validate. Warnings holds every non-critical
// issue.
type Verdict struct {
	Status         Status   `json:"status"`
	Score          float64  `json:"score"`
	TotalChecks    int      `json:"total_checks"`
	PassedChecks   int      `json:"passed_checks"`
	FailedChecks   int      `json:"failed_checks"`
	CriticalIssues []Issue  `json:"critical_issues"`
	Warnings       []Issue  `json:"warnings"`
	Checks         []Check  `json:"checks"`
	ChecksApplied  []string `json:"checks_applied"`
}

// RecommendedAction derives the follow-up wording from severity alone.
func RecommendedAction(s rules.Severity) string {
	switch s {
	case rules.SeverityCritical:
		return "MUST be resolved before CIR approval"
	case rules.SeverityHigh:
		return "Should be resolved before CIR approval"
	case rules.SeverityMedium:
		return "Should be addressed in next revision"
	default:
		return "Consider for future improvements"
	}
}

// Validator applies the check groups. It is stateless between calls.
type Validator struct {
	rules rules.Validation
	log   *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.log = l
		}
	}
}

// New creates a Validator over table.
func New(table *rules.Table, opts ...Option) *Validator {
	v := &Validator{rules: table.Validation, log: logging.New("validator")}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// run accumulates checks and issues for one Validate call.
type run struct {
	checks []Check
	issues []Issue
}

func (r *run) pass(name string) {
	r.checks = append(r.checks, Check{Name: name, Status: CheckPass})
}

func (r *run) raise(name string, result CheckResult, sev rules.Severity, cat Category, section, desc string) {
	r.checks = append(r.checks, Check{Name: name, Status: result})
	r.issues = append(r.issues, Issue{
		ID:                fmt.Sprintf("ISSUE_%04d", len(r.issues)+1),
		Severity:          sev,
		Category:          cat,
		Description:       desc,
		AffectedSection:   section,
		RecommendedAction: RecommendedAction(sev),
	})
}

func (r *run) require(ok bool, name string, sev rules.Severity, cat Category, section, desc string) {
	if ok {
		r.pass(name)
		return
	}
	r.raise(name, CheckFail, sev, cat, section, desc)
}

// Validate runs every check group in order and scores the document as
// passed/total*100. A nil document yields a PENDING verdict.
func (v *Validator) Validate(doc *Document) Verdict {
	if doc == nil {
		return Verdict{Status: StatusPending, CriticalIssues: []Issue{}, Warnings: []Issue{}, Checks: []Check{}, ChecksApplied: []string{}}
	}

	r := &run{}
	v.requiredFields(r, doc)
	v.technicalData(r, doc)
	v.changeDetails(r, doc)
	v.documentation(r, doc)
	v.approvals(r, doc)
	v.quality(r, doc)

	verdict := Verdict{
		TotalChecks:    len(r.checks),
		CriticalIssues: []Issue{},
		Warnings:       []Issue{},
		Checks:         r.checks,
		ChecksApplied:  make([]string, 0, len(r.checks)),
	}
	for _, c := range r.checks {
		verdict.ChecksApplied = append(verdict.ChecksApplied, c.Name)
		if c.Status == CheckPass {
			verdict.PassedChecks++
		}
	}
	verdict.FailedChecks = verdict.TotalChecks - verdict.PassedChecks
	if verdict.TotalChecks > 0 {
		verdict.Score = float64(verdict.PassedChecks) / float64(verdict.TotalChecks) * 100
	}
	for _, is := range r.issues {
		if is.Severity == rules.SeverityCritical {
			verdict.CriticalIssues = append(verdict.CriticalIssues, is)
		} else {
			verdict.Warnings = append(verdict.Warnings, is)
		}
	}
	verdict.Status = v.Decide(verdict.Score, len(verdict.CriticalIssues))

	v.log.Debug("validation complete",
		slog.String("case_id", doc.CaseID),
		slog.String("status", string(verdict.Status)),
		slog.Float64("score", verdict.Score),
		slog.Int("critical", len(verdict.CriticalIssues)),
	)
	return verdict
}

// Decide returns NO-GO when any critical issue exists or the score is below
// the GO threshold, GO otherwise.
func (v *Validator) Decide(score float64, critical int) Status {
	if critical > 0 || score < v.rules.GoScore {
		return StatusNoGo
	}
	return StatusGo
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func (v *Validator) requiredFields(r *run, doc *Document) {
	r.require(present(doc.CaseID), "CIR Number Present",
		rules.SeverityCritical, CategoryDocumentation, "Missing CIR Number", "CIR document must have unique CIR number")
	r.require(present(doc.Component), "Component Identified",
		rules.SeverityCritical, CategoryTechnicalData, "Missing Component Name", "Component must be identified")
	r.require(present(doc.PartNumber) || present(doc.DrawingNumber), "Part Number Available",
		rules.SeverityHigh, CategoryTechnicalData, "Missing Part/Drawing Number", "Must have part number or drawing number")
	r.require(present(doc.ChangeType), "Change Type Specified",
		rules.SeverityHigh, CategoryChangeDetails, "Missing Change Type", "Change type must be specified")
	r.require(present(doc.ChangeReason), "Change Reason Documented",
		rules.SeverityHigh, CategoryChangeDetails, "Missing Change Reason", "Reason for change must be documented")
	r.require(present(doc.TechnicalJustification), "Technical Justification",
		rules.SeverityCritical, CategoryChangeDetails, "Missing Technical Justification", "Technical justification is mandatory")
}

func (v *Validator) technicalData(r *run, doc *Document) {
	r.require(len(strings.TrimSpace(doc.Description)) > v.rules.MinDescription, "Component Description",
		rules.SeverityMedium, CategoryTechnicalData, "Insufficient Description", "Component description should be more detailed")
	r.require(len(doc.Specifications) > 0, "Specifications Provided",
		rules.SeverityMedium, CategoryTechnicalData, "Missing Specifications", "Technical specifications should be included")
}

func (v *Validator) changeDetails(r *run, doc *Document) {
	r.require(present(doc.ImplementationDate), "Implementation Date Set",
		rules.SeverityHigh, CategoryChangeDetails, "Missing Implementation Date", "Implementation date must be specified")
	r.require(present(doc.ChangeOwner), "Change Owner Assigned",
		rules.SeverityHigh, CategoryChangeDetails, "Missing Change Owner", "Change owner must be assigned")
	r.require(len(doc.AffectedAreas) > 0, "Affected Areas Documented",
		rules.SeverityMedium, CategoryChangeDetails, "No Affected Areas Listed", "Should document areas affected by change")
}

func (v *Validator) documentation(r *run, doc *Document) {
	r.require(len(strings.TrimSpace(doc.Text)) > v.rules.MinTextLength, "Documentation Complete",
		rules.SeverityMedium, CategoryDocumentation, "Insufficient Documentation", "Document seems incomplete or truncated")

	lower := strings.ToLower(doc.Text)
	found := 0
	for _, term := range v.rules.DocumentationTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			found++
		}
	}
	r.require(found >= v.rules.MinDocumentationTerms, "Key Documentation Elements",
		rules.SeverityMedium, CategoryDocumentation, "Missing Key Documentation",
		fmt.Sprintf("Found %d/%d expected documentation elements", found, len(v.rules.DocumentationTerms)))
}

func (v *Validator) approvals(r *run, doc *Document) {
	lower := strings.ToLower(doc.Text)
	has := false
	for _, term := range v.rules.ApprovalTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			has = true
			break
		}
	}
	r.require(has, "Approval Evidence",
		rules.SeverityHigh, CategoryApprovals, "No Approval Evidence Found", "Document should show approval signatures or evidence")
}

func (v *Validator) quality(r *run, doc *Document) {
	const name = "Text Extraction Quality"
	switch c := doc.ExtractionConfidence; {
	case c >= v.rules.ExtractionPass:
		r.pass(name)
	case c >= v.rules.ExtractionWarn:
		r.raise(name, CheckWarn, rules.SeverityMedium, CategoryQuality, "Low OCR Confidence",
			fmt.Sprintf("OCR confidence %.1f%% - manual review recommended", c))
	default:
		r.raise(name, CheckFail, rules.SeverityHigh, CategoryQuality, "Very Low OCR Confidence",
			fmt.Sprintf("OCR confidence %.1f%% - document may be unreadable", c))
	}

	n := len(doc.ExtractionErrors)
	if n == 0 {
		r.pass("No Extraction Errors")
		return
	}
	r.raise("No Extraction Errors", CheckFail, rules.SeverityMedium, CategoryQuality,
		fmt.Sprintf("%d Extraction Errors", n), "Some content may not have been extracted correctly")
}
