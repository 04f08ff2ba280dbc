// SPDX-License-Identifier: Apache-2.0

package requirement_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirscan/cirscan/internal/requirement"
	"github.com/cirscan/cirscan/internal/rules"
)

const boltCIM = `CIM 12345
Blade Root Bolt Replacement Procedure
The blade root bolts showed fatigue cracking.
Step 1: Remove the damaged bolt from the hub flange
Step 2: Install the new bolt and torque to the rated value
Conduct the ultrasonic test on each bolt
Document all torque values in the service log
Visual inspection: check the bolt heads for corrosion
`

func newExtractor() *requirement.Extractor {
	return requirement.NewExtractor(rules.MustDefault())
}

// ---------------------------------------------------------------------------
// Header fields
// ---------------------------------------------------------------------------

func TestExtract_HeaderFields(t *testing.T) {
	a := newExtractor().Extract(boltCIM, "cim.pdf")

	assert.Equal(t, "12345", a.CaseID)
	assert.Equal(t, "Blade Root Bolt Replacement Procedure", a.Title, "first line is too short to be a title")
	assert.Equal(t, "cim.pdf", a.Source)
	assert.Equal(t, []string{"Blade", "Hub", "Bolt"}, a.AffectedComponents)
	assert.Equal(t, []string{"Fatigue", "Corrosion", "Cracking"}, a.FailureTypes)
}

func TestExtract_CaseIDPatternOrder(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "cim wins over case id", text: "Case ID: AB-77\nCIM 99\n", want: "99"},
		{name: "case number", text: "Case Number: XK-9\n", want: "XK-9"},
		{name: "generic identifier", text: "reference ABC-123-456 applies\n", want: "ABC-123-456"},
		{name: "none", text: "nothing to see here\n", want: requirement.DefaultCaseID},
	}

	ex := newExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ex.Extract(tt.text, "").CaseID)
		})
	}
}

func TestExtract_EmptyText(t *testing.T) {
	a := newExtractor().Extract("", "empty")

	assert.Equal(t, requirement.DefaultCaseID, a.CaseID)
	assert.Equal(t, "CIM Case Summary", a.Title)
	assert.Empty(t, a.Requirements)
	assert.NotNil(t, a.Requirements, "requirements serialize as an empty list")
	assert.Empty(t, a.AffectedComponents)
}

// ---------------------------------------------------------------------------
// Requirements
// ---------------------------------------------------------------------------

func TestExtract_Requirements(t *testing.T) {
	a := newExtractor().Extract(boltCIM, "cim.pdf")
	require.Len(t, a.Requirements, 6)

	ids := make([]string, 0, len(a.Requirements))
	for _, r := range a.Requirements {
		ids = append(ids, r.ID)
		assert.Equal(t, "cim.pdf", r.Source)
		assert.NotEmpty(t, r.ExpectedEvidence)
	}
	assert.Equal(t, []string{"TEST-001", "DOC-002", "VIS-003", "VIS-004", "PROC-005", "PROC-006"}, ids)

	test := a.Requirements[0]
	assert.Equal(t, requirement.TypeTestMethod, test.Type)
	assert.Equal(t, "ultrasonic", test.Description)
	assert.Equal(t, rules.SeverityHigh, test.Severity)

	doc := a.Requirements[1]
	assert.Equal(t, requirement.TypeDocumentation, doc.Type)
	assert.Equal(t, "torque values in the service log", doc.Description)

	vis := a.Requirements[2]
	assert.Equal(t, requirement.TypeVisualInspection, vis.Type)
	assert.Equal(t, rules.SeverityMedium, vis.Severity)
	assert.Equal(t, []string{"Photo"}, vis.ExpectedEvidence)
	assert.Equal(t, []string{"Bolt"}, vis.Components)

	step := a.Requirements[4]
	assert.Equal(t, requirement.TypeProcedure, step.Type)
	assert.Equal(t, "Procedure Step 1", step.Title)
	assert.Equal(t, "Remove the damaged bolt from the hub flange", step.Description)
	assert.Equal(t, []string{"Completion log", "Signature", "Timestamp"}, step.ExpectedEvidence)
	assert.Equal(t, []string{"Hub", "Bolt"}, step.Components)
	assert.Equal(t, "Procedure Step 2", a.Requirements[5].Title)
}

func TestExtract_IDsUniqueAndLocalToCall(t *testing.T) {
	ex := newExtractor()
	first := ex.Extract(boltCIM, "a")
	second := ex.Extract(boltCIM, "b")

	seen := map[string]bool{}
	for _, r := range first.Requirements {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
	}
	require.Equal(t, len(first.Requirements), len(second.Requirements))
	for i := range first.Requirements {
		assert.Equal(t, first.Requirements[i].ID, second.Requirements[i].ID, "numbering restarts per call")
	}
}

func TestExtract_ShortDocumentationDropped(t *testing.T) {
	a := newExtractor().Extract("Record the item.\n", "")
	assert.Zero(t, a.CountByType()[requirement.TypeDocumentation])
}

func TestAnalysis_CountByTypeAndSummary(t *testing.T) {
	a := newExtractor().Extract(boltCIM, "cim.pdf")
	counts := a.CountByType()

	assert.Equal(t, 1, counts[requirement.TypeTestMethod])
	assert.Equal(t, 1, counts[requirement.TypeDocumentation])
	assert.Equal(t, 2, counts[requirement.TypeVisualInspection])
	assert.Equal(t, 2, counts[requirement.TypeProcedure])

	s := a.Summarize()
	assert.Equal(t, 6, s.TotalRequirements)
	assert.Equal(t, "12345", s.CaseID)
}

// ---------------------------------------------------------------------------
// Side channels
// ---------------------------------------------------------------------------

const sectionedCIM = `Work Instructions:
Remove the access panel and isolate the converter before starting.
Then proceed.
Test Procedure:
Apply rated torque to every fastener and record the achieved values.
Acceptance Criteria: no visible movement after torque
`

func TestExtract_SideChannels(t *testing.T) {
	a := newExtractor().Extract(sectionedCIM, "")

	require.NotEmpty(t, a.WorkInstructions)
	assert.Equal(t, "Instruction 1", a.WorkInstructions[0].Label)
	assert.True(t, strings.HasPrefix(a.WorkInstructions[0].Text, "Remove the access panel"))

	require.Len(t, a.TestProcedures, 1)
	assert.Equal(t, "Test Procedure 1", a.TestProcedures[0].Label)
	assert.Contains(t, a.TestProcedures[0].Text, "Apply rated torque")

	require.Len(t, a.AcceptanceStandards, 1)
	assert.Equal(t, "Standard 1", a.AcceptanceStandards[0].Label)
	assert.True(t, strings.HasPrefix(a.AcceptanceStandards[0].Text, "no visible movement"))
}

func TestExtract_SectionLimits(t *testing.T) {
	body := strings.Repeat("line of instruction text that is long enough\n", 20)
	a := newExtractor().Extract("Work Instructions:\n"+body, "")

	require.Len(t, a.WorkInstructions, 1)
	text := a.WorkInstructions[0].Text
	assert.LessOrEqual(t, len(text), 500)
	assert.LessOrEqual(t, strings.Count(text, "\n"), 4, "at most five lines")
}

func TestExtract_VocabularyChannels(t *testing.T) {
	a := newExtractor().Extract("Check for rust and discoloration; attach the test report and photo.", "")

	assert.Equal(t, []string{"Rust", "Discoloration", "Color"}, a.VisualCriteria, "color occurs inside discoloration")
	assert.Equal(t, []string{"Test Report", "Photo"}, a.DocumentationTypes)
}
