// SPDX-License-Identifier: Apache-2.0

package rules_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirscan/cirscan/internal/rules"
)

// ---------------------------------------------------------------------------
// Default table
// ---------------------------------------------------------------------------

func TestDefault_Compiles(t *testing.T) {
	table, err := rules.Default().Compile()
	require.NoError(t, err)

	assert.Len(t, table.CaseID, 3)
	assert.Len(t, table.Requirements, 4)
	assert.NotNil(t, table.KeyValue)
	assert.NotNil(t, table.Date)
	assert.NotEmpty(t, table.VisualEvidence)

	for _, r := range table.Requirements {
		assert.True(t, r.Severity.Valid(), "rule %s has invalid severity", r.Prefix)
		assert.NotEmpty(t, r.Regexps, "rule %s has no patterns", r.Prefix)
	}
}

func TestDefault_VisualInspectionIsMedium(t *testing.T) {
	for _, r := range rules.Default().Requirements {
		if r.Type == "visual-inspection" {
			assert.Equal(t, rules.SeverityMedium, r.Severity)
			return
		}
	}
	t.Fatal("no visual-inspection rule in default table")
}

func TestSeverity_Valid(t *testing.T) {
	assert.True(t, rules.SeverityCritical.Valid())
	assert.True(t, rules.SeverityLow.Valid())
	assert.False(t, rules.Severity("urgent").Valid())
	assert.False(t, rules.Severity("").Valid())
}

// ---------------------------------------------------------------------------
// Overlay parsing
// ---------------------------------------------------------------------------

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	table, err := rules.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, rules.Default().Thresholds, table.Thresholds)
	assert.Equal(t, rules.Default().Vocabulary.Components, table.Vocabulary.Components)
}

func TestParse_OverridesSection(t *testing.T) {
	data := []byte(`
vocabulary:
  components: [propeller, spindle]
thresholds:
  go_score: 90
`)
	table, err := rules.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"propeller", "spindle"}, table.Vocabulary.Components)
	assert.Equal(t, rules.Default().Vocabulary.Failures, table.Vocabulary.Failures, "untouched list keeps default")
	assert.Equal(t, 90.0, table.Thresholds.GoScore)
	assert.Equal(t, 0.9, table.Thresholds.MetRatio, "untouched threshold keeps default")
}

func TestParse_JSONOverlay(t *testing.T) {
	table, err := rules.Parse([]byte(`{"validation": {"min_text_length": 1000}}`))
	require.NoError(t, err)
	assert.Equal(t, 1000, table.Validation.MinTextLength)
}

func TestParse_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown top-level key", data: "colour: blue\n"},
		{name: "ratio out of range", data: "thresholds:\n  met_ratio: 1.5\n"},
		{name: "wrong type", data: "validation:\n  min_text_length: long\n"},
		{name: "unknown severity", data: "requirements:\n  - type: procedure\n    prefix: P\n    title: Step\n    severity: urgent\n    patterns: ['step']\n"},
		{name: "unknown requirement type", data: "requirements:\n  - type: audit\n    prefix: A\n    title: Audit\n    severity: low\n    patterns: ['audit']\n"},
		{name: "bad regexp", data: "case_id_patterns: ['([unclosed']\n"},
		{name: "malformed yaml", data: "vocabulary: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, rules.ErrInvalidRules), "want ErrInvalidRules, got %v", err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title:\n  default: Untitled\n"), 0o600))

	table, err := rules.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Untitled", table.Title.Default)
	assert.Equal(t, 20, table.Title.ScanLines)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := rules.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rule file")
}

func TestMarshal_RoundTripsThroughParse(t *testing.T) {
	data, err := rules.Marshal(rules.Default())
	require.NoError(t, err)

	table, err := rules.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, rules.Default().Metadata.Priority, table.Metadata.Priority)
}
