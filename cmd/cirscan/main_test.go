// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirscan/cirscan/internal/rules"
)

// execute runs the root command in-process and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootFlags.rulesPath = ""
		rootFlags.logLevel = "info"
		requirementsFlags.summary = false
		rulesFlags.check = false
		analyzeFlags.output = ""
		batchFlags.output = ""
		batchFlags.maxFiles = 0
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const photoRequirement = "Visual inspection: take photos of the repaired area\n"

// ---------------------------------------------------------------------------
// analyze / batch
// ---------------------------------------------------------------------------

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	cim := writeFile(t, dir, "cim.txt", photoRequirement)
	cir := writeFile(t, dir, "cir.txt", "Photos attached: IMG_1.jpg\n")

	out, err := execute(t, "analyze", "--log-level", "error", "--requirements", cim, cir)
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, cir, res["id"])
	assert.Equal(t, "cir.txt", res["name"])
	assert.Equal(t, "NO-GO", res["decision"])
	assert.Equal(t, "GO", res["match_summary"].(map[string]any)["go_nogo"])
}

func TestAnalyze_MissingEvidence(t *testing.T) {
	dir := t.TempDir()
	cim := writeFile(t, dir, "cim.txt", photoRequirement)

	_, err := execute(t, "analyze", "--log-level", "error", "-r", cim, filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evidence: failed to read")
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	cim := writeFile(t, dir, "cim.txt", photoRequirement)
	reports := filepath.Join(dir, "reports")
	require.NoError(t, os.Mkdir(reports, 0o755))
	writeFile(t, reports, "a.txt", "Photos attached: IMG_1.jpg\n")
	writeFile(t, reports, "b.txt", "Component Type: Blade\nNo pictures taken.\n")
	writeFile(t, reports, "c.pdf", "%PDF-1.4 not really a pdf")
	outPath := filepath.Join(dir, "batch.json")

	_, err := execute(t, "batch", "--log-level", "error", "-r", cim, "--workers", "2", "-o", outPath, reports)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var report struct {
		Documents []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"documents"`
		Statistics struct {
			Total     int `json:"total"`
			Succeeded int `json:"succeeded"`
			Failed    int `json:"failed"`
		} `json:"statistics"`
		Unreadable []struct {
			Path string `json:"path"`
		} `json:"unreadable"`
	}
	require.NoError(t, json.Unmarshal(data, &report))

	require.Len(t, report.Documents, 2)
	assert.Equal(t, filepath.Join(reports, "a.txt"), report.Documents[0].ID)
	assert.Equal(t, filepath.Join(reports, "b.txt"), report.Documents[1].ID)
	require.Len(t, report.Unreadable, 1)
	assert.Equal(t, filepath.Join(reports, "c.pdf"), report.Unreadable[0].Path)
	assert.Equal(t, 3, report.Statistics.Total)
	assert.Equal(t, 2, report.Statistics.Succeeded)
	assert.Equal(t, 1, report.Statistics.Failed)
}

// ---------------------------------------------------------------------------
// requirements / metadata
// ---------------------------------------------------------------------------

func TestRequirements_Summary(t *testing.T) {
	cim := writeFile(t, t.TempDir(), "cim.md", "# CIM 12345\nStep 1: Remove the damaged blade bolt\nStep 2: Install the new blade bolt\n")

	out, err := execute(t, "requirements", "--log-level", "error", "--summary", cim)
	require.NoError(t, err)

	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, "12345", summary["case_id"])
	assert.Equal(t, 2.0, summary["total_requirements"])
	assert.Equal(t, map[string]any{"procedure": 2.0}, summary["by_type"])
}

func TestMetadata(t *testing.T) {
	cir := writeFile(t, t.TempDir(), "cir.yaml", "CIR ID: CIR-5\ntext: \"Technician: C. Diaz\"\n")

	out, err := execute(t, "metadata", "--log-level", "error", cir)
	require.NoError(t, err)

	var report metadataReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "record", report.Parser)
	assert.Equal(t, []string{"CIR ID", "Technician"}, report.Headers)
	assert.Equal(t, "seed", report.Fields[0].Source)
}

// ---------------------------------------------------------------------------
// rules / flags
// ---------------------------------------------------------------------------

func TestRules(t *testing.T) {
	out, err := execute(t, "rules", "--check")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in rules: OK")

	out, err = execute(t, "rules", "--check=false")
	require.NoError(t, err)
	table, err := rules.Parse([]byte(out))
	require.NoError(t, err, "printed rules must load back as an overlay")
	assert.Equal(t, rules.Default().Thresholds, table.Thresholds)
}

func TestRules_InvalidOverlay(t *testing.T) {
	overlay := writeFile(t, t.TempDir(), "rules.yaml", "validation:\n  min_text_length: long\n")

	_, err := execute(t, "rules", "--check", "--rules", overlay)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rules.ErrInvalidRules))
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "rules", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "loud"`)
}
