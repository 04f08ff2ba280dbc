// SPDX-License-Identifier: Apache-2.0

package evidence

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cirscan/cirscan/internal/metadata"
	"github.com/cirscan/cirscan/internal/requirement"
	"github.com/cirscan/cirscan/internal/rules"
	"github.com/cirscan/cirscan/internal/textutil"
)

// Matcher scores requirements against evidence text. It keeps no state
// between calls and is safe for concurrent use.
type Matcher struct {
	table *rules.Table
}

// NewMatcher creates a Matcher over table.
func NewMatcher(table *rules.Table) *Matcher {
	return &Matcher{table: table}
}

// Assess evaluates every applicable requirement against text. meta is the
// evidence document's metadata; analysis supplies the requirements
// document's affected components and may be nil.
func (m *Matcher) Assess(text string, meta *metadata.Set, reqs []requirement.Requirement, analysis *requirement.Analysis) ([]Evidence, Summary) {
	lower := strings.ToLower(text)
	visual := m.visualReferences(text)

	applicable := m.filterApplicable(reqs, meta, analysis)
	out := make([]Evidence, 0, len(applicable))
	for _, req := range applicable {
		found := m.search(req.Description, lower)
		status, confidence := m.DetermineStatus(len(found), len(req.ExpectedEvidence))
		out = append(out, Evidence{
			RequirementID:    req.ID,
			RequirementTitle: req.Title,
			Status:           status,
			Found:            found,
			ExpectedEvidence: req.ExpectedEvidence,
			Comment:          comment(status, len(found), len(req.ExpectedEvidence)),
			Excerpt:          m.excerpt(req.Description, text),
			VisualEvidence:   visual,
			Confidence:       confidence,
		})
	}
	return out, m.Summarize(out)
}

// filterApplicable drops requirements whose component restriction does not
// cover the evidence document's declared component type. With no declared
// affected components every requirement applies.
func (m *Matcher) filterApplicable(reqs []requirement.Requirement, meta *metadata.Set, analysis *requirement.Analysis) []requirement.Requirement {
	if analysis == nil || len(analysis.AffectedComponents) == 0 {
		return reqs
	}
	var component string
	if meta != nil {
		component = strings.ToLower(meta.Text(m.table.Matching.ComponentField))
	}
	for _, c := range analysis.AffectedComponents {
		if strings.Contains(component, strings.ToLower(c)) {
			return reqs
		}
	}
	return nil
}

func (m *Matcher) search(description, lower string) []string {
	var found []string
	for _, tok := range m.tokens(description) {
		if strings.Contains(lower, tok) {
			found = append(found, "Found: "+tok)
		}
	}

	descLower := strings.ToLower(description)
	for _, b := range m.table.Matching.Boosters {
		if textutil.ContainsAny(descLower, b.Triggers) && textutil.ContainsAny(lower, b.Markers) {
			found = append(found, b.Label)
		}
	}
	return found
}

// tokens returns the lower-cased words of s longer than the configured
// minimum, with surrounding punctuation stripped. Repeated words are kept
// unless DistinctTokens is set.
func (m *Matcher) tokens(s string) []string {
	distinct := m.table.Matching.DistinctTokens
	seen := make(map[string]bool)
	var out []string
	for _, w := range strings.Fields(s) {
		w = strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}))
		if utf8.RuneCountInString(w) <= m.table.Matching.MinTokenLength {
			continue
		}
		if distinct {
			if seen[w] {
				continue
			}
			seen[w] = true
		}
		out = append(out, w)
	}
	return out
}

// DetermineStatus maps an evidence count to a status and confidence using
// the configured thresholds. expected below one is treated as one.
func (m *Matcher) DetermineStatus(found, expected int) (Status, float64) {
	th := m.table.Thresholds
	if found == 0 {
		return StatusUnableToVerify, th.UnableConfidence
	}
	if expected < 1 {
		expected = 1
	}
	ratio := float64(found) / float64(expected)
	switch {
	case ratio >= th.MetRatio:
		return StatusMet, th.MetBase + min(th.MetBonusCap, float64(found)*th.MetPerItem)
	case ratio >= th.PartialRatio:
		return StatusPartial, th.PartialBase + ratio*th.PartialScale
	default:
		return StatusNotMet, min(th.NotMetCap, th.NotMetBase+float64(found)*th.NotMetPerItem)
	}
}

func comment(status Status, found, expected int) string {
	switch status {
	case StatusMet:
		return fmt.Sprintf("All required evidence found (%d items verified)", found)
	case StatusPartial:
		return fmt.Sprintf("Partial compliance: %d of %d requirements met. %d items missing.", found, expected, max(0, expected-found))
	case StatusNotMet:
		return fmt.Sprintf("Non-compliant: %d requirements expected, %d found", expected, found)
	default:
		return "Unable to verify requirement: insufficient evidence in CIR"
	}
}

// excerpt joins the sentences of text that mention any of the first few
// description words, capped at the configured length.
func (m *Matcher) excerpt(description, text string) string {
	keywords := strings.Fields(strings.ToLower(description))
	if n := m.table.Matching.ExcerptKeywords; len(keywords) > n {
		keywords = keywords[:n]
	}
	if len(keywords) == 0 {
		return ""
	}

	limit := m.table.Matching.ExcerptMaxLength
	var picked []string
	for _, s := range sentences(text) {
		if !textutil.ContainsAny(strings.ToLower(s), keywords) {
			continue
		}
		picked = append(picked, s)
		if len(strings.Join(picked, " ")) > limit {
			break
		}
	}
	return textutil.Truncate(strings.Join(picked, " "), limit)
}

// sentences splits text after '.', '!' or '?' when followed by whitespace.
func sentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes)-1; i++ {
		if strings.ContainsRune(".!?", runes[i]) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(string(runes[start : i+1])); s != "" {
				out = append(out, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(string(runes[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

func (m *Matcher) visualReferences(text string) []string {
	refs := []string{}
	for _, re := range m.table.VisualEvidence {
		refs = append(refs, re.FindAllString(text, -1)...)
	}
	return refs
}

// Summarize counts statuses and derives the requirement-satisfaction score
// and decision. Unable-to-verify items count toward the total only.
func (m *Matcher) Summarize(items []Evidence) Summary {
	th := m.table.Thresholds
	s := Summary{Total: len(items)}
	for _, e := range items {
		switch e.Status {
		case StatusMet:
			s.Met++
		case StatusPartial:
			s.Partial++
		case StatusNotMet:
			s.NotMet++
		case StatusUnableToVerify:
			s.UnableToVerify++
		}
	}
	if s.Total > 0 {
		s.ComplianceScore = (float64(s.Met) + th.PartialWeight*float64(s.Partial)) / float64(s.Total) * 100
	}
	s.GoNoGo = DecisionNoGo
	if s.ComplianceScore >= th.GoScore && s.NotMet == 0 {
		s.GoNoGo = DecisionGo
	}
	return s
}
