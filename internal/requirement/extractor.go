// SPDX-License-Identifier: Apache-2.0

package requirement

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cirscan/cirscan/internal/rules"
	"github.com/cirscan/cirscan/internal/textutil"
)

// DefaultCaseID is reported when no case identifier pattern matches.
const DefaultCaseID = "UNKNOWN"

// Extractor parses requirements documents using a compiled rule table.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	table *rules.Table
}

// NewExtractor creates an Extractor over table.
func NewExtractor(table *rules.Table) *Extractor {
	return &Extractor{table: table}
}

// sequence numbers requirements within one extraction run.
type sequence struct {
	n int
}

func (s *sequence) next(prefix string) string {
	s.n++
	return fmt.Sprintf("%s-%03d", prefix, s.n)
}

// Extract parses text into an Analysis. It never fails: missing signals
// yield defaults and empty collections.
func (e *Extractor) Extract(text, source string) *Analysis {
	lower := strings.ToLower(text)
	vocab := e.table.Vocabulary

	a := &Analysis{
		CaseID:             e.caseID(text),
		Title:              e.title(text),
		Source:             source,
		AffectedComponents: textutil.PresentTerms(lower, vocab.Components),
		FailureTypes:       textutil.PresentTerms(lower, vocab.Failures),
		Requirements:       []Requirement{},
	}

	seq := &sequence{}
	for _, rule := range e.table.Requirements {
		a.Requirements = append(a.Requirements, e.applyRule(rule, text, source, a.AffectedComponents, seq)...)
	}

	sections := e.table.Sections
	a.WorkInstructions = splitSections(e.table.WorkHeader, text, "Instruction", sections)
	a.TestProcedures = splitSections(e.table.TestHeader, text, "Test Procedure", sections)
	a.AcceptanceStandards = e.acceptanceStandards(text)
	a.VisualCriteria = textutil.PresentTerms(lower, vocab.VisualCriteria)
	a.DocumentationTypes = textutil.PresentTerms(lower, vocab.DocumentationTypes)

	return a
}

func (e *Extractor) caseID(text string) string {
	for _, re := range e.table.CaseID {
		if m := re.FindStringSubmatch(text); m != nil {
			if id := textutil.LastGroup(m); id != "" {
				return id
			}
		}
	}
	return DefaultCaseID
}

func (e *Extractor) title(text string) string {
	rule := e.table.Title
	lines := strings.Split(text, "\n")
	if rule.ScanLines > 0 && len(lines) > rule.ScanLines {
		lines = lines[:rule.ScanLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if n := len([]rune(line)); n > rule.MinLength && n < rule.MaxLength {
			return line
		}
	}
	return rule.Default
}

func (e *Extractor) applyRule(rule rules.CompiledRequirement, text, source string, affected []string, seq *sequence) []Requirement {
	var out []Requirement
	for _, re := range rule.Regexps {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			title := rule.Title
			var desc string
			if rule.Numbered && len(m) > 2 {
				title = strings.ReplaceAll(title, "{n}", m[1])
				desc = strings.TrimSpace(m[2])
			} else {
				desc = textutil.LastGroup(m)
			}
			if rule.MinDescription > 0 && len([]rune(desc)) <= rule.MinDescription {
				continue
			}
			out = append(out, Requirement{
				ID:                 seq.next(rule.Prefix),
				Title:              title,
				Description:        desc,
				Type:               Type(rule.Type),
				Components:         componentsIn(desc, affected),
				AcceptanceCriteria: rule.AcceptanceCriteria,
				ExpectedEvidence:   append([]string(nil), rule.Evidence...),
				Severity:           rule.Severity,
				Source:             source,
			})
		}
	}
	return out
}

// componentsIn returns the affected components named in desc.
func componentsIn(desc string, affected []string) []string {
	lower := strings.ToLower(desc)
	out := []string{}
	for _, c := range affected {
		if strings.Contains(lower, strings.ToLower(c)) {
			out = append(out, c)
		}
	}
	return out
}

func splitSections(header *regexp.Regexp, text, label string, rule rules.SectionRules) []Section {
	if header == nil {
		return nil
	}
	parts := header.Split(text, -1)
	var out []Section
	for i, seg := range parts[1:] {
		if len(strings.TrimSpace(seg)) <= rule.MinSegment {
			continue
		}
		body := textutil.FirstLines(strings.TrimLeft(seg, "\n"), rule.MaxLines)
		out = append(out, Section{
			Label: fmt.Sprintf("%s %d", label, i+1),
			Text:  textutil.Truncate(strings.TrimSpace(body), rule.MaxChars),
		})
	}
	return out
}

func (e *Extractor) acceptanceStandards(text string) []Section {
	var out []Section
	for _, re := range e.table.Acceptance {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			snippet := strings.TrimSpace(textutil.LastGroup(m))
			if snippet == "" {
				continue
			}
			out = append(out, Section{
				Label: fmt.Sprintf("Standard %d", len(out)+1),
				Text:  textutil.Truncate(snippet, e.table.Sections.MaxStandardChars),
			})
		}
	}
	return out
}
