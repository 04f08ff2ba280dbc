// SPDX-License-Identifier: Apache-2.0

package validator

import (
	"regexp"
	"strings"

	"github.com/cirscan/cirscan/internal/metadata"
	"github.com/cirscan/cirscan/internal/rules"
)

// Document is the structured view of an evidence document that the
// validator checks.
type Document struct {
	CaseID                 string            `json:"case_id"`
	Component              string            `json:"component"`
	PartNumber             string            `json:"part_number"`
	DrawingNumber          string            `json:"drawing_number"`
	Revision               string            `json:"revision"`
	Description            string            `json:"description"`
	Specifications         map[string]string `json:"specifications"`
	ChangeType             string            `json:"change_type"`
	ChangeReason           string            `json:"change_reason"`
	TechnicalJustification string            `json:"technical_justification"`
	ImplementationDate     string            `json:"implementation_date"`
	ChangeOwner            string            `json:"change_owner"`
	AffectedAreas          []string          `json:"affected_areas"`

	Text                 string   `json:"-"`
	Pages                []string `json:"-"`
	ExtractionConfidence float64  `json:"extraction_confidence"`
	ExtractionErrors     []string `json:"extraction_errors,omitempty"`
}

// Builder fills a Document from extracted metadata using the configured
// field lookup lists.
type Builder struct {
	fields rules.DocumentFields
}

// NewBuilder creates a Builder over table.
func NewBuilder(table *rules.Table) *Builder {
	return &Builder{fields: table.DocumentFields}
}

var (
	paragraphSep = regexp.MustCompile(`\n[ \t]*\n`)
	listSep      = regexp.MustCompile(`[,;]`)
)

// Build assembles a Document. Each field takes the first metadata name in
// its lookup list that is present. Change type falls back to keyword
// inference over text; change reason falls back to the first substantial
// paragraph.
func (b *Builder) Build(text string, pages []string, set *metadata.Set, confidence float64, errs []string) *Document {
	if set == nil {
		set = metadata.NewSet()
	}
	f := b.fields
	first := func(names []string) string {
		v, _ := set.First(names...)
		return v
	}

	doc := &Document{
		CaseID:                 first(f.CaseID),
		Component:              first(f.Component),
		PartNumber:             first(f.PartNumber),
		DrawingNumber:          first(f.DrawingNumber),
		Revision:               first(f.Revision),
		Description:            first(f.Description),
		Specifications:         map[string]string{},
		ChangeType:             first(f.ChangeType),
		ChangeReason:           first(f.ChangeReason),
		TechnicalJustification: first(f.TechnicalJustification),
		ImplementationDate:     first(f.ImplementationDate),
		ChangeOwner:            first(f.ChangeOwner),
		AffectedAreas:          b.affectedAreas(set),
		Text:                   text,
		Pages:                  pages,
		ExtractionConfidence:   confidence,
		ExtractionErrors:       errs,
	}

	for _, name := range f.Specifications {
		if fld, ok := set.Get(name); ok {
			doc.Specifications[fld.Name] = fld.Value.String()
		}
	}

	lower := strings.ToLower(text)
	if doc.ChangeType == "" {
		for _, kw := range f.ChangeTypeKeywords {
			if kw.Keyword != "" && strings.Contains(lower, strings.ToLower(kw.Keyword)) {
				doc.ChangeType = kw.Label
				break
			}
		}
	}
	if doc.ChangeReason == "" {
		doc.ChangeReason = firstParagraph(text, f.MinParagraph)
	}
	return doc
}

func (b *Builder) affectedAreas(set *metadata.Set) []string {
	for _, name := range b.fields.AffectedAreas {
		fld, ok := set.Get(name)
		if !ok {
			continue
		}
		if fld.Value.Kind == metadata.KindList {
			return append([]string(nil), fld.Value.Items...)
		}
		var out []string
		for _, part := range listSep.Split(fld.Value.Text, -1) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}

func firstParagraph(text string, minLen int) string {
	for _, p := range paragraphSep.Split(text, -1) {
		p = strings.Join(strings.Fields(p), " ")
		if len(p) > minLen {
			return p
		}
	}
	return ""
}
