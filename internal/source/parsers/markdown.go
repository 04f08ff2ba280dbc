// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"strings"

	"github.com/cirscan/cirscan/internal/source"
)

// MarkdownParser reads Markdown reports. Each heading opens a new page and
// heading markers are dropped, so "## CIR ID: 42" reads as "CIR ID: 42".
type MarkdownParser struct{}

// NewMarkdownParser creates a new MarkdownParser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

func (p *MarkdownParser) Name() string {
	return "markdown"
}

// CanHandle returns true for the "markdown"/"md" format hints, or content
// that contains a Markdown heading.
func (p *MarkdownParser) CanHandle(in source.Input) bool {
	switch strings.ToLower(in.Format) {
	case "markdown", "md":
		return true
	case "":
		content := strings.TrimSpace(string(in.Content))
		return strings.HasPrefix(content, "#") || strings.Contains(content, "\n#")
	}
	return false
}

func (p *MarkdownParser) Parse(_ context.Context, in source.Input) (*source.Document, error) {
	var pages []string
	var current []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(current, "\n"))
		if text != "" {
			pages = append(pages, text)
		}
		current = nil
	}

	for _, line := range strings.Split(string(in.Content), "\n") {
		if strings.HasPrefix(line, "#") {
			flush()
			line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
		current = append(current, line)
	}
	flush()

	return &source.Document{
		Text:       strings.Join(pages, "\n\n"),
		Pages:      pages,
		Confidence: source.PlainTextConfidence,
	}, nil
}
