// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cirscan/cirscan/internal/source"
)

// TextParser is the fallback for plain text. Form feeds separate pages.
type TextParser struct{}

func NewTextParser() *TextParser {
	return &TextParser{}
}

func (p *TextParser) Name() string {
	return "text"
}

// CanHandle accepts the "txt"/"text" hints and any unhinted valid UTF-8.
func (p *TextParser) CanHandle(in source.Input) bool {
	switch strings.ToLower(in.Format) {
	case "txt", "text":
		return true
	case "":
		return utf8.Valid(in.Content)
	}
	return false
}

func (p *TextParser) Parse(_ context.Context, in source.Input) (*source.Document, error) {
	text := strings.ReplaceAll(string(in.Content), "\r\n", "\n")
	var pages []string
	for _, page := range strings.Split(text, "\f") {
		if page = strings.TrimSpace(page); page != "" {
			pages = append(pages, page)
		}
	}
	return &source.Document{
		Text:       strings.TrimSpace(strings.ReplaceAll(text, "\f", "\n")),
		Pages:      pages,
		Confidence: source.PlainTextConfidence,
	}, nil
}

// Default returns every parser in detection order: specific formats first,
// plain text last.
func Default() []source.Parser {
	return []source.Parser{
		NewPDFParser(),
		NewMarkdownParser(),
		NewRecordParser(),
		NewTextParser(),
	}
}
