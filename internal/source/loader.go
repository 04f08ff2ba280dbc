// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Loader picks the first registered parser that accepts an input.
type Loader struct {
	parsers []Parser
}

// NewLoader creates a Loader. Parser order matters: more specific parsers
// must come before generic fallbacks.
func NewLoader(parsers ...Parser) *Loader {
	return &Loader{parsers: parsers}
}

// Load parses in with the first parser that can handle it.
func (l *Loader) Load(ctx context.Context, in Input) (*Document, error) {
	parser, err := l.selectParser(in)
	if err != nil {
		return nil, err
	}

	doc, err := parser.Parse(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("parser %q failed: %w", parser.Name(), err)
	}
	doc.ID = in.ID
	doc.Parser = parser.Name()
	return doc, nil
}

// LoadFile reads path and loads it, using the file extension as the format
// hint.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return l.Load(ctx, Input{
		Content: content,
		Format:  FormatOf(path),
		ID:      path,
	})
}

// FormatOf returns the lower-cased extension of path without the dot.
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func (l *Loader) selectParser(in Input) (Parser, error) {
	for _, parser := range l.parsers {
		if parser.CanHandle(in) {
			return parser, nil
		}
	}
	return nil, fmt.Errorf("%w: no parser found for source %q (format hint: %q, registered: [%s])",
		ErrUnsupportedFormat, in.ID, in.Format, strings.Join(l.RegisteredParsers(), ", "))
}

// RegisteredParsers returns the names of all registered parsers.
func (l *Loader) RegisteredParsers() []string {
	names := make([]string, len(l.parsers))
	for i, parser := range l.parsers {
		names[i] = parser.Name()
	}
	return names
}
