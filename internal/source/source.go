// SPDX-License-Identifier: Apache-2.0

// Package source turns raw document bytes into the plain text, page text and
// extraction confidence consumed by the analysis pipeline.
package source

import (
	"context"
	"errors"
)

// ErrUnsupportedFormat is returned when no registered parser accepts an input.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extraction confidence reported by the parsers, in percent.
const (
	// PlainTextConfidence applies to inputs that are already text.
	PlainTextConfidence = 100.0
	// NativeTextConfidence applies to text read from a PDF text layer.
	NativeTextConfidence = 95.0
)

// Input describes the raw bytes handed to the loader.
type Input struct {
	// Content is the raw document content.
	Content []byte
	// Format is an optional hint such as "pdf", "md" or "json".
	Format string
	ID     string
}

// Document is the acquired text of one input.
type Document struct {
	ID         string            `json:"id"`
	Parser     string            `json:"parser"`
	Text       string            `json:"text"`
	Pages      []string          `json:"pages,omitempty"`
	Confidence float64           `json:"confidence"`
	Errors     []string          `json:"errors,omitempty"`
	Seed       map[string]string `json:"seed,omitempty"`
}

// Parser converts one input format into a Document.
type Parser interface {
	CanHandle(in Input) bool
	Parse(ctx context.Context, in Input) (*Document, error)
	Name() string
}
