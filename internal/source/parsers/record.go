// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cirscan/cirscan/internal/source"
	"github.com/goccy/go-yaml"
)

// Reserved record keys. Every other top-level scalar becomes a metadata seed.
const (
	keyText       = "text"
	keyPages      = "pages"
	keyConfidence = "confidence"
	keyErrors     = "errors"
)

// RecordParser reads YAML or JSON extraction records, such as the output of
// an external OCR step:
//
//	text: "..."
//	pages: ["...", "..."]
//	confidence: 87.5
//	errors: ["page 3: low contrast"]
//	CIR ID: CIR-2024-001
//
// Top-level scalars other than the reserved keys are returned as the seed and
// rendered as "key: value" lines ahead of the text.
type RecordParser struct{}

func NewRecordParser() *RecordParser {
	return &RecordParser{}
}

func (p *RecordParser) Name() string {
	return "record"
}

func (p *RecordParser) CanHandle(in source.Input) bool {
	switch strings.ToLower(in.Format) {
	case "yaml", "yml", "json":
		return true
	case "":
		return strings.HasPrefix(strings.TrimSpace(string(in.Content)), "{")
	}
	return false
}

func (p *RecordParser) Parse(_ context.Context, in source.Input) (*source.Document, error) {
	var record yaml.MapSlice
	if err := yaml.Unmarshal(in.Content, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML/JSON: %w", err)
	}

	doc := &source.Document{Confidence: source.PlainTextConfidence}
	var header []string
	var body string

	for _, item := range record {
		key := fmt.Sprint(item.Key)
		switch strings.ToLower(key) {
		case keyText:
			body = fmt.Sprint(item.Value)
			continue
		case keyPages:
			doc.Pages = stringList(item.Value)
			continue
		case keyErrors:
			doc.Errors = stringList(item.Value)
			continue
		case keyConfidence:
			c, err := number(item.Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			doc.Confidence = c
			continue
		}

		value, ok := scalar(item.Value)
		if !ok {
			rendered, err := yaml.Marshal(item.Value)
			if err != nil {
				rendered = []byte(fmt.Sprintf("%v", item.Value))
			}
			header = append(header, fmt.Sprintf("%s:\n%s", key, strings.TrimRight(string(rendered), "\n")))
			continue
		}
		if doc.Seed == nil {
			doc.Seed = make(map[string]string)
		}
		doc.Seed[key] = value
		header = append(header, fmt.Sprintf("%s: %s", key, value))
	}

	if body == "" && len(doc.Pages) > 0 {
		body = strings.Join(doc.Pages, "\n\n")
	}
	doc.Text = strings.TrimSpace(strings.Join(append(header, body), "\n"))
	return doc, nil
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(t), true
	}
	return "", false
}

func number(v any) (float64, error) {
	switch t := v.(type) {
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case float64:
		return t, nil
	case string:
		return strconv.ParseFloat(t, 64)
	}
	return 0, fmt.Errorf("not a number: %v", v)
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if s, ok := scalar(v); ok {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, fmt.Sprint(it))
	}
	return out
}
