// SPDX-License-Identifier: Apache-2.0

// Package metadata extracts field/value pairs from evidence documents and
// keeps them in an ordered, provenance-tagged set.
package metadata

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/cirscan/cirscan/internal/textutil"
)

// Kind tells how a Value should be read.
type Kind string

const (
	KindText Kind = "text"
	KindList Kind = "list"
	KindDate Kind = "date"
)

// Source tags record which strategy produced a field.
const (
	SourceSeed     = "seed"
	SourcePattern  = "pattern"
	SourceKeyValue = "key-value"
	SourceList     = "list"
	SourceNumeric  = "numeric"
	SourceDate     = "date"
)

// Value is a metadata value: free text, a date string, or a list of items.
type Value struct {
	Kind  Kind     `json:"kind"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

// TextValue returns a KindText value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// String renders v as a single line. List items are joined with "; ".
func (v Value) String() string {
	if v.Kind == KindList {
		return strings.Join(v.Items, "; ")
	}
	return v.Text
}

func (v Value) empty() bool {
	if v.Kind == KindList {
		return len(v.Items) == 0
	}
	return strings.TrimSpace(v.Text) == ""
}

// Field is one named value and the strategy that produced it.
type Field struct {
	Name   string `json:"name"`
	Value  Value  `json:"value"`
	Source string `json:"source"`
}

// Set is an insertion-ordered collection of fields. Names are matched
// case-insensitively after whitespace normalization, and the first writer of
// a name wins. A Set is not safe for concurrent writes.
type Set struct {
	index  map[string]int
	fields []Field
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// foldName lower-cases name and collapses punctuation and whitespace runs
// into single spaces.
func foldName(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(words, " ")
}

// Add stores v under name unless the name is already present or either is
// empty. It reports whether the field was stored.
func (s *Set) Add(name string, v Value, source string) bool {
	key := foldName(name)
	if key == "" || v.empty() {
		return false
	}
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.fields)
	s.fields = append(s.fields, Field{Name: textutil.NormalizeValue(name), Value: v, Source: source})
	return true
}

// Get returns the field stored under name.
func (s *Set) Get(name string) (Field, bool) {
	i, ok := s.index[foldName(name)]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Text returns the single-line rendering of the field stored under name, or
// "" when absent.
func (s *Set) Text(name string) string {
	f, ok := s.Get(name)
	if !ok {
		return ""
	}
	return f.Value.String()
}

// First returns the text of the first present name.
func (s *Set) First(names ...string) (string, bool) {
	for _, n := range names {
		if v := s.Text(n); v != "" {
			return v, true
		}
	}
	return "", false
}

// Fields returns a copy of the fields in insertion order.
func (s *Set) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Names returns the display names in insertion order.
func (s *Set) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Len returns the number of fields.
func (s *Set) Len() int {
	return len(s.fields)
}

// Headers orders the present names for tabular display: names listed in
// priority first, in that order, then the rest in insertion order.
func (s *Set) Headers(priority []string) []string {
	used := make(map[string]bool, len(priority))
	out := make([]string, 0, len(s.fields))
	for _, p := range priority {
		if f, ok := s.Get(p); ok && !used[foldName(f.Name)] {
			used[foldName(f.Name)] = true
			out = append(out, f.Name)
		}
	}
	for _, f := range s.fields {
		if !used[foldName(f.Name)] {
			out = append(out, f.Name)
		}
	}
	return out
}

// MarshalJSON encodes the set as an ordered array of fields.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Fields())
}

// UnmarshalJSON decodes an array of fields, keeping first writers.
func (s *Set) UnmarshalJSON(data []byte) error {
	var fields []Field
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = *NewSet()
	for _, f := range fields {
		s.Add(f.Name, f.Value, f.Source)
	}
	return nil
}
