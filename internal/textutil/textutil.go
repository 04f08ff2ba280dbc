// SPDX-License-Identifier: Apache-2.0

// Package textutil holds the small string helpers shared by the extractors.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeValue joins the non-blank lines of text with single spaces.
func NormalizeValue(text string) string {
	lines := strings.Split(text, "\n")
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, " ")
}

// TitleCase upper-cases the first letter of every whitespace-separated word
// and lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// FirstLines returns the first n lines of s.
func FirstLines(s string, n int) string {
	if n <= 0 {
		return s
	}
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// PresentTerms returns the title-cased terms that occur in lower, which must
// already be lower-cased. Order follows terms; duplicates are dropped.
func PresentTerms(lower string, terms []string) []string {
	seen := make(map[string]bool, len(terms))
	var out []string
	for _, term := range terms {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" || !strings.Contains(lower, t) {
			continue
		}
		title := TitleCase(t)
		if seen[title] {
			continue
		}
		seen[title] = true
		out = append(out, title)
	}
	return out
}

// ContainsAny reports whether lower contains any of terms, compared
// case-insensitively.
func ContainsAny(lower string, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// LastGroup returns the last non-empty capture group of a submatch slice,
// falling back to the whole match.
func LastGroup(m []string) string {
	for i := len(m) - 1; i > 0; i-- {
		if strings.TrimSpace(m[i]) != "" {
			return strings.TrimSpace(m[i])
		}
	}
	if len(m) > 0 {
		return strings.TrimSpace(m[0])
	}
	return ""
}
