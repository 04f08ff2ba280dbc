// SPDX-License-Identifier: Apache-2.0

package metadata

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cirscan/cirscan/internal/rules"
	"github.com/cirscan/cirscan/internal/textutil"
)

// Extractor runs the metadata strategies over evidence text. It is
// stateless and safe for concurrent use.
type Extractor struct {
	table *rules.Table
}

// NewExtractor creates an Extractor over table.
func NewExtractor(table *rules.Table) *Extractor {
	return &Extractor{table: table}
}

// Extract is ExtractWithSeed with no seed.
func (e *Extractor) Extract(text string) *Set {
	return e.ExtractWithSeed(text, nil)
}

// ExtractWithSeed writes seed first, then merges the strategies in order:
// labeled fields, generic key/value lines, lists, numeric identifiers and
// dates. Earlier writers win. Seed keys are applied in sorted order.
func (e *Extractor) ExtractWithSeed(text string, seed map[string]string) *Set {
	set := NewSet()

	keys := make([]string, 0, len(seed))
	for k := range seed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		set.Add(k, TextValue(textutil.NormalizeValue(seed[k])), SourceSeed)
	}

	e.labeledFields(text, e.table.Fields, SourcePattern, set)
	e.keyValues(text, set)
	e.lists(text, set)
	e.labeledFields(text, e.table.NumericFields, SourceNumeric, set)
	e.dates(text, set)
	return set
}

func (e *Extractor) labeledFields(text string, fields []rules.CompiledField, source string, set *Set) {
	for _, f := range fields {
		for _, re := range f.Regexps {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			if v := textutil.NormalizeValue(textutil.LastGroup(m)); v != "" {
				set.Add(f.Name, TextValue(v), source)
				break
			}
		}
	}
}

func (e *Extractor) keyValues(text string, set *Set) {
	re := e.table.KeyValue
	if re == nil {
		return
	}
	rule := e.table.Metadata.KeyValue
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if len(m) < 3 {
			continue
		}
		key := normalizeKey(m[1])
		value := textutil.NormalizeValue(m[2])
		if !within(len(key), rule.KeyMin, rule.KeyMax) || !within(len(value), rule.ValueMin, rule.ValueMax) {
			continue
		}
		if excludedLead(key, rule.ExcludedLeadWords) {
			continue
		}
		set.Add(key, TextValue(value), SourceKeyValue)
	}
}

// normalizeKey turns separators into spaces, collapses whitespace and
// title-cases each word.
func normalizeKey(key string) string {
	key = strings.NewReplacer("-", " ", "_", " ", "/", " ").Replace(key)
	return textutil.TitleCase(strings.Join(strings.Fields(key), " "))
}

// within reports lo < n < hi.
func within(n, lo, hi int) bool {
	return n > lo && n < hi
}

func excludedLead(key string, words []string) bool {
	first, _, _ := strings.Cut(strings.ToLower(key), " ")
	for _, w := range words {
		if first == strings.ToLower(w) {
			return true
		}
	}
	return false
}

func (e *Extractor) lists(text string, set *Set) {
	rule := e.table.Metadata.Lists
	if e.table.Bullet != nil {
		items := captureAll(e.table.Bullet.FindAllStringSubmatch(text, -1), rule.Limit)
		if len(items) >= rule.MinBullets {
			set.Add(rule.BulletField, Value{Kind: KindList, Items: items}, SourceList)
		}
	}
	if e.table.Numbered != nil {
		items := captureAll(e.table.Numbered.FindAllStringSubmatch(text, -1), rule.Limit)
		if len(items) > 0 {
			set.Add(rule.NumberedField, Value{Kind: KindList, Items: items}, SourceList)
		}
	}
}

func captureAll(matches [][]string, limit int) []string {
	var out []string
	for _, m := range matches {
		if limit > 0 && len(out) == limit {
			break
		}
		if v := textutil.NormalizeValue(textutil.LastGroup(m)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// dates numbers every date-shaped token in order of appearance. Repeated
// dates get their own field.
func (e *Extractor) dates(text string, set *Set) {
	if e.table.Date == nil {
		return
	}
	n := 0
	for _, m := range e.table.Date.FindAllStringSubmatch(text, -1) {
		d := textutil.LastGroup(m)
		if d == "" {
			continue
		}
		n++
		set.Add(fmt.Sprintf("%s %d", e.table.Metadata.DateField, n), Value{Kind: KindDate, Text: d}, SourceDate)
	}
}
