// SPDX-License-Identifier: Apache-2.0

package rules

import (
	"fmt"
	"regexp"
)

// Table is a compiled, read-only Config. It is safe to share across
// goroutines.
type Table struct {
	Config

	CaseID         []*regexp.Regexp
	Requirements   []CompiledRequirement
	WorkHeader     *regexp.Regexp
	TestHeader     *regexp.Regexp
	Acceptance     []*regexp.Regexp
	Fields         []CompiledField
	KeyValue       *regexp.Regexp
	Bullet         *regexp.Regexp
	Numbered       *regexp.Regexp
	NumericFields  []CompiledField
	Date           *regexp.Regexp
	VisualEvidence []*regexp.Regexp
}

// CompiledRequirement pairs a RequirementRule with its patterns.
type CompiledRequirement struct {
	RequirementRule
	Regexps []*regexp.Regexp
}

// CompiledField pairs a metadata field name with its ordered patterns.
type CompiledField struct {
	Name    string
	Regexps []*regexp.Regexp
}

// MustDefault compiles Default and panics on failure. The built-in table is
// covered by tests, so a panic here is a programming error.
func MustDefault() *Table {
	t, err := Default().Compile()
	if err != nil {
		panic(err)
	}
	return t
}

// Compile validates c and compiles every pattern.
func (c Config) Compile() (*Table, error) {
	t := &Table{Config: c}
	var err error

	if t.CaseID, err = compileAll("case_id_patterns", c.CaseIDPatterns); err != nil {
		return nil, err
	}
	for i, r := range c.Requirements {
		if !r.Severity.Valid() {
			return nil, fmt.Errorf("%w: requirements[%d]: unknown severity %q", ErrInvalidRules, i, r.Severity)
		}
		res, err := compileAll(fmt.Sprintf("requirements[%d]", i), r.Patterns)
		if err != nil {
			return nil, err
		}
		t.Requirements = append(t.Requirements, CompiledRequirement{RequirementRule: r, Regexps: res})
	}
	if t.WorkHeader, err = compileOne("sections.work_instruction_header", c.Sections.WorkInstructionHeader); err != nil {
		return nil, err
	}
	if t.TestHeader, err = compileOne("sections.test_procedure_header", c.Sections.TestProcedureHeader); err != nil {
		return nil, err
	}
	if t.Acceptance, err = compileAll("sections.acceptance_patterns", c.Sections.AcceptancePatterns); err != nil {
		return nil, err
	}
	if t.Fields, err = compileFields("metadata.fields", c.Metadata.Fields); err != nil {
		return nil, err
	}
	if t.KeyValue, err = compileOne("metadata.key_value.pattern", c.Metadata.KeyValue.Pattern); err != nil {
		return nil, err
	}
	if t.Bullet, err = compileOne("metadata.lists.bullet_pattern", c.Metadata.Lists.BulletPattern); err != nil {
		return nil, err
	}
	if t.Numbered, err = compileOne("metadata.lists.numbered_pattern", c.Metadata.Lists.NumberedPattern); err != nil {
		return nil, err
	}
	if t.NumericFields, err = compileFields("metadata.numeric_fields", c.Metadata.NumericFields); err != nil {
		return nil, err
	}
	if t.Date, err = compileOne("metadata.date_pattern", c.Metadata.DatePattern); err != nil {
		return nil, err
	}
	if t.VisualEvidence, err = compileAll("matching.visual_patterns", c.Matching.VisualPatterns); err != nil {
		return nil, err
	}
	return t, nil
}

func compileOne(where, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRules, where, err)
	}
	return re, nil
}

func compileAll(where string, patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for i, p := range patterns {
		re, err := compileOne(fmt.Sprintf("%s[%d]", where, i), p)
		if err != nil {
			return nil, err
		}
		if re != nil {
			out = append(out, re)
		}
	}
	return out, nil
}

func compileFields(where string, fields []FieldRule) ([]CompiledField, error) {
	out := make([]CompiledField, 0, len(fields))
	for i, f := range fields {
		res, err := compileAll(fmt.Sprintf("%s[%d]", where, i), f.Patterns)
		if err != nil {
			return nil, err
		}
		out = append(out, CompiledField{Name: f.Name, Regexps: res})
	}
	return out, nil
}
