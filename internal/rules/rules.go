// SPDX-License-Identifier: Apache-2.0

// Package rules holds the vocabulary, pattern tables and heuristic constants
// used by the extraction, matching and validation stages. A Config is plain
// data that can be overlaid from YAML; Compile turns it into a Table of
// ready-to-use regular expressions.
package rules

// Severity ranks requirements and compliance issues.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Config is the externally configurable rule table.
type Config struct {
	CaseIDPatterns []string          `yaml:"case_id_patterns" json:"case_id_patterns"`
	Title          TitleRule         `yaml:"title" json:"title"`
	Vocabulary     Vocabulary        `yaml:"vocabulary" json:"vocabulary"`
	Requirements   []RequirementRule `yaml:"requirements" json:"requirements"`
	Sections       SectionRules      `yaml:"sections" json:"sections"`
	Metadata       MetadataRules     `yaml:"metadata" json:"metadata"`
	Matching       MatchingRules     `yaml:"matching" json:"matching"`
	Thresholds     Thresholds        `yaml:"thresholds" json:"thresholds"`
	Validation     Validation        `yaml:"validation" json:"validation"`
	DocumentFields DocumentFields    `yaml:"document_fields" json:"document_fields"`
}

// TitleRule selects the requirements document title from its first lines.
// A candidate line must be strictly longer than MinLength and strictly
// shorter than MaxLength.
type TitleRule struct {
	MinLength int    `yaml:"min_length" json:"min_length"`
	MaxLength int    `yaml:"max_length" json:"max_length"`
	ScanLines int    `yaml:"scan_lines" json:"scan_lines"`
	Default   string `yaml:"default" json:"default"`
}

// Vocabulary lists the terms scanned for literal occurrence.
type Vocabulary struct {
	Components         []string `yaml:"components" json:"components"`
	Failures           []string `yaml:"failures" json:"failures"`
	VisualCriteria     []string `yaml:"visual_criteria" json:"visual_criteria"`
	DocumentationTypes []string `yaml:"documentation_types" json:"documentation_types"`
}

// RequirementRule turns every match of Patterns into one requirement.
// The last non-empty capture group is the description. When Numbered is
// set, group 1 is the step number and "{n}" in Title is replaced by it.
type RequirementRule struct {
	Type               string   `yaml:"type" json:"type"`
	Prefix             string   `yaml:"prefix" json:"prefix"`
	Title              string   `yaml:"title" json:"title"`
	Severity           Severity `yaml:"severity" json:"severity"`
	AcceptanceCriteria string   `yaml:"acceptance_criteria" json:"acceptance_criteria"`
	Evidence           []string `yaml:"evidence" json:"evidence"`
	MinDescription     int      `yaml:"min_description" json:"min_description"`
	Numbered           bool     `yaml:"numbered" json:"numbered"`
	Patterns           []string `yaml:"patterns" json:"patterns"`
}

// SectionRules drive the display-only side channels of requirement extraction.
type SectionRules struct {
	WorkInstructionHeader string   `yaml:"work_instruction_header" json:"work_instruction_header"`
	TestProcedureHeader   string   `yaml:"test_procedure_header" json:"test_procedure_header"`
	AcceptancePatterns    []string `yaml:"acceptance_patterns" json:"acceptance_patterns"`
	MinSegment            int      `yaml:"min_segment" json:"min_segment"`
	MaxLines              int      `yaml:"max_lines" json:"max_lines"`
	MaxChars              int      `yaml:"max_chars" json:"max_chars"`
	MaxStandardChars      int      `yaml:"max_standard_chars" json:"max_standard_chars"`
}

// FieldRule maps a metadata field name to an ordered list of patterns.
// The first pattern that matches wins.
type FieldRule struct {
	Name     string   `yaml:"name" json:"name"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// KeyValueRule bounds the generic "key: value" line scan. Lengths are
// exclusive bounds.
type KeyValueRule struct {
	Pattern           string   `yaml:"pattern" json:"pattern"`
	KeyMin            int      `yaml:"key_min" json:"key_min"`
	KeyMax            int      `yaml:"key_max" json:"key_max"`
	ValueMin          int      `yaml:"value_min" json:"value_min"`
	ValueMax          int      `yaml:"value_max" json:"value_max"`
	ExcludedLeadWords []string `yaml:"excluded_lead_words" json:"excluded_lead_words"`
}

// ListRule configures bullet and numbered list capture.
type ListRule struct {
	BulletPattern   string `yaml:"bullet_pattern" json:"bullet_pattern"`
	NumberedPattern string `yaml:"numbered_pattern" json:"numbered_pattern"`
	BulletField     string `yaml:"bullet_field" json:"bullet_field"`
	NumberedField   string `yaml:"numbered_field" json:"numbered_field"`
	Limit           int    `yaml:"limit" json:"limit"`
	MinBullets      int    `yaml:"min_bullets" json:"min_bullets"`
}

// MetadataRules configures the four metadata extraction strategies.
type MetadataRules struct {
	Fields        []FieldRule  `yaml:"fields" json:"fields"`
	KeyValue      KeyValueRule `yaml:"key_value" json:"key_value"`
	Lists         ListRule     `yaml:"lists" json:"lists"`
	NumericFields []FieldRule  `yaml:"numeric_fields" json:"numeric_fields"`
	DatePattern   string       `yaml:"date_pattern" json:"date_pattern"`
	DateField     string       `yaml:"date_field" json:"date_field"`
	Priority      []string     `yaml:"priority" json:"priority"`
}

// Booster adds one evidence entry when a requirement description contains
// any trigger and the evidence text contains any marker.
type Booster struct {
	Triggers []string `yaml:"triggers" json:"triggers"`
	Markers  []string `yaml:"markers" json:"markers"`
	Label    string   `yaml:"label" json:"label"`
}

// MatchingRules configures evidence search.
type MatchingRules struct {
	ComponentField   string    `yaml:"component_field" json:"component_field"`
	MinTokenLength   int       `yaml:"min_token_length" json:"min_token_length"`
	// DistinctTokens counts a word repeated in a description only once.
	DistinctTokens   bool      `yaml:"distinct_tokens" json:"distinct_tokens"`
	Boosters         []Booster `yaml:"boosters" json:"boosters"`
	VisualPatterns   []string  `yaml:"visual_patterns" json:"visual_patterns"`
	ExcerptKeywords  int       `yaml:"excerpt_keywords" json:"excerpt_keywords"`
	ExcerptMaxLength int       `yaml:"excerpt_max_length" json:"excerpt_max_length"`
}

// Thresholds are the evidence matcher's status cut-offs and confidence
// formula constants.
type Thresholds struct {
	MetRatio         float64 `yaml:"met_ratio" json:"met_ratio"`
	PartialRatio     float64 `yaml:"partial_ratio" json:"partial_ratio"`
	UnableConfidence float64 `yaml:"unable_confidence" json:"unable_confidence"`
	MetBase          float64 `yaml:"met_base" json:"met_base"`
	MetPerItem       float64 `yaml:"met_per_item" json:"met_per_item"`
	MetBonusCap      float64 `yaml:"met_bonus_cap" json:"met_bonus_cap"`
	PartialBase      float64 `yaml:"partial_base" json:"partial_base"`
	PartialScale     float64 `yaml:"partial_scale" json:"partial_scale"`
	NotMetBase       float64 `yaml:"not_met_base" json:"not_met_base"`
	NotMetPerItem    float64 `yaml:"not_met_per_item" json:"not_met_per_item"`
	NotMetCap        float64 `yaml:"not_met_cap" json:"not_met_cap"`
	PartialWeight    float64 `yaml:"partial_weight" json:"partial_weight"`
	GoScore          float64 `yaml:"go_score" json:"go_score"`
}

// Validation holds the structural checker's constants.
type Validation struct {
	GoScore               float64  `yaml:"go_score" json:"go_score"`
	ExtractionPass        float64  `yaml:"extraction_pass" json:"extraction_pass"`
	ExtractionWarn        float64  `yaml:"extraction_warn" json:"extraction_warn"`
	MinTextLength         int      `yaml:"min_text_length" json:"min_text_length"`
	MinDescription        int      `yaml:"min_description" json:"min_description"`
	DocumentationTerms    []string `yaml:"documentation_terms" json:"documentation_terms"`
	MinDocumentationTerms int      `yaml:"min_documentation_terms" json:"min_documentation_terms"`
	ApprovalTerms         []string `yaml:"approval_terms" json:"approval_terms"`
}

// ChangeTypeKeyword infers a change type when no labeled field is present.
type ChangeTypeKeyword struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Label   string `yaml:"label" json:"label"`
}

// DocumentFields lists, per structured document field, the metadata names
// consulted in order.
type DocumentFields struct {
	CaseID                 []string            `yaml:"case_id" json:"case_id"`
	Component              []string            `yaml:"component" json:"component"`
	PartNumber             []string            `yaml:"part_number" json:"part_number"`
	DrawingNumber          []string            `yaml:"drawing_number" json:"drawing_number"`
	Revision               []string            `yaml:"revision" json:"revision"`
	Description            []string            `yaml:"description" json:"description"`
	Specifications         []string            `yaml:"specifications" json:"specifications"`
	ChangeType             []string            `yaml:"change_type" json:"change_type"`
	ChangeTypeKeywords     []ChangeTypeKeyword `yaml:"change_type_keywords" json:"change_type_keywords"`
	ChangeReason           []string            `yaml:"change_reason" json:"change_reason"`
	TechnicalJustification []string            `yaml:"technical_justification" json:"technical_justification"`
	ImplementationDate     []string            `yaml:"implementation_date" json:"implementation_date"`
	ChangeOwner            []string            `yaml:"change_owner" json:"change_owner"`
	AffectedAreas          []string            `yaml:"affected_areas" json:"affected_areas"`
	MinParagraph           int                 `yaml:"min_paragraph" json:"min_paragraph"`
}
