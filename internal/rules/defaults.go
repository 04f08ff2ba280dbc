// SPDX-License-Identifier: Apache-2.0

package rules

// labeled builds a line-anchored "Label: value" pattern capturing the rest
// of the line.
func labeled(label string) string {
	return `(?im)^[ \t]*` + label + `[ \t]*:[ \t]*(\S.*?)[ \t]*$`
}

// labeledID is like labeled but captures a single identifier token.
func labeledID(label string) string {
	return `(?im)^[ \t]*` + label + `[ \t]*[:#][ \t]*([A-Z0-9][A-Z0-9\-_/\.]*)`
}

const datePattern = `\d{1,2}[/-]\d{1,2}[/-]\d{4}|\d{4}-\d{1,2}-\d{1,2}`

// Default returns the built-in rule table for wind-turbine component change
// documents (CIM requirements, CIR evidence).
func Default() Config {
	return Config{
		CaseIDPatterns: []string{
			`(?i)\bCIM[ \t]*[-:]?[ \t]*(\d+)`,
			`(?i)\bCase[ \t]*(?:ID|Number)[ \t]*[-:]?[ \t]*([A-Z0-9][A-Z0-9\-]*)`,
			`\b([A-Za-z]+-\d+-\d+)\b`,
		},
		Title: TitleRule{
			MinLength: 10,
			MaxLength: 200,
			ScanLines: 20,
			Default:   "CIM Case Summary",
		},
		Vocabulary: Vocabulary{
			Components: []string{
				"blade", "rotor", "nacelle", "tower", "foundation",
				"gearbox", "generator", "transformer", "bearing",
				"pitch", "yaw", "brake", "hub", "shaft", "bolt",
				"weld", "connector", "cable", "sensor", "controller",
			},
			Failures: []string{
				"fatigue", "corrosion", "fracture", "delamination", "erosion",
				"cracking", "wear", "bearing failure", "misalignment", "vibration",
				"overheating", "electrical failure", "mechanical failure",
			},
			VisualCriteria: []string{
				"crack", "corrosion", "rust", "discoloration", "deformation",
				"wear", "damage", "contamination", "alignment", "gap",
				"surface finish", "color", "label", "marking", "seal",
			},
			DocumentationTypes: []string{
				"test report", "certificate", "record", "log", "work order",
				"photo", "image", "drawing", "specification", "standard",
				"invoice", "shipping document", "inspection record", "signature",
			},
		},
		Requirements: []RequirementRule{
			{
				Type:               "test-method",
				Prefix:             "TEST",
				Title:              "Test Method",
				Severity:           SeverityHigh,
				AcceptanceCriteria: "Test performed per specification",
				Evidence:           []string{"Test report", "Test data", "Technician signature"},
				Patterns: []string{
					`(?i)\b(?:test|examination|inspection)[ \t]+(?:method|procedure|step)s?[ \t]*:?[ \t]*([^\n]+)`,
					`(?i)\b(?:perform|conduct|carry out)[ \t]+(?:the[ \t]+)?([^:\n]+?)[ \t]+test`,
					`(?i:\btest)[^\n]*?\b(?i:according to|as per|per|following)[ \t]+([A-Z]{2,}[A-Z0-9\-\. ]*[0-9])`,
				},
			},
			{
				Type:               "documentation",
				Prefix:             "DOC",
				Title:              "Documentation",
				Severity:           SeverityHigh,
				AcceptanceCriteria: "Documentation complete and accurate",
				Evidence:           []string{"Document", "Report", "Record"},
				MinDescription:     10,
				Patterns: []string{
					`(?i)\b(?:document|record|report)[ \t]+(?:the|all)[ \t]+([^\n.]+)`,
					`(?i)\b(?:required documents?|must include)[ \t]*:?[ \t]*([^\n]+)`,
					`(?i)\b(?:submit|provide)[ \t]+(?:the[ \t]+)?([^\n.]+)`,
				},
			},
			{
				Type:               "visual-inspection",
				Prefix:             "VIS",
				Title:              "Visual Inspection",
				Severity:           SeverityMedium,
				AcceptanceCriteria: "Visual inspection passed",
				Evidence:           []string{"Photo"},
				Patterns: []string{
					`(?i)\b(?:visual inspection|inspect visually|look for)[ \t]*:?[ \t]*([^\n.]+)`,
					`(?i)\b(?:check|observe)[ \t]+(?:for|the)[ \t]+([^\n.]+)`,
					`(?i)\b(?:appearance|condition|surface)[ \t]+(?:should|must)[ \t]+([^\n.]+)`,
				},
			},
			{
				Type:               "procedure",
				Prefix:             "PROC",
				Title:              "Procedure Step {n}",
				Severity:           SeverityHigh,
				AcceptanceCriteria: "Step completed as specified",
				Evidence:           []string{"Completion log", "Signature", "Timestamp"},
				MinDescription:     10,
				Numbered:           true,
				Patterns: []string{
					`(?i)\b(?:step|procedure)[ \t]+(\d+)[:\-\.]?[ \t]*([^\n]+)`,
				},
			},
		},
		Sections: SectionRules{
			WorkInstructionHeader: `(?i)(?:Work Instructions?|Procedure|Steps?)[:\-]?[ \t]*\n`,
			TestProcedureHeader:   `(?i)(?:Test Procedure|Testing Procedure)[:\-]?[ \t]*\n`,
			AcceptancePatterns: []string{
				`(?i)(?:Acceptance|Pass|Success)[ \t]+Criteri(?:a|on)[ \t]*[:\-]?[ \t]*([^\n]+(?:\n[^\n]*){0,5})`,
				`(?i)\b(?:shall|must|should)[ \t]+([^\n.]+\.)`,
			},
			MinSegment:       50,
			MaxLines:         5,
			MaxChars:         500,
			MaxStandardChars: 300,
		},
		Metadata: MetadataRules{
			Fields: []FieldRule{
				{Name: "CIR ID", Patterns: []string{
					labeledID(`CIR[ \t]*(?:ID|Number|No\.?)`),
					`(?i)\b(CIR[-_]\d[A-Z0-9\-]*)`,
					labeledID(`Case(?:[ \t]*(?:ID|Number))?`),
				}},
				{Name: "Report Type", Patterns: []string{
					labeled(`Report[ \t]+Type`),
					`\b((?:Service|Technical|Incident|Inspection) Report)\b`,
				}},
				{Name: "Service Report Number", Patterns: []string{
					labeledID(`Service[ \t]+Report(?:[ \t]+(?:Number|No\.?))?`),
					labeledID(`Report[ \t]+Number`),
					`(?i)\bSR#[ \t]*:?[ \t]*([A-Z0-9][A-Z0-9\-]*)`,
				}},
				{Name: "Reason for Service", Patterns: []string{
					labeled(`Reason[ \t]+for[ \t]+Service`),
					labeled(`Service[ \t]+Reason`),
					labeled(`Reason`),
				}},
				{Name: "Turbine ID", Patterns: []string{
					labeledID(`Turbine(?:[ \t]+(?:ID|Number|Identifier))?`),
					labeledID(`WTG[ \t]+ID`),
				}},
				{Name: "WTG ID", Patterns: []string{
					labeledID(`WTG(?:[ \t]+ID)?`),
				}},
				{Name: "Turbine Type", Patterns: []string{
					labeled(`Turbine[ \t]+Type`),
					labeled(`Model`),
					labeled(`Platform`),
				}},
				{Name: "MK Version", Patterns: []string{
					`(?i)\bMK[ \t]*(?:Version)?[ \t]*[:\-]?[ \t]*(\d+(?:\.\d+)*)`,
					`(?im)^[ \t]*Platform[ \t]+Version[ \t]*:[ \t]*(\d+(?:\.\d+)*)`,
				}},
				{Name: "Country", Patterns: []string{
					labeled(`Country`),
				}},
				{Name: "Site Name", Patterns: []string{
					labeled(`Site(?:[ \t]+Name)?`),
					labeled(`Wind[ \t]+Farm`),
				}},
				{Name: "Component Type", Patterns: []string{
					labeled(`Component(?:[ \t]+Type)?`),
					labeled(`Failed[ \t]+Component`),
				}},
				{Name: "Manufacturer", Patterns: []string{
					labeled(`Manufacturer`),
					labeled(`OEM`),
					labeled(`Supplier`),
				}},
				{Name: "Field Observations", Patterns: []string{
					labeled(`Observations?`),
					labeled(`(?:Technical[ \t]+)?Findings?`),
				}},
				{Name: "Service Date", Patterns: []string{
					`(?im)^[ \t]*Service[ \t]+Date[ \t]*:[ \t]*(` + datePattern + `)`,
					`(?im)^[ \t]*Date[ \t]*:[ \t]*(` + datePattern + `)`,
				}},
				{Name: "Technician", Patterns: []string{
					labeled(`Technician`),
					labeled(`Performed[ \t]+By`),
					labeled(`Inspector`),
				}},
				{Name: "Status", Patterns: []string{
					labeled(`Status`),
					labeled(`Result`),
					`\b(NO-GO|GO|PASS|FAIL)\b`,
				}},
			},
			KeyValue: KeyValueRule{
				Pattern:           `(?m)^[ \t]*([A-Za-z][A-Za-z \t\-/_]*?)[ \t]*:[ \t]*(\S.*?)[ \t]*$`,
				KeyMin:            2,
				KeyMax:            100,
				ValueMin:          2,
				ValueMax:          200,
				ExcludedLeadWords: []string{"the", "this", "that", "these", "those"},
			},
			Lists: ListRule{
				BulletPattern:   `(?m)^[ \t]*[-•*][ \t]+(\S.*?)[ \t]*$`,
				NumberedPattern: `(?m)^[ \t]*\d+[.)\-][ \t]+(\S.*?)[ \t]*$`,
				BulletField:     "Observations",
				NumberedField:   "Steps/Items",
				Limit:           10,
				MinBullets:      2,
			},
			NumericFields: []FieldRule{
				{Name: "Serial Number", Patterns: []string{`(?i)\bSerial(?:[ \t]*(?:Number|No\.?))?[ \t]*[:#][ \t]*([A-Z0-9][A-Z0-9\-]*)`}},
				{Name: "Part Number", Patterns: []string{`(?i)\bPart(?:[ \t]*(?:Number|No\.?))?[ \t]*[:#][ \t]*([A-Z0-9][A-Z0-9\-\.]*)`}},
				{Name: "Lot Number", Patterns: []string{`(?i)\bLot(?:[ \t]*(?:Number|No\.?))?[ \t]*[:#][ \t]*([A-Z0-9][A-Z0-9\-]*)`}},
				{Name: "Hours of Operation", Patterns: []string{`(?i)\b(?:Operating[ \t]+Hours|Hours[ \t]+of[ \t]+Operation|Hours)[ \t]*:[ \t]*(\d+)`}},
				{Name: "Test Result Value", Patterns: []string{`(?i)\bResult[ \t]*:[ \t]*(\d+[.,]\d+)`}},
			},
			DatePattern: `\b(` + datePattern + `)\b`,
			DateField:   "Date",
			Priority: []string{
				"CIR ID", "Report Type", "Service Report Number",
				"Reason for Service", "Turbine ID", "WTG ID",
				"Turbine Type", "MK Version", "Country", "Site Name",
				"Component Type", "Manufacturer", "Technician",
				"Service Date", "Field Observations", "Status",
			},
		},
		Matching: MatchingRules{
			ComponentField: "Component Type",
			MinTokenLength: 3,
			Boosters: []Booster{
				{Triggers: []string{"test"}, Markers: []string{"test report", "test results", "test data"}, Label: "Test documentation found"},
				{Triggers: []string{"document"}, Markers: []string{"document", "record", "report", "log"}, Label: "Documentation found"},
				{Triggers: []string{"photo", "image"}, Markers: []string{"photo", "image", "[photo]"}, Label: "Photo/Image reference found"},
			},
			VisualPatterns: []string{
				`(?i)\[PHOTO[^\]]*\]`,
				`(?i)\[IMAGE[^\]]*\]`,
				`(?i)\bphoto[^\n]*?\b(?:attached|included|see)\b`,
				`(?i)\b(?:see|refer to)[ \t]+(?:photo|image|figure|fig\.?|picture)`,
			},
			ExcerptKeywords:  3,
			ExcerptMaxLength: 300,
		},
		Thresholds: Thresholds{
			MetRatio:         0.9,
			PartialRatio:     0.5,
			UnableConfidence: 30,
			MetBase:          90,
			MetPerItem:       5,
			MetBonusCap:      10,
			PartialBase:      60,
			PartialScale:     30,
			NotMetBase:       10,
			NotMetPerItem:    10,
			NotMetCap:        50,
			PartialWeight:    0.5,
			GoScore:          85,
		},
		Validation: Validation{
			GoScore:               85,
			ExtractionPass:        80,
			ExtractionWarn:        60,
			MinTextLength:         500,
			MinDescription:        10,
			DocumentationTerms:    []string{"change", "impact", "risk", "verification", "approval"},
			MinDocumentationTerms: 3,
			ApprovalTerms:         []string{"approved", "signed", "authorized", "reviewed", "confirmed"},
		},
		DocumentFields: DocumentFields{
			CaseID:        []string{"CIR ID", "CIR Number", "Case ID", "Case Number"},
			Component:     []string{"Component Type", "Component", "Component Name", "Failed Component"},
			PartNumber:    []string{"Part Number", "Part No", "Part"},
			DrawingNumber: []string{"Drawing Number", "Drawing No", "Drawing"},
			Revision:      []string{"Revision", "Rev"},
			Description:   []string{"Component Description", "Description", "Field Observations"},
			Specifications: []string{
				"Specification", "Specifications", "Serial Number", "Lot Number",
				"Hours of Operation", "Test Result Value", "Turbine Type", "MK Version",
			},
			ChangeType: []string{"Change Type", "Type of Change"},
			ChangeTypeKeywords: []ChangeTypeKeyword{
				{Keyword: "design", Label: "Design Change"},
				{Keyword: "material", Label: "Material Change"},
				{Keyword: "process", Label: "Process Change"},
			},
			ChangeReason:           []string{"Reason for Change", "Change Reason", "Reason for Service", "Reason"},
			TechnicalJustification: []string{"Technical Justification", "Justification", "Root Cause", "Root Cause Analysis"},
			ImplementationDate:     []string{"Implementation Date", "Completion Date", "Service Date", "Date 1"},
			ChangeOwner:            []string{"Change Owner", "Owner", "Responsible", "Technician", "Performed By"},
			AffectedAreas:          []string{"Affected Areas", "Affected Area", "Affected Components", "Scope"},
			MinParagraph:           50,
		},
	}
}
