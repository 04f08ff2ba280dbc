// SPDX-License-Identifier: Apache-2.0

package analysis

import (
	"path/filepath"

	"github.com/cirscan/cirscan/internal/source"
)

// EvidenceFrom converts acquired text into pipeline input. The document ID
// is kept and its base name becomes the display name.
func EvidenceFrom(doc *source.Document) EvidenceInput {
	in := EvidenceInput{
		ID:                   doc.ID,
		Text:                 doc.Text,
		Pages:                doc.Pages,
		MetadataSeed:         doc.Seed,
		ExtractionConfidence: doc.Confidence,
		ExtractionErrors:     doc.Errors,
	}
	if doc.ID != "" {
		in.Name = filepath.Base(doc.ID)
	}
	return in
}

// RequirementsFrom converts acquired text into requirements input.
func RequirementsFrom(doc *source.Document) RequirementsInput {
	return RequirementsInput{Text: doc.Text, Source: doc.ID}
}
