// SPDX-License-Identifier: Apache-2.0

package parsers

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cirscan/cirscan/internal/source"
	"github.com/ledongthuc/pdf"
)

// PDFParser reads the text layer of a PDF, one page at a time. Pages that
// fail to decode are recorded as extraction errors and left empty. A PDF
// without any text layer (a scan) yields zero confidence; OCR is out of
// scope.
type PDFParser struct{}

func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

func (p *PDFParser) Name() string {
	return "pdf"
}

func (p *PDFParser) CanHandle(in source.Input) bool {
	if strings.EqualFold(in.Format, "pdf") {
		return true
	}
	return bytes.HasPrefix(in.Content, []byte("%PDF-"))
}

func (p *PDFParser) Parse(ctx context.Context, in source.Input) (*source.Document, error) {
	reader, err := openPDF(in.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	doc := &source.Document{Confidence: source.NativeTextConfidence}
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := pageText(reader.Page(i))
		if err != nil {
			doc.Errors = append(doc.Errors, fmt.Sprintf("page %d: %v", i, err))
			text = ""
		}
		doc.Pages = append(doc.Pages, strings.TrimSpace(text))
	}

	doc.Text = strings.TrimSpace(strings.Join(doc.Pages, "\n\n"))
	if doc.Text == "" {
		doc.Confidence = 0
		doc.Errors = append(doc.Errors, "no text layer found")
	}
	return doc, nil
}

func openPDF(content []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(content), int64(len(content)))
}

// pageText decodes one page. The pdf package panics on some malformed
// content streams, so panics are returned as errors.
func pageText(page pdf.Page) (text string, err error) {
	if page.V.IsNull() {
		return "", nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}
