// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts plain text from PDFs in process. Pages that fail
// individually are dropped rather than failing the document; academic
// PDFs routinely contain a malformed page or two.
type PDFExtractor struct{}

// Extract reads every page of the PDF at pdfPath and returns the
// concatenated text with blank lines between pages. A document yielding
// no text at all (scanned images, encrypted content) is an error.
func (PDFExtractor) Extract(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	var b strings.Builder
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no text extracted from %s", pdfPath)
	}
	return b.String(), nil
}
