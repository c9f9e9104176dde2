// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns downloaded PDFs into plain-text files, one .txt
// per .pdf with the same base name so the filename encoding survives
// into the assembly stage.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/corpus-engine/pkg/types"
)

// Extractor transforms a PDF file into plain text.
type Extractor interface {
	Extract(pdfPath string) (string, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any conversions failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertDir converts every *.pdf under cfg.PDFDir into a .txt file in
// cfg.TxtDir, skipping PDFs whose text file already exists. Extraction
// failures are reported and skipped; the batch continues.
func ConvertDir(e Extractor, cfg types.ConversionConfig, w io.Writer) (BatchResult, error) {
	pdfs, err := filepath.Glob(filepath.Join(cfg.PDFDir, "*.pdf"))
	if err != nil {
		return BatchResult{}, fmt.Errorf("scanning %s: %w", cfg.PDFDir, err)
	}
	sort.Strings(pdfs)

	if len(pdfs) == 0 {
		fmt.Fprintf(w, "No PDFs found in %s\n", cfg.PDFDir)
		return BatchResult{}, nil
	}

	if err := os.MkdirAll(cfg.TxtDir, 0o755); err != nil {
		return BatchResult{}, fmt.Errorf("creating output directory %s: %w", cfg.TxtDir, err)
	}

	fmt.Fprintf(w, "Converting %d PDFs from %s to %s\n\n", len(pdfs), cfg.PDFDir, cfg.TxtDir)

	var result BatchResult
	for i, pdfPath := range pdfs {
		base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
		txtPath := filepath.Join(cfg.TxtDir, base+".txt")

		if _, err := os.Stat(txtPath); err == nil {
			fmt.Fprintf(w, "[%4d/%d] skipped: %s (already exists)\n", i+1, len(pdfs), base)
			result.Skipped++
			continue
		}

		text, err := e.Extract(pdfPath)
		if err != nil {
			fmt.Fprintf(w, "[%4d/%d] failed:  %s (%v)\n", i+1, len(pdfs), base, err)
			result.Failed++
			continue
		}

		if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
			fmt.Fprintf(w, "[%4d/%d] failed:  %s (%v)\n", i+1, len(pdfs), base, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "[%4d/%d] converted: %s\n", i+1, len(pdfs), base)
		result.Converted++
	}

	fmt.Fprintf(w, "\nConversion summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}
