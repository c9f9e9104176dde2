// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-engine/internal/convert"
	"github.com/pdiddy/corpus-engine/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Extract plain text from downloaded PDFs",
	Long: `Convert extracts the text of every PDF in the input directory into a
.txt file with the same base name, so the date and citation count
encoded in the filename stay attached to the text. PDFs whose text
file already exists are skipped.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("pdf-dir", "pdfs", "directory containing PDFs")
	convertCmd.Flags().String("txt-dir", "pdfs_txt", "directory to write .txt files")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	pdfDir, _ := cmd.Flags().GetString("pdf-dir")
	txtDir, _ := cmd.Flags().GetString("txt-dir")

	cfg := types.ConversionConfig{PDFDir: pdfDir, TxtDir: txtDir}
	result, err := convert.ConvertDir(convert.PDFExtractor{}, cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d PDF(s) failed conversion", result.Failed)
	}
	return nil
}
