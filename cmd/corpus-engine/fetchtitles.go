// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-engine/internal/download"
)

var fetchTitlesCmd = &cobra.Command{
	Use:   "fetch-titles [titles...]",
	Short: "Search for papers by title and download their PDFs",
	Long: `Fetch-titles looks each title up on Semantic Scholar and downloads the
best match through the same open-access waterfall as fetch. Titles come
from the command line, from --file (one per line, # comments allowed),
or both. PDFs are named after a slug of the requested title.`,
	RunE: runFetchTitles,
}

func init() {
	fetchTitlesCmd.Flags().String("file", "", "file with one paper title per line")
	fetchTitlesCmd.Flags().String("api-key", "", "Semantic Scholar API key (default: .secrets/semantic-scholar-api-key)")
	fetchTitlesCmd.Flags().String("email", "", "contact email for the Unpaywall API (default: .secrets/unpaywall-email)")
	fetchTitlesCmd.Flags().String("out-dir", "pdfs_specific", "directory to save PDFs")
	fetchTitlesCmd.Flags().String("catalog-dir", "catalog", "directory for the download catalog database")
	fetchTitlesCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	fetchTitlesCmd.Flags().Duration("delay", defaultDelay, "delay between consecutive downloads")

	rootCmd.AddCommand(fetchTitlesCmd)
}

// readTitleFile parses one title per line, ignoring blanks and # comments.
func readTitleFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening title file: %w", err)
	}
	defer f.Close()

	var titles []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		titles = append(titles, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading title file: %w", err)
	}
	return titles, nil
}

func runFetchTitles(cmd *cobra.Command, args []string) error {
	titles := args
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		fromFile, err := readTitleFile(file)
		if err != nil {
			return err
		}
		titles = append(titles, fromFile...)
	}
	if len(titles) == 0 {
		return fmt.Errorf("provide paper titles as arguments or via --file")
	}

	cfg := downloadConfig(cmd)
	client := &http.Client{Timeout: cfg.Timeout}
	graph := graphClient(cmd, client)

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = download.FetchTitles(cmd.Context(), client, graph, titles, cfg, store, os.Stdout)
	return err
}
