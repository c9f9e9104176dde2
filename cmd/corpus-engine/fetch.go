// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-engine/internal/catalog"
	"github.com/pdiddy/corpus-engine/internal/citegraph"
	"github.com/pdiddy/corpus-engine/internal/download"
	"github.com/pdiddy/corpus-engine/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "corpus-engine/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <doi>",
	Short: "Download the PDFs of every paper citing a DOI",
	Long: `Fetch resolves the seed DOI on Semantic Scholar, lists every citing
paper, and downloads each one through a waterfall of open-access
sources (Semantic Scholar, arXiv, bioRxiv, ACL Anthology, Unpaywall,
landing-page scraping). PDFs land in the output directory under
YYYY_YYYYMMDD_CCCCC_Title.pdf names; existing names are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("api-key", "", "Semantic Scholar API key (default: .secrets/semantic-scholar-api-key)")
	fetchCmd.Flags().String("email", "", "contact email for the Unpaywall API (default: .secrets/unpaywall-email)")
	fetchCmd.Flags().Int("top", 0, "download only the first N papers after sorting (0 = all)")
	fetchCmd.Flags().Int("priority-year", time.Now().Year(), "download papers from this year first (0 = pure citation order)")
	fetchCmd.Flags().String("out-dir", "pdfs", "directory to save PDFs")
	fetchCmd.Flags().String("catalog-dir", "catalog", "directory for the download catalog database")
	fetchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	fetchCmd.Flags().Duration("delay", defaultDelay, "delay between consecutive downloads")

	rootCmd.AddCommand(fetchCmd)
}

// downloadConfig collects the flags shared by fetch and fetch-titles.
func downloadConfig(cmd *cobra.Command) types.DownloadConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")
	outDir, _ := cmd.Flags().GetString("out-dir")
	email, _ := cmd.Flags().GetString("email")

	return types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		OutDir:         outDir,
		Delay:          delay,
		UnpaywallEmail: secretDefault("unpaywall-email", email),
	}
}

func graphClient(cmd *cobra.Command, client *http.Client) *citegraph.Client {
	apiKey, _ := cmd.Flags().GetString("api-key")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return citegraph.NewClient(types.DiscoveryConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		APIKey: secretDefault("semantic-scholar-api-key", apiKey),
	}, client)
}

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	dir, _ := cmd.Flags().GetString("catalog-dir")
	return catalog.Open(types.CatalogConfig{Dir: dir})
}

func runFetch(cmd *cobra.Command, args []string) error {
	doi := args[0]
	cfg := downloadConfig(cmd)
	cfg.Top, _ = cmd.Flags().GetInt("top")
	cfg.PriorityYear, _ = cmd.Flags().GetInt("priority-year")

	client := &http.Client{Timeout: cfg.Timeout}
	graph := graphClient(cmd, client)
	ctx := cmd.Context()

	seed, err := graph.LookupDOI(ctx, doi)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Seed: %s\nTotal citations: %d\n\n", seed.Title, seed.CitationCount)

	papers, err := graph.Citations(ctx, seed.PaperID, os.Stdout)
	if err != nil {
		return err
	}

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	// Papers without open access are an expected outcome, not a failure.
	_, err = download.FetchBatch(ctx, client, papers, cfg, store, os.Stdout)
	return err
}
