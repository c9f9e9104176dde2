// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/corpus-engine/internal/catalog"
	"github.com/pdiddy/corpus-engine/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the download catalog",
	Long: `Catalog inspects the SQLite record of download outcomes written by the
fetch commands. The catalog is an audit trail; the pipeline itself
reads only filenames.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded downloads, newest first",
	RunE:  runCatalogList,
}

var catalogStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show download counts per status",
	RunE:  runCatalogStats,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as YAML",
	RunE:  runCatalogExport,
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "directory holding the catalog database")
	catalogListCmd.Flags().Int("limit", 20, "maximum entries to list (0 = all)")
	catalogExportCmd.Flags().String("out", "", "write YAML to this file instead of stdout")

	catalogCmd.AddCommand(catalogListCmd, catalogStatsCmd, catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func catalogStore(cmd *cobra.Command) (*catalog.Store, error) {
	dir, _ := cmd.Flags().GetString("catalog-dir")
	return catalog.Open(types.CatalogConfig{Dir: dir})
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := catalogStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Catalog is empty.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%-12s %6d cit  %s\n", e.Status, e.CitationCount, e.Filename)
	}
	fmt.Printf("\n%d entries\n", len(entries))
	return nil
}

func runCatalogStats(cmd *cobra.Command, args []string) error {
	store, err := catalogStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("Catalog is empty.")
		return nil
	}

	statuses := make([]string, 0, len(stats))
	total := 0
	for status, count := range stats {
		statuses = append(statuses, status)
		total += count
	}
	sort.Strings(statuses)

	for _, status := range statuses {
		fmt.Printf("%-12s %d\n", status, stats[status])
	}
	fmt.Printf("%-12s %d\n", "total", total)
	return nil
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	store, err := catalogStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return store.ExportYAML(os.Stdout)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := store.ExportYAML(f); err != nil {
		return err
	}
	fmt.Printf("Catalog exported to %s\n", out)
	return nil
}
