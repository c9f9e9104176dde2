package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "corpus-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DiscoveryConfig holds settings for the citation-graph queries.
type DiscoveryConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is an optional Semantic Scholar API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// PageDelay is the pause between citation pages (default 500ms).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`
}

// DownloadConfig holds settings for the PDF download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutDir is the directory PDFs are written to (default "pdfs").
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Delay is the pause between consecutive downloads (default 1s).
	Delay time.Duration `json:"delay" yaml:"delay"`

	// PriorityYear floats papers published in this year to the front of
	// the download order regardless of citation count. 0 disables.
	PriorityYear int `json:"priority_year" yaml:"priority_year"`

	// Top limits the batch to the first N papers after sorting. 0 means all.
	Top int `json:"top" yaml:"top"`

	// UnpaywallEmail is the contact address required by the Unpaywall API.
	// The Unpaywall fallback is skipped when empty.
	UnpaywallEmail string `json:"unpaywall_email,omitempty" yaml:"unpaywall_email,omitempty"`
}

// ConversionConfig holds settings for the PDF-to-text stage.
type ConversionConfig struct {
	// PDFDir is the directory scanned for *.pdf input (default "pdfs").
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir"`

	// TxtDir is the directory .txt output is written to (default "pdfs_txt").
	TxtDir string `json:"txt_dir" yaml:"txt_dir"`
}

// CatalogConfig holds settings for the download catalog.
type CatalogConfig struct {
	// Dir is the directory holding the catalog database (default "catalog").
	Dir string `json:"dir" yaml:"dir"`
}
