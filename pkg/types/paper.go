// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the corpus-engine pipeline.
package types

// ExternalIDs holds the external identifiers a paper is known by. Field
// names match the Semantic Scholar Graph API response.
type ExternalIDs struct {
	DOI      string `json:"DOI" yaml:"doi,omitempty"`
	ArXiv    string `json:"ArXiv" yaml:"arxiv,omitempty"`
	ACL      string `json:"ACL" yaml:"acl,omitempty"`
	CorpusID int64  `json:"CorpusId" yaml:"corpus_id,omitempty"`
}

// Author is a paper author as returned by the citation graph.
type Author struct {
	AuthorID string `json:"authorId" yaml:"author_id,omitempty"`
	Name     string `json:"name" yaml:"name"`
}

// OpenAccessPDF is the open-access location reported by Semantic Scholar.
// A nil pointer means the API reported none.
type OpenAccessPDF struct {
	URL string `json:"url" yaml:"url"`
}

// CitingPaper is one paper record from the Semantic Scholar Graph API:
// either a citation of the seed paper or a title-search hit. Its fields
// feed the download waterfall and the filename encoding.
type CitingPaper struct {
	// PaperID is the Semantic Scholar primary identifier (a SHA-1 hex string).
	PaperID string `json:"paperId" yaml:"paper_id"`

	// Title is the paper title as returned by the API.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors,omitempty"`

	// Year is the publication year, 0 when unknown.
	Year int `json:"year" yaml:"year"`

	// PublicationDate is the full publication date in YYYY-MM-DD form,
	// empty when the API only knows the year.
	PublicationDate string `json:"publicationDate" yaml:"publication_date,omitempty"`

	// CitationCount is the number of papers citing this paper.
	CitationCount int `json:"citationCount" yaml:"citation_count"`

	// Venue is the publication venue, empty for preprints.
	Venue string `json:"venue" yaml:"venue,omitempty"`

	// ExternalIDs carries the DOI, arXiv, and ACL identifiers used to
	// construct fallback download URLs.
	ExternalIDs ExternalIDs `json:"externalIds" yaml:"external_ids"`

	// OpenAccessPDF is the first download candidate when present.
	OpenAccessPDF *OpenAccessPDF `json:"openAccessPdf" yaml:"open_access_pdf,omitempty"`
}

// SeedPaper is the resolved seed work whose citations are fetched.
type SeedPaper struct {
	PaperID       string `json:"paperId"`
	Title         string `json:"title"`
	CitationCount int    `json:"citationCount"`
}
