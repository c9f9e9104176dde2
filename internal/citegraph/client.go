// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citegraph queries the Semantic Scholar Graph API for the
// citation neighborhood of a seed paper and for title lookups.
package citegraph

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/corpus-engine/internal/httputil"
	"github.com/pdiddy/corpus-engine/pkg/types"
)

// apiBase is the Semantic Scholar Graph API root. Declared as a var so
// tests can substitute an httptest server.
var apiBase = "https://api.semanticscholar.org/graph/v1"

// paperFields lists the fields requested for citing papers and search
// hits. Everything the filename encoding and the download waterfall need.
const paperFields = "title,authors,year,publicationDate,citationCount,externalIds,venue,openAccessPdf"

const seedFields = "paperId,title,citationCount"

// pageLimit is the citation page size, the maximum the API allows.
const pageLimit = 1000

// Client calls the Semantic Scholar Graph API.
type Client struct {
	HTTP      *http.Client
	UserAgent string

	// APIKey is sent as the x-api-key header when nonempty. Anonymous
	// access works but is rate limited aggressively.
	APIKey string

	// PageDelay is the pause between citation pages (default 500ms).
	PageDelay time.Duration
}

// NewClient builds a Client from discovery settings.
func NewClient(cfg types.DiscoveryConfig, client *http.Client) *Client {
	return &Client{
		HTTP:      client,
		UserAgent: cfg.UserAgent,
		APIKey:    cfg.APIKey,
		PageDelay: cfg.PageDelay,
	}
}

func (c *Client) header() http.Header {
	h := http.Header{}
	if c.UserAgent != "" {
		h.Set("User-Agent", c.UserAgent)
	}
	if c.APIKey != "" {
		h.Set("x-api-key", c.APIKey)
	}
	return h
}

// LookupDOI resolves a DOI to its Semantic Scholar paper record.
func (c *Client) LookupDOI(ctx context.Context, doi string) (*types.SeedPaper, error) {
	reqURL := fmt.Sprintf("%s/paper/DOI:%s?fields=%s", apiBase, url.PathEscape(doi), seedFields)

	var seed types.SeedPaper
	if err := httputil.GetJSON(ctx, c.HTTP, reqURL, c.header(), &seed); err != nil {
		if httputil.IsNotFound(err) {
			return nil, fmt.Errorf("DOI %s not found on Semantic Scholar", doi)
		}
		return nil, fmt.Errorf("resolving DOI %s: %w", doi, err)
	}
	return &seed, nil
}

// citationsResponse is one page of the citations endpoint. Each entry
// wraps the actual paper in a citingPaper envelope.
type citationsResponse struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Data   []struct {
		CitingPaper types.CitingPaper `json:"citingPaper"`
	} `json:"data"`
}

// Citations returns every paper citing paperID, walking the paginated
// citations endpoint until it is exhausted. Progress is reported to w as
// pages arrive. Paging stops on an empty batch even if the reported
// total claims more, so a lying total cannot loop forever.
func (c *Client) Citations(ctx context.Context, paperID string, w io.Writer) ([]types.CitingPaper, error) {
	pageDelay := c.PageDelay
	if pageDelay == 0 {
		pageDelay = 500 * time.Millisecond
	}

	var papers []types.CitingPaper
	offset := 0
	for {
		params := url.Values{
			"fields": {paperFields},
			"limit":  {fmt.Sprintf("%d", pageLimit)},
			"offset": {fmt.Sprintf("%d", offset)},
		}
		reqURL := fmt.Sprintf("%s/paper/%s/citations?%s", apiBase, paperID, params.Encode())

		var page citationsResponse
		if err := httputil.GetJSON(ctx, c.HTTP, reqURL, c.header(), &page); err != nil {
			return nil, fmt.Errorf("fetching citations at offset %d: %w", offset, err)
		}

		if len(page.Data) == 0 {
			break
		}
		for _, entry := range page.Data {
			papers = append(papers, entry.CitingPaper)
		}

		offset += len(page.Data)
		fmt.Fprintf(w, "  fetched %d/%d citing papers\n", len(papers), page.Total)

		if offset >= page.Total {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pageDelay):
		}
	}
	return papers, nil
}

// searchResponse is the title-search endpoint payload.
type searchResponse struct {
	Total int                 `json:"total"`
	Data  []types.CitingPaper `json:"data"`
}

// SearchTitle searches the API for a paper by title and returns the best
// match, or nil when nothing was found. Only systemic failures are errors.
func (c *Client) SearchTitle(ctx context.Context, title string) (*types.CitingPaper, error) {
	params := url.Values{
		"query":  {title},
		"fields": {paperFields},
		"limit":  {"3"},
	}
	reqURL := fmt.Sprintf("%s/paper/search?%s", apiBase, params.Encode())

	var sr searchResponse
	if err := httputil.GetJSON(ctx, c.HTTP, reqURL, c.header(), &sr); err != nil {
		return nil, fmt.Errorf("searching for %q: %w", title, err)
	}

	if len(sr.Data) == 0 {
		return nil, nil
	}
	return &sr.Data[0], nil
}
