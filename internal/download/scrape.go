// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// scrapePDFURL fetches a landing page and looks for the PDF link
// publishers embed for indexers: the citation_pdf_url meta tag (the
// Highwire tags Google Scholar reads). Relative links are resolved
// against the landing URL. Returns the empty string when the page
// carries no such tag.
func scrapePDFURL(ctx context.Context, client *http.Client, landingURL, userAgent string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, landingURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching landing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, landingURL)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing landing page: %w", err)
	}

	content, ok := doc.Find(`meta[name="citation_pdf_url"]`).Attr("content")
	if !ok || content == "" {
		return "", nil
	}

	base, err := url.Parse(landingURL)
	if err != nil {
		return content, nil
	}
	ref, err := url.Parse(content)
	if err != nil {
		return "", nil
	}
	return base.ResolveReference(ref).String(), nil
}
