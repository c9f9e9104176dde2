// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/corpus-engine/internal/httputil"
	"github.com/pdiddy/corpus-engine/pkg/types"
)

// Base URLs for the content sources. Declared as vars so tests can
// substitute httptest servers.
var (
	arxivPDFBase     = "https://arxiv.org/pdf/"
	biorxivBase      = "https://www.biorxiv.org/content/"
	aclAnthologyBase = "https://aclanthology.org/"
	unpaywallAPIBase = "https://api.unpaywall.org/v2/"
)

// biorxivDOIPrefix marks Cold Spring Harbor preprints (bioRxiv/medRxiv).
const biorxivDOIPrefix = "10.1101/"

// Candidate is one download URL with the source it came from.
type Candidate struct {
	URL    string
	Source string
}

// Candidates returns the statically derivable download URLs for a paper,
// in waterfall priority order: the Semantic Scholar open-access location,
// then arXiv, bioRxiv, and the ACL Anthology. Unpaywall and landing-page
// scraping need network calls of their own and are appended by FetchPaper.
func Candidates(p types.CitingPaper) []Candidate {
	var cands []Candidate

	if p.OpenAccessPDF != nil && p.OpenAccessPDF.URL != "" {
		cands = append(cands, Candidate{URL: p.OpenAccessPDF.URL, Source: "s2"})
	}
	if ax := p.ExternalIDs.ArXiv; ax != "" {
		cands = append(cands, Candidate{URL: arxivPDFBase + ax + ".pdf", Source: "arxiv"})
	}
	if doi := p.ExternalIDs.DOI; strings.HasPrefix(doi, biorxivDOIPrefix) {
		cands = append(cands, Candidate{URL: biorxivBase + doi + "v1.full.pdf", Source: "biorxiv"})
	}
	if acl := p.ExternalIDs.ACL; acl != "" {
		cands = append(cands, Candidate{URL: aclAnthologyBase + acl + ".pdf", Source: "acl"})
	}
	return cands
}

// unpaywallResponse captures the fields we need from an Unpaywall record.
type unpaywallResponse struct {
	BestOALocation *unpaywallLocation `json:"best_oa_location"`
}

type unpaywallLocation struct {
	PDFURL     string `json:"url_for_pdf"`
	LandingURL string `json:"url"`
}

// resolveUnpaywall asks the Unpaywall API for the best open-access
// location of a DOI. It returns the direct PDF URL when one is known and
// the landing-page URL as scraping material otherwise. A paper Unpaywall
// does not know is not an error.
func resolveUnpaywall(ctx context.Context, client *http.Client, doi, email, userAgent string) (pdfURL, landingURL string, err error) {
	if doi == "" || email == "" {
		return "", "", nil
	}

	reqURL := unpaywallAPIBase + url.PathEscape(doi) + "?email=" + url.QueryEscape(email)
	header := http.Header{}
	if userAgent != "" {
		header.Set("User-Agent", userAgent)
	}

	var up unpaywallResponse
	if err := httputil.GetJSON(ctx, client, reqURL, header, &up); err != nil {
		if httputil.IsNotFound(err) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("querying Unpaywall for %s: %w", doi, err)
	}

	if up.BestOALocation == nil {
		return "", "", nil
	}
	return up.BestOALocation.PDFURL, up.BestOALocation.LandingURL, nil
}
