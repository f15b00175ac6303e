// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/abstract-engine/pkg/types"
)

// arxivAPIBase is the arXiv query endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivProvider searches arXiv by DOI and takes the first Atom entry.
type ArxivProvider struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the provider identifier.
func (p *ArxivProvider) Name() types.Source { return types.SourceArxiv }

// QualityScore returns the provider's static trust rank.
func (p *ArxivProvider) QualityScore() int { return scoreArxiv }

// Fetch searches arXiv for the DOI and extracts the entry summary.
func (p *ArxivProvider) Fetch(ctx context.Context, doi string) (types.ProviderResult, error) {
	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=1",
		arxivAPIBase, url.QueryEscape("doi:"+doi))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure(p.Name()), fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return failure(p.Name()), fmt.Errorf("parsing arXiv response: %w", err)
	}

	if len(feed.Entries) == 0 {
		return failure(p.Name()), nil
	}
	entry := feed.Entries[0]

	abstract := CleanAbstract(entry.Summary)
	if abstract == "" {
		return failure(p.Name()), nil
	}

	return types.ProviderResult{
		Source:   p.Name(),
		OK:       true,
		Title:    strings.TrimSpace(entry.Title),
		Abstract: abstract,
	}, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	Title   string `xml:"title"`
	Summary string `xml:"summary"`
}
