// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/abstract-engine/pkg/types"
)

// openAlexAPIBase is the OpenAlex works endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works/"

// OpenAlexProvider queries the OpenAlex works API by DOI. OpenAlex ships
// abstracts as an inverted index, which is reconstructed into plain text.
type OpenAlexProvider struct {
	Client    *http.Client
	UserAgent string
	// Email is sent as the mailto parameter for polite pool access.
	Email string
}

// Name returns the provider identifier.
func (p *OpenAlexProvider) Name() types.Source { return types.SourceOpenAlex }

// QualityScore returns the provider's static trust rank.
func (p *OpenAlexProvider) QualityScore() int { return scoreOpenAlex }

// Fetch retrieves the work record for doi and reconstructs its abstract.
func (p *OpenAlexProvider) Fetch(ctx context.Context, doi string) (types.ProviderResult, error) {
	reqURL := openAlexAPIBase + "doi:" + doi
	if p.Email != "" {
		reqURL += "?mailto=" + url.QueryEscape(p.Email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure(p.Name()), fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var work openAlexWork
	if err := json.NewDecoder(resp.Body).Decode(&work); err != nil {
		return failure(p.Name()), fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	abstract := CleanAbstract(ReconstructAbstract(work.AbstractInvertedIndex))
	if abstract == "" {
		return failure(p.Name()), nil
	}

	return types.ProviderResult{
		Source:   p.Name(),
		OK:       true,
		Title:    work.Title,
		Abstract: abstract,
	}, nil
}

// OpenAlex API JSON structure.
type openAlexWork struct {
	Title                 string           `json:"title"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}
