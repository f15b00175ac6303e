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

// unpaywallAPIBase is the Unpaywall v2 endpoint. Declared as a var so
// tests can substitute an httptest server.
var unpaywallAPIBase = "https://api.unpaywall.org/v2/"

// UnpaywallProvider queries the Unpaywall API by DOI. Unpaywall requires
// a contact email on every request.
type UnpaywallProvider struct {
	Client    *http.Client
	UserAgent string
	Email     string
}

// Name returns the provider identifier.
func (p *UnpaywallProvider) Name() types.Source { return types.SourceUnpaywall }

// QualityScore returns the provider's static trust rank.
func (p *UnpaywallProvider) QualityScore() int { return scoreUnpaywall }

// Fetch retrieves the Unpaywall record for doi and extracts its abstract.
func (p *UnpaywallProvider) Fetch(ctx context.Context, doi string) (types.ProviderResult, error) {
	reqURL := unpaywallAPIBase + doi
	if p.Email != "" {
		reqURL += "?email=" + url.QueryEscape(p.Email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("Unpaywall API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure(p.Name()), fmt.Errorf("Unpaywall API returned HTTP %d", resp.StatusCode)
	}

	var rec unpaywallRecord
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return failure(p.Name()), fmt.Errorf("parsing Unpaywall response: %w", err)
	}

	abstract := CleanAbstract(rec.Abstract)
	if abstract == "" {
		return failure(p.Name()), nil
	}

	return types.ProviderResult{
		Source:   p.Name(),
		OK:       true,
		Title:    rec.Title,
		Abstract: abstract,
	}, nil
}

// Unpaywall API JSON structure.
type unpaywallRecord struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}
