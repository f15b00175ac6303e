// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/abstract-engine/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works/"

// CrossrefProvider queries the Crossref works API by DOI. Crossref
// abstracts arrive as JATS-tagged XML fragments inside the JSON payload.
type CrossrefProvider struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the provider identifier.
func (p *CrossrefProvider) Name() types.Source { return types.SourceCrossref }

// QualityScore returns the provider's static trust rank.
func (p *CrossrefProvider) QualityScore() int { return scoreCrossref }

// Fetch retrieves the work record for doi and extracts its abstract.
func (p *CrossrefProvider) Fetch(ctx context.Context, doi string) (types.ProviderResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, crossrefAPIBase+doi, nil)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure(p.Name()), fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return failure(p.Name()), fmt.Errorf("parsing Crossref response: %w", err)
	}

	abstract := CleanAbstract(cr.Message.Abstract)
	if abstract == "" {
		return failure(p.Name()), nil
	}

	res := types.ProviderResult{
		Source:   p.Name(),
		OK:       true,
		Abstract: abstract,
	}
	if len(cr.Message.Title) > 0 {
		res.Title = cr.Message.Title[0]
	}
	return res, nil
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	Title    []string `json:"title"`
	Abstract string   `json:"abstract"`
}
