// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/abstract-engine/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper endpoint. Declared as a
// var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/v1/paper/"

// SemanticScholarProvider queries the Semantic Scholar v1 paper API by DOI.
type SemanticScholarProvider struct {
	Client    *http.Client
	UserAgent string
	// APIKey is optional; it raises the provider-side rate limit.
	APIKey string
}

// Name returns the provider identifier.
func (p *SemanticScholarProvider) Name() types.Source { return types.SourceSemanticScholar }

// QualityScore returns the provider's static trust rank.
func (p *SemanticScholarProvider) QualityScore() int { return scoreSemanticScholar }

// Fetch retrieves the paper record for doi and extracts its abstract.
func (p *SemanticScholarProvider) Fetch(ctx context.Context, doi string) (types.ProviderResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+doi, nil)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)
	if p.APIKey != "" {
		req.Header.Set("x-api-key", p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure(p.Name()), fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var paper semanticPaper
	if err := json.NewDecoder(resp.Body).Decode(&paper); err != nil {
		return failure(p.Name()), fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	abstract := CleanAbstract(paper.Abstract)
	if abstract == "" {
		return failure(p.Name()), nil
	}

	return types.ProviderResult{
		Source:   p.Name(),
		OK:       true,
		Title:    paper.Title,
		Abstract: abstract,
	}, nil
}

// Semantic Scholar API JSON structure.
type semanticPaper struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}
