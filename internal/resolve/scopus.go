// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/abstract-engine/pkg/types"
)

// scopusAbstractAPIBase is the Elsevier Abstract Retrieval endpoint,
// DOI-keyed. Declared as a var so tests can substitute an httptest server.
var scopusAbstractAPIBase = "https://api.elsevier.com/content/abstract/doi/"

// ScopusProvider queries the Scopus Abstract Retrieval API by DOI. The
// response is namespace-qualified XML; the abstract lives in the coredata
// dc:description element. Requires an Elsevier API key.
type ScopusProvider struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
}

// Name returns the provider identifier.
func (p *ScopusProvider) Name() types.Source { return types.SourceScopus }

// QualityScore returns the provider's static trust rank.
func (p *ScopusProvider) QualityScore() int { return scoreScopus }

// Fetch retrieves the abstract record for doi.
func (p *ScopusProvider) Fetch(ctx context.Context, doi string) (types.ProviderResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scopusAbstractAPIBase+doi+"?view=FULL", nil)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)
	req.Header.Set("Accept", "text/xml")
	req.Header.Set("X-ELS-APIKey", p.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("Scopus Abstract Retrieval request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure(p.Name()), fmt.Errorf("Scopus Abstract Retrieval returned HTTP %d", resp.StatusCode)
	}

	var ar scopusAbstractResponse
	if err := xml.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return failure(p.Name()), fmt.Errorf("parsing Scopus abstract XML: %w", err)
	}

	abstract := CleanAbstract(ar.Coredata.Description)
	if abstract == "" {
		return failure(p.Name()), nil
	}

	return types.ProviderResult{
		Source:   p.Name(),
		OK:       true,
		Title:    strings.TrimSpace(ar.Coredata.Title),
		Abstract: abstract,
	}, nil
}

// Scopus Abstract Retrieval XML structures. Element lookups are qualified
// with the Dublin Core namespace used by the Elsevier response DTD.
type scopusAbstractResponse struct {
	XMLName  xml.Name       `xml:"abstracts-retrieval-response"`
	Coredata scopusCoredata `xml:"coredata"`
}

type scopusCoredata struct {
	Title       string `xml:"http://purl.org/dc/elements/1.1/ title"`
	Description string `xml:"http://purl.org/dc/elements/1.1/ description"`
	DOI         string `xml:"http://prismstandard.org/namespaces/basic/2.0/ doi"`
}
