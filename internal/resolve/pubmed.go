// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/abstract-engine/pkg/types"
)

// pubmedAPIBase is the NCBI E-utilities endpoint. Declared as a var so
// tests can substitute an httptest server.
var pubmedAPIBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// PubMedProvider queries PubMed in two steps: esearch maps the DOI to a
// PMID, then efetch returns the article XML.
type PubMedProvider struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the provider identifier.
func (p *PubMedProvider) Name() types.Source { return types.SourcePubMed }

// QualityScore returns the provider's static trust rank.
func (p *PubMedProvider) QualityScore() int { return scorePubMed }

// Fetch looks up the PMID for doi and retrieves the article abstract.
func (p *PubMedProvider) Fetch(ctx context.Context, doi string) (types.ProviderResult, error) {
	pmid, err := p.searchPMID(ctx, doi)
	if err != nil {
		return failure(p.Name()), err
	}
	if pmid == "" {
		return failure(p.Name()), nil
	}
	return p.fetchArticle(ctx, pmid)
}

func (p *PubMedProvider) searchPMID(ctx context.Context, doi string) (string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {doi + "[doi]"},
		"retmode": {"json"},
	}
	reqURL := pubmedAPIBase + "/esearch.fcgi?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("PubMed esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("PubMed esearch returned HTTP %d", resp.StatusCode)
	}

	var sr pubmedSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("parsing PubMed esearch response: %w", err)
	}

	if len(sr.ESearchResult.IDList) == 0 {
		return "", nil
	}
	return sr.ESearchResult.IDList[0], nil
}

func (p *PubMedProvider) fetchArticle(ctx context.Context, pmid string) (types.ProviderResult, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {pmid},
		"retmode": {"xml"},
	}
	reqURL := pubmedAPIBase + "/efetch.fcgi?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return failure(p.Name()), fmt.Errorf("PubMed efetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure(p.Name()), fmt.Errorf("PubMed efetch returned HTTP %d", resp.StatusCode)
	}

	var set pubmedArticleSet
	if err := xml.NewDecoder(resp.Body).Decode(&set); err != nil {
		return failure(p.Name()), fmt.Errorf("parsing PubMed article XML: %w", err)
	}

	if len(set.Articles) == 0 {
		return failure(p.Name()), nil
	}
	article := set.Articles[0]

	// Structured abstracts arrive as multiple AbstractText sections.
	abstract := CleanAbstract(strings.Join(article.AbstractTexts, " "))
	if abstract == "" {
		return failure(p.Name()), nil
	}

	return types.ProviderResult{
		Source:   p.Name(),
		OK:       true,
		Title:    strings.TrimSpace(article.Title),
		Abstract: abstract,
	}, nil
}

// PubMed E-utilities response structures.
type pubmedSearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Title         string   `xml:"MedlineCitation>Article>ArticleTitle"`
	AbstractTexts []string `xml:"MedlineCitation>Article>Abstract>AbstractText"`
}
