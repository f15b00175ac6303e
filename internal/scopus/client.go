// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scopus queries the Scopus Search API by keyword and backfills
// missing abstracts through the multi-source resolver.
package scopus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/abstract-engine/internal/httputil"
	"github.com/pdiddy/abstract-engine/internal/throttle"
	"github.com/pdiddy/abstract-engine/pkg/types"
)

// searchAPIBase is the Scopus Search endpoint. Declared as a var so tests
// can substitute an httptest server.
var searchAPIBase = "https://api.elsevier.com/content/search/scopus"

// scopusInwardBase is the public record link prefix built from an EID.
const scopusInwardBase = "https://www.scopus.com/inward/record.uri?eid="

// MaxCount is the Scopus-side cap on results per request.
const MaxCount = 200

// DefaultInterItemDelay paces per-entry processing to stay under the
// provider rate limits.
const DefaultInterItemDelay = time.Second

// AbstractResolver backfills an abstract for a DOI. Satisfied by
// *resolve.Resolver; a client without a resolver marks every abstract as
// not found.
type AbstractResolver interface {
	Resolve(ctx context.Context, doi string) types.ResolvedAbstract
}

// Client searches Scopus by keyword. It is synchronous and processes
// entries strictly one at a time.
type Client struct {
	httpClient *http.Client
	apiKey     string
	userAgent  string
	resolver   AbstractResolver
	pause      *throttle.Interval
	w          io.Writer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header for search requests.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithResolver attaches an abstract resolver for DOI backfill.
func WithResolver(r AbstractResolver) ClientOption {
	return func(c *Client) { c.resolver = r }
}

// WithInterItemDelay sets the pause applied between search entries.
func WithInterItemDelay(d time.Duration) ClientOption {
	return func(c *Client) { c.pause = throttle.NewInterval(d) }
}

// WithOutput directs progress and warnings to w.
func WithOutput(w io.Writer) ClientOption {
	return func(c *Client) { c.w = w }
}

// NewClient creates a Scopus search client authenticated with apiKey.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		pause:      throttle.NewInterval(DefaultInterItemDelay),
		w:          io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchByKeyword requests up to count entries for query (first page only,
// offset 0) and attaches an abstract to each. Entries without a DOI get
// the explicit not-found abstract without any resolver call; entries with
// a DOI are resolved synchronously one at a time, with a fixed pause
// between entries.
//
// A 429 from the search endpoint triggers a single 60-second wait and one
// retry; a second 429 is reported as an error.
func (c *Client) SearchByKeyword(ctx context.Context, query string, count int) ([]types.Paper, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is empty")
	}
	if count <= 0 {
		count = 25
	}
	if count > MaxCount {
		count = MaxCount
	}

	params := url.Values{
		"query":  {query},
		"count":  {strconv.Itoa(count)},
		"start":  {"0"},
		"apiKey": {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-ELS-APIKey", c.apiKey)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 1)
	if err != nil {
		return nil, fmt.Errorf("Scopus Search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Scopus Search returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Scopus Search response: %w", err)
	}

	papers := make([]types.Paper, 0, len(sr.SearchResults.Entries))
	for i, entry := range sr.SearchResults.Entries {
		if i > 0 {
			if err := c.pause.Wait(ctx); err != nil {
				return papers, err
			}
		}
		papers = append(papers, c.buildPaper(ctx, entry))
	}
	return papers, nil
}

// buildPaper converts one search entry and backfills its abstract.
func (c *Client) buildPaper(ctx context.Context, entry searchEntry) types.Paper {
	p := types.Paper{
		Title:       entry.Title,
		Authors:     entry.Creator,
		Publication: entry.PublicationName,
		Date:        entry.CoverDate,
		DOI:         entry.DOI,
		ScopusID:    strings.TrimPrefix(entry.Identifier, "SCOPUS_ID:"),
		EID:         entry.EID,
	}
	if n, err := strconv.Atoi(entry.CitedByCount); err == nil {
		p.Citations = n
	}
	if entry.EID != "" {
		p.ScopusURL = scopusInwardBase + entry.EID
	}

	// No DOI means no resolvable abstract: skip the resolver entirely.
	if p.DOI == "" || p.DOI == types.Sentinel || c.resolver == nil {
		p.Abstract = types.NoAbstract()
		return p
	}

	fmt.Fprintf(c.w, "resolving abstract for %s\n", p.DOI)
	p.Abstract = c.resolver.Resolve(ctx, p.DOI)
	return p
}

// Scopus Search API JSON structures. Numeric fields arrive as strings.
type searchResponse struct {
	SearchResults searchResults `json:"search-results"`
}

type searchResults struct {
	TotalResults string        `json:"opensearch:totalResults"`
	Entries      []searchEntry `json:"entry"`
}

type searchEntry struct {
	Title           string `json:"dc:title"`
	Creator         string `json:"dc:creator"`
	PublicationName string `json:"prism:publicationName"`
	CoverDate       string `json:"prism:coverDate"`
	DOI             string `json:"prism:doi"`
	CitedByCount    string `json:"citedby-count"`
	Identifier      string `json:"dc:identifier"`
	EID             string `json:"eid"`
}
