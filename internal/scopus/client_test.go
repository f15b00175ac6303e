// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/abstract-engine/internal/httputil"
	"github.com/pdiddy/abstract-engine/pkg/types"
)

func init() {
	// Shrink the 429 wait so retry tests finish quickly.
	httputil.RetryWait = 1 * time.Millisecond
}

const sampleSearchJSON = `{
  "search-results": {
    "opensearch:totalResults": "2",
    "entry": [
      {
        "dc:title": "Usability of API clients",
        "dc:creator": "Kim J.",
        "prism:publicationName": "Journal of Systems and Software",
        "prism:coverDate": "2025-03-01",
        "prism:doi": "10.1016/j.jss.2025.01001",
        "citedby-count": "12",
        "dc:identifier": "SCOPUS_ID:85000000001",
        "eid": "2-s2.0-85000000001"
      },
      {
        "dc:title": "Conference keynote without DOI",
        "dc:creator": "Park S.",
        "prism:publicationName": "Proceedings of CHI",
        "prism:coverDate": "2024-11-15",
        "citedby-count": "0",
        "dc:identifier": "SCOPUS_ID:85000000002",
        "eid": "2-s2.0-85000000002"
      }
    ]
  }
}`

// --- mock resolver ---

type mockResolver struct {
	calls []string
}

func (m *mockResolver) Resolve(_ context.Context, doi string) types.ResolvedAbstract {
	m.calls = append(m.calls, doi)
	return types.ResolvedAbstract{
		ProviderResult: types.ProviderResult{
			Source:       types.SourceCrossref,
			OK:           true,
			Abstract:     "resolved abstract",
			QualityScore: 9,
		},
		Attempts:   1,
		Candidates: 1,
	}
}

func newTestClient(ts *httptest.Server, r AbstractResolver) *Client {
	return NewClient("test-key",
		WithHTTPClient(ts.Client()),
		WithResolver(r),
		WithInterItemDelay(0),
	)
}

func TestSearchByKeyword(t *testing.T) {
	var gotQuery, gotCount, gotStart, gotAPIKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery, gotCount, gotStart, gotAPIKey = q.Get("query"), q.Get("count"), q.Get("start"), q.Get("apiKey")
		fmt.Fprint(w, sampleSearchJSON)
	}))
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	resolver := &mockResolver{}
	papers, err := newTestClient(ts, resolver).SearchByKeyword(context.Background(), "usability", 25)
	if err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}

	if gotQuery != "usability" || gotCount != "25" || gotStart != "0" || gotAPIKey != "test-key" {
		t.Errorf("request params = query %q count %q start %q apiKey %q", gotQuery, gotCount, gotStart, gotAPIKey)
	}
	if len(papers) != 2 {
		t.Fatalf("got %d papers, want 2", len(papers))
	}

	first := papers[0]
	if first.Title != "Usability of API clients" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Citations != 12 {
		t.Errorf("Citations = %d, want 12", first.Citations)
	}
	if first.ScopusID != "85000000001" {
		t.Errorf("ScopusID = %q (prefix not stripped?)", first.ScopusID)
	}
	if first.EID != "2-s2.0-85000000001" {
		t.Errorf("EID = %q", first.EID)
	}
	if first.ScopusURL != scopusInwardBase+"2-s2.0-85000000001" {
		t.Errorf("ScopusURL = %q", first.ScopusURL)
	}
	if !first.Abstract.OK || first.Abstract.Abstract != "resolved abstract" {
		t.Errorf("first abstract = %+v", first.Abstract)
	}
}

func TestSearchEntryWithoutDOISkipsResolver(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, sampleSearchJSON)
	}))
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	resolver := &mockResolver{}
	papers, err := newTestClient(ts, resolver).SearchByKeyword(context.Background(), "usability", 25)
	if err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}

	// Only the first entry has a DOI; the resolver must see exactly that one.
	if len(resolver.calls) != 1 || resolver.calls[0] != "10.1016/j.jss.2025.01001" {
		t.Errorf("resolver calls = %v, want exactly the DOI-bearing entry", resolver.calls)
	}

	second := papers[1]
	if second.Abstract.OK || second.Abstract.Source != types.SourceNone {
		t.Errorf("DOI-less entry abstract = %+v, want explicit none", second.Abstract)
	}
	if second.Abstract.AbstractText() != types.Sentinel {
		t.Errorf("AbstractText() = %q, want sentinel", second.Abstract.AbstractText())
	}
}

func TestSearchCountClampedToMaximum(t *testing.T) {
	var gotCount string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCount = r.URL.Query().Get("count")
		fmt.Fprint(w, `{"search-results": {"opensearch:totalResults": "0", "entry": []}}`)
	}))
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	if _, err := newTestClient(ts, nil).SearchByKeyword(context.Background(), "usability", 5000); err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}
	if gotCount != "200" {
		t.Errorf("count = %q, want clamped 200", gotCount)
	}
}

func TestSearchRetriesOnceOn429(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"search-results": {"opensearch:totalResults": "0", "entry": []}}`)
	}))
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	if _, err := newTestClient(ts, nil).SearchByKeyword(context.Background(), "usability", 10); err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("search called %d times, want 2 (original + one retry)", got)
	}
}

func TestSearchPersistent429IsAnError(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	old := searchAPIBase
	searchAPIBase = ts.URL
	defer func() { searchAPIBase = old }()

	_, err := newTestClient(ts, nil).SearchByKeyword(context.Background(), "usability", 10)
	if err == nil {
		t.Fatalf("expected error after exhausted retry")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("search called %d times, want 2 (no further retries)", got)
	}
}

func TestSearchEmptyQueryRejected(t *testing.T) {
	if _, err := NewClient("k").SearchByKeyword(context.Background(), "  ", 10); err == nil {
		t.Fatalf("expected error for empty query")
	}
}
