// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/abstract-engine/pkg/types"
)

func TestSemanticScholarFetch(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		fmt.Fprint(w, `{"title": "Attention Is All You Need", "abstract": "The dominant sequence transduction models."}`)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL + "/paper/"
	defer func() { semanticAPIBase = old }()

	p := &SemanticScholarProvider{Client: ts.Client(), APIKey: "sk-test"}
	res, err := p.Fetch(context.Background(), "10.5555/3295222.3295349")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotKey != "sk-test" {
		t.Errorf("x-api-key header = %q", gotKey)
	}
	if !res.OK || res.Source != types.SourceSemanticScholar {
		t.Errorf("got %+v", res)
	}
	if res.Abstract != "The dominant sequence transduction models." {
		t.Errorf("Abstract = %q", res.Abstract)
	}
}

func TestSemanticScholarFetchNullAbstract(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"title": "Paper", "abstract": null}`)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL + "/paper/"
	defer func() { semanticAPIBase = old }()

	p := &SemanticScholarProvider{Client: ts.Client()}
	res, err := p.Fetch(context.Background(), "10.1000/1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.OK {
		t.Errorf("OK = true for null abstract")
	}
}

func TestSemanticScholarFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL + "/paper/"
	defer func() { semanticAPIBase = old }()

	p := &SemanticScholarProvider{Client: ts.Client()}
	if _, err := p.Fetch(context.Background(), "10.1000/1"); err == nil {
		t.Fatalf("expected error for HTTP 403")
	}
}
