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

const samplePubMedXML = `<?xml version="1.0"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <Article>
        <ArticleTitle>CRISPR-Cas9 genome editing</ArticleTitle>
        <Abstract>
          <AbstractText Label="BACKGROUND">Genome editing has advanced rapidly.</AbstractText>
          <AbstractText Label="METHODS">We review delivery strategies.</AbstractText>
        </Abstract>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

// pubmedTestServer answers esearch with the given PMID list and efetch
// with the given XML body.
func pubmedTestServer(t *testing.T, idlist, fetchXML string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/esearch.fcgi":
			if got := r.URL.Query().Get("db"); got != "pubmed" {
				t.Errorf("esearch db = %q, want pubmed", got)
			}
			fmt.Fprintf(w, `{"esearchresult": {"idlist": %s}}`, idlist)
		case "/efetch.fcgi":
			fmt.Fprint(w, fetchXML)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestPubMedFetch(t *testing.T) {
	ts := pubmedTestServer(t, `["26735016"]`, samplePubMedXML)
	defer ts.Close()

	old := pubmedAPIBase
	pubmedAPIBase = ts.URL
	defer func() { pubmedAPIBase = old }()

	p := &PubMedProvider{Client: ts.Client(), UserAgent: "test/0.1"}
	res, err := p.Fetch(context.Background(), "10.1038/nature12373")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if !res.OK {
		t.Fatalf("OK = false, want true")
	}
	if res.Source != types.SourcePubMed {
		t.Errorf("Source = %q", res.Source)
	}
	if res.Title != "CRISPR-Cas9 genome editing" {
		t.Errorf("Title = %q", res.Title)
	}
	// Structured abstract sections are joined in document order.
	want := "Genome editing has advanced rapidly. We review delivery strategies."
	if res.Abstract != want {
		t.Errorf("Abstract = %q, want %q", res.Abstract, want)
	}
}

func TestPubMedFetchSearchTerm(t *testing.T) {
	var gotTerm string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTerm = r.URL.Query().Get("term")
		fmt.Fprint(w, `{"esearchresult": {"idlist": []}}`)
	}))
	defer ts.Close()

	old := pubmedAPIBase
	pubmedAPIBase = ts.URL
	defer func() { pubmedAPIBase = old }()

	p := &PubMedProvider{Client: ts.Client()}
	res, err := p.Fetch(context.Background(), "10.1038/nature12373")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if gotTerm != "10.1038/nature12373[doi]" {
		t.Errorf("search term = %q", gotTerm)
	}
	// Empty PMID list is a clean miss, not an error.
	if res.OK {
		t.Errorf("OK = true for DOI not indexed in PubMed")
	}
}

func TestPubMedFetchNoAbstractInArticle(t *testing.T) {
	noAbstract := `<?xml version="1.0"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <Article><ArticleTitle>Title Only</ArticleTitle></Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

	ts := pubmedTestServer(t, `["123"]`, noAbstract)
	defer ts.Close()

	old := pubmedAPIBase
	pubmedAPIBase = ts.URL
	defer func() { pubmedAPIBase = old }()

	p := &PubMedProvider{Client: ts.Client()}
	res, err := p.Fetch(context.Background(), "10.1000/1")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.OK {
		t.Errorf("OK = true for article without abstract")
	}
}

func TestPubMedFetchSearchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := pubmedAPIBase
	pubmedAPIBase = ts.URL
	defer func() { pubmedAPIBase = old }()

	p := &PubMedProvider{Client: ts.Client()}
	if _, err := p.Fetch(context.Background(), "10.1000/1"); err == nil {
		t.Fatalf("expected error for HTTP 500")
	}
}
