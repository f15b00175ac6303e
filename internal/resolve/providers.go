// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"net/http"

	"github.com/pdiddy/abstract-engine/pkg/types"
)

// FromConfig assembles the provider list in the resolver's fixed trust
// order: scopus, crossref, pubmed, semantic_scholar, openalex, arxiv,
// unpaywall. Disabled providers are omitted; Scopus additionally requires
// an API key. All providers share the same HTTP client.
func FromConfig(cfg types.ResolveConfig, client *http.Client) []Provider {
	ua := cfg.UserAgent

	var providers []Provider
	if cfg.EnableScopus && cfg.ScopusAPIKey != "" {
		providers = append(providers, &ScopusProvider{Client: client, UserAgent: ua, APIKey: cfg.ScopusAPIKey})
	}
	if cfg.EnableCrossref {
		providers = append(providers, &CrossrefProvider{Client: client, UserAgent: ua})
	}
	if cfg.EnablePubMed {
		providers = append(providers, &PubMedProvider{Client: client, UserAgent: ua})
	}
	if cfg.EnableSemanticScholar {
		providers = append(providers, &SemanticScholarProvider{Client: client, UserAgent: ua, APIKey: cfg.SemanticScholarAPIKey})
	}
	if cfg.EnableOpenAlex {
		providers = append(providers, &OpenAlexProvider{Client: client, UserAgent: ua, Email: cfg.OpenAlexEmail})
	}
	if cfg.EnableArxiv {
		providers = append(providers, &ArxivProvider{Client: client, UserAgent: ua})
	}
	if cfg.EnableUnpaywall {
		providers = append(providers, &UnpaywallProvider{Client: client, UserAgent: ua, Email: cfg.UnpaywallEmail})
	}
	return providers
}
