// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "abstract-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ResolveConfig holds settings for the abstract resolution stage.
type ResolveConfig struct {
	HTTPConfig `yaml:",inline"`

	// InterProviderDelay is the pause between provider calls (default 400ms).
	InterProviderDelay time.Duration `json:"inter_provider_delay" yaml:"inter_provider_delay"`

	// Enable flags select which providers the resolver tries, in its
	// fixed declaration order. All default to true except Scopus, which
	// also requires an API key.
	EnableCrossref        bool `json:"enable_crossref" yaml:"enable_crossref"`
	EnablePubMed          bool `json:"enable_pubmed" yaml:"enable_pubmed"`
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`
	EnableOpenAlex        bool `json:"enable_openalex" yaml:"enable_openalex"`
	EnableArxiv           bool `json:"enable_arxiv" yaml:"enable_arxiv"`
	EnableUnpaywall       bool `json:"enable_unpaywall" yaml:"enable_unpaywall"`
	EnableScopus          bool `json:"enable_scopus" yaml:"enable_scopus"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// ScopusAPIKey enables the Scopus Abstract Retrieval provider.
	ScopusAPIKey string `json:"scopus_api_key,omitempty" yaml:"scopus_api_key,omitempty"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`

	// UnpaywallEmail is the required email parameter for the Unpaywall API.
	UnpaywallEmail string `json:"unpaywall_email,omitempty" yaml:"unpaywall_email,omitempty"`
}

// SearchConfig holds settings for the Scopus keyword search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the Scopus Search API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxCount bounds the per-request result count (Scopus caps at 200).
	MaxCount int `json:"max_count" yaml:"max_count"`

	// InterItemDelay is the pause after processing each search entry
	// (default 1s).
	InterItemDelay time.Duration `json:"inter_item_delay" yaml:"inter_item_delay"`
}

// ExportConfig holds settings for the export sinks.
type ExportConfig struct {
	// CSVPath is the default CSV output file.
	CSVPath string `json:"csv_path" yaml:"csv_path"`

	// LibraryPath is the SQLite library database file.
	LibraryPath string `json:"library_path" yaml:"library_path"`
}

// Config groups all stage configurations.
type Config struct {
	Resolve ResolveConfig `json:"resolve" yaml:"resolve"`
	Search  SearchConfig  `json:"search" yaml:"search"`
	Export  ExportConfig  `json:"export" yaml:"export"`
}
