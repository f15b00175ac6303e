// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the abstract-engine
// pipeline: per-provider fetch results, the resolved abstract chosen from
// them, searched papers, and per-stage configuration.
package types

// Sentinel is the "not available" marker used for missing fields in CSV
// output and accepted as an unresolvable DOI on input.
const Sentinel = "N/A"

// Source identifies a metadata provider.
type Source string

const (
	SourceCrossref        Source = "crossref"
	SourcePubMed          Source = "pubmed"
	SourceSemanticScholar Source = "semantic_scholar"
	SourceOpenAlex        Source = "openalex"
	SourceArxiv           Source = "arxiv"
	SourceUnpaywall       Source = "unpaywall"
	SourceScopus          Source = "scopus"

	// SourceNone marks a resolution where no provider produced an abstract.
	SourceNone Source = "none"
)

// ProviderResult is one provider's answer to an abstract query.
//
// Invariant: OK == false implies Abstract is empty; OK == true implies
// Abstract is a non-empty cleaned string.
type ProviderResult struct {
	// Source identifies which provider produced this result.
	Source Source `json:"source" yaml:"source"`

	// OK reports whether the provider returned a usable abstract.
	OK bool `json:"ok" yaml:"ok"`

	// Title is the paper title as returned by the provider.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Abstract is the cleaned abstract text: tags stripped, whitespace
	// collapsed, truncated to the resolver's maximum length.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// QualityScore is the static trust rank assigned to the provider.
	// It encodes a fixed priority, not a measured quality metric.
	QualityScore int `json:"quality_score" yaml:"quality_score"`
}

// ResolvedAbstract is the winning ProviderResult for one DOI, or the
// explicit none-result when every provider failed. It is constructed fresh
// per query and never cached.
type ResolvedAbstract struct {
	ProviderResult `yaml:",inline"`

	// Attempts is the number of providers tried for this DOI.
	Attempts int `json:"attempts" yaml:"attempts"`

	// Candidates is the number of providers that returned a usable abstract.
	Candidates int `json:"candidates" yaml:"candidates"`
}

// NoAbstract returns the explicit not-found result. Callers always receive
// a value, never a nil, so downstream branching stays uniform.
func NoAbstract() ResolvedAbstract {
	return ResolvedAbstract{ProviderResult: ProviderResult{Source: SourceNone}}
}

// AbstractText returns the abstract or the sentinel when none was found.
func (r ResolvedAbstract) AbstractText() string {
	if !r.OK || r.Abstract == "" {
		return Sentinel
	}
	return r.Abstract
}
