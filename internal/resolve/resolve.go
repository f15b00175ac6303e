// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve fetches paper abstracts from multiple metadata providers
// and selects the best candidate by a static per-provider trust rank.
package resolve

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/abstract-engine/internal/throttle"
	"github.com/pdiddy/abstract-engine/pkg/types"
)

// Static quality scores. These encode a fixed trust ranking per provider,
// not a measured quality metric.
const (
	scoreScopus          = 10
	scoreCrossref        = 9
	scorePubMed          = 8
	scoreSemanticScholar = 7
	scoreOpenAlex        = 6
	scoreArxiv           = 5
	scoreUnpaywall       = 4
)

// Provider fetches one source's answer to a DOI query. Each provider
// (Crossref, PubMed, ...) implements this interface per the Strategy
// pattern; providers can be added or removed without touching the
// resolution logic.
type Provider interface {
	Name() types.Source
	QualityScore() int
	Fetch(ctx context.Context, doi string) (types.ProviderResult, error)
}

// Resolver queries an ordered list of providers and picks the
// highest-scoring successful result.
type Resolver struct {
	providers []Provider
	pause     *throttle.Interval
	w         io.Writer
}

// New returns a Resolver over providers, tried in the given order with
// interDelay between consecutive calls. Progress and warnings go to w.
func New(providers []Provider, interDelay time.Duration, w io.Writer) *Resolver {
	if w == nil {
		w = io.Discard
	}
	return &Resolver{
		providers: providers,
		pause:     throttle.NewInterval(interDelay),
		w:         w,
	}
}

// Resolve tries every configured provider for the DOI and returns the
// successful result with the highest quality score. It never stops early
// on a success, and a provider failure never aborts resolution: transport
// errors, bad statuses, and malformed or absent fields all collapse into
// a failed attempt for that provider.
//
// Ties are broken by declaration order: a later provider replaces the
// current best only under a strictly greater score, so the first-declared
// maximum wins. An empty or "N/A" DOI short-circuits to the none-result
// without any network call, as does an empty provider list.
func (r *Resolver) Resolve(ctx context.Context, doi string) types.ResolvedAbstract {
	if doi == "" || doi == types.Sentinel {
		return types.NoAbstract()
	}

	out := types.NoAbstract()
	best := -1

	for i, p := range r.providers {
		if i > 0 {
			if err := r.pause.Wait(ctx); err != nil {
				fmt.Fprintf(r.w, "warning: resolution interrupted: %v\n", err)
				return out
			}
		}
		out.Attempts++

		res, err := p.Fetch(ctx, doi)
		if err != nil {
			fmt.Fprintf(r.w, "warning: %s: %v\n", p.Name(), err)
			continue
		}
		res.Source = p.Name()
		res.QualityScore = p.QualityScore()
		if !res.OK || res.Abstract == "" {
			continue
		}

		out.Candidates++
		fmt.Fprintf(r.w, "  %s: abstract found (score %d)\n", res.Source, res.QualityScore)
		if res.QualityScore > best {
			best = res.QualityScore
			out.ProviderResult = res
		}
	}

	return out
}

// failure returns the uniform failed result for a provider. The negative
// outcome carries no abstract, per the ProviderResult invariant.
func failure(src types.Source) types.ProviderResult {
	return types.ProviderResult{Source: src}
}
