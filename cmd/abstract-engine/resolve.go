package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-engine/internal/export"
	"github.com/pdiddy/abstract-engine/internal/resolve"
	"github.com/pdiddy/abstract-engine/internal/secrets"
	"github.com/pdiddy/abstract-engine/pkg/types"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultProviderDelay = 400 * time.Millisecond
	defaultUserAgent     = "abstract-engine/0.1"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [DOIs...]",
	Short: "Resolve paper abstracts across metadata providers",
	Long: `Resolve tries every configured provider for each DOI (Scopus, Crossref,
PubMed, Semantic Scholar, OpenAlex, arXiv, Unpaywall) and keeps the result
with the highest trust score. Provider failures fall through silently; a
DOI nobody can answer yields an explicit not-found result.`,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	resolveCmd.Flags().Duration("delay", 0, "pause between provider calls (default 400ms)")
	resolveCmd.Flags().Bool("json", false, "output results as JSON")
	resolveCmd.Flags().StringSlice("disable", nil, "providers to skip (e.g. arxiv,unpaywall)")

	rootCmd.AddCommand(resolveCmd)
}

// resolveConfig builds the resolution config from flags, environment, and
// secrets. disabled lists provider names to skip.
func resolveConfig(timeout, delay time.Duration, disabled []string) types.ResolveConfig {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	if delay == 0 {
		delay = defaultProviderDelay
	}

	cfg := types.ResolveConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		InterProviderDelay:    delay,
		EnableCrossref:        true,
		EnablePubMed:          true,
		EnableSemanticScholar: true,
		EnableOpenAlex:        true,
		EnableArxiv:           true,
		EnableUnpaywall:       true,
		EnableScopus:          true,
		SemanticScholarAPIKey: credential("", "semantic_scholar_api_key", secrets.KeySemanticScholar),
		ScopusAPIKey:          credential("", "scopus_api_key", secrets.KeyScopus),
		OpenAlexEmail:         credential("", "openalex_email", secrets.KeyOpenAlexEmail),
		UnpaywallEmail:        credential("", "unpaywall_email", secrets.KeyUnpaywallEmail),
	}

	for _, name := range disabled {
		switch types.Source(name) {
		case types.SourceCrossref:
			cfg.EnableCrossref = false
		case types.SourcePubMed:
			cfg.EnablePubMed = false
		case types.SourceSemanticScholar:
			cfg.EnableSemanticScholar = false
		case types.SourceOpenAlex:
			cfg.EnableOpenAlex = false
		case types.SourceArxiv:
			cfg.EnableArxiv = false
		case types.SourceUnpaywall:
			cfg.EnableUnpaywall = false
		case types.SourceScopus:
			cfg.EnableScopus = false
		}
	}
	return cfg
}

func runResolve(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more DOIs")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	delay, _ := cmd.Flags().GetDuration("delay")
	asJSON, _ := cmd.Flags().GetBool("json")
	disabled, _ := cmd.Flags().GetStringSlice("disable")

	cfg := resolveConfig(timeout, delay, disabled)
	client := &http.Client{Timeout: cfg.Timeout}

	resolver := resolve.New(resolve.FromConfig(cfg, client), cfg.InterProviderDelay, os.Stderr)

	var results []types.ResolvedAbstract
	for _, doi := range args {
		fmt.Fprintf(os.Stderr, "resolving %s\n", doi)
		results = append(results, resolver.Resolve(cmd.Context(), doi))
	}

	if asJSON {
		papers := make([]types.Paper, len(results))
		for i, r := range results {
			papers[i] = types.Paper{DOI: args[i], Title: r.Title, Abstract: r}
		}
		return export.WriteJSON(papers, os.Stdout)
	}

	for i, r := range results {
		printResolved(args[i], r)
	}
	return nil
}

func printResolved(doi string, r types.ResolvedAbstract) {
	fmt.Printf("DOI: %s\n", doi)
	if !r.OK {
		fmt.Printf("  no abstract found (%d providers tried)\n\n", r.Attempts)
		return
	}
	fmt.Printf("  source: %s (score %d, %d of %d providers answered)\n",
		r.Source, r.QualityScore, r.Candidates, r.Attempts)
	if r.Title != "" {
		fmt.Printf("  title: %s\n", r.Title)
	}
	fmt.Printf("  abstract: %s\n\n", r.Abstract)
}
