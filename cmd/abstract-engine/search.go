package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-engine/internal/export"
	"github.com/pdiddy/abstract-engine/internal/resolve"
	"github.com/pdiddy/abstract-engine/internal/scopus"
	"github.com/pdiddy/abstract-engine/internal/secrets"
	"github.com/pdiddy/abstract-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search Scopus for papers and backfill abstracts",
	Long: `Search runs a keyword query against the Scopus Search API, then resolves
an abstract for every hit that carries a DOI. Keywords are comma-separated;
multi-word terms are quoted and all terms are OR-combined in TITLE-ABS-KEY.
Results go to stdout (table or --json) and optionally to a CSV file and a
SQLite library.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "comma-separated keywords (required)")
	searchCmd.Flags().Int("count", 25, "maximum number of results (capped at 200)")
	searchCmd.Flags().Int("from-year", 0, "earliest publication year")
	searchCmd.Flags().Int("to-year", 0, "latest publication year")
	searchCmd.Flags().Bool("english-only", false, "restrict results to English-language papers")
	searchCmd.Flags().Bool("no-abstracts", false, "skip abstract resolution")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	searchCmd.Flags().Duration("delay", 0, "pause between result items (default 1s)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().String("csv", "", "write results to a CSV file")
	searchCmd.Flags().String("db", "", "save results into a SQLite library file")
	searchCmd.Flags().String("api-key", "", "Scopus API key (overrides env and secrets)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	keywords, _ := cmd.Flags().GetString("query")
	if keywords == "" {
		return fmt.Errorf("provide a keyword query with --query")
	}

	apiKey := credential(mustString(cmd, "api-key"), "scopus_api_key", secrets.KeyScopus)
	if apiKey == "" {
		return fmt.Errorf("no Scopus API key: set --api-key, ABSTRACT_ENGINE_SCOPUS_API_KEY, or .secrets/%s", secrets.KeyScopus)
	}

	count, _ := cmd.Flags().GetInt("count")
	fromYear, _ := cmd.Flags().GetInt("from-year")
	toYear, _ := cmd.Flags().GetInt("to-year")
	englishOnly, _ := cmd.Flags().GetBool("english-only")
	noAbstracts, _ := cmd.Flags().GetBool("no-abstracts")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	itemDelay, _ := cmd.Flags().GetDuration("delay")
	asJSON, _ := cmd.Flags().GetBool("json")
	csvPath, _ := cmd.Flags().GetString("csv")
	dbPath, _ := cmd.Flags().GetString("db")

	cfg := resolveConfig(timeout, 0, nil)
	client := &http.Client{Timeout: cfg.Timeout}

	opts := []scopus.ClientOption{
		scopus.WithHTTPClient(client),
		scopus.WithUserAgent(cfg.UserAgent),
		scopus.WithOutput(os.Stderr),
	}
	if itemDelay > 0 {
		opts = append(opts, scopus.WithInterItemDelay(itemDelay))
	}
	if !noAbstracts {
		resolver := resolve.New(resolve.FromConfig(cfg, client), cfg.InterProviderDelay, os.Stderr)
		opts = append(opts, scopus.WithResolver(resolver))
	}

	sc := scopus.NewClient(apiKey, opts...)

	query := scopus.BuildQuery(keywords, fromYear, toYear, englishOnly)
	fmt.Fprintf(os.Stderr, "query: %s\n", query)

	papers, err := sc.SearchByKeyword(cmd.Context(), query, count)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if csvPath != "" {
		if err := writeCSVFile(papers, csvPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d papers to %s\n", len(papers), csvPath)
	}
	if dbPath != "" {
		if err := saveLibrary(cmd, papers, dbPath); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %d papers to %s\n", len(papers), dbPath)
	}

	if asJSON {
		return export.WriteJSON(papers, os.Stdout)
	}
	printPapers(papers)
	return nil
}

func writeCSVFile(papers []types.Paper, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteCSV(papers, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func saveLibrary(cmd *cobra.Command, papers []types.Paper, path string) error {
	lib, err := export.OpenLibrary(path)
	if err != nil {
		return err
	}
	defer lib.Close()

	return lib.Save(cmd.Context(), papers)
}

func printPapers(papers []types.Paper) {
	fmt.Printf("%d papers\n\n", len(papers))
	for i, p := range papers {
		fmt.Printf("%3d. %s\n", i+1, p.Title)
		fmt.Printf("     %s | %s | %s | %d citations\n", p.Authors, p.Publication, p.Date, p.Citations)
		if p.DOI != "" {
			fmt.Printf("     doi: %s\n", p.DOI)
		}
		fmt.Printf("     abstract (%s): %s\n\n", p.Abstract.Source, p.Abstract.AbstractText())
	}
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
