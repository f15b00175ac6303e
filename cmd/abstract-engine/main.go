// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the abstract-engine CLI. It resolves
// paper abstracts from multiple metadata APIs and searches Scopus by
// keyword, exporting results to CSV, JSON, YAML, or a local library.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/abstract-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// credential returns the first non-empty value among the explicit flag
// value, the ABSTRACT_ENGINE_* environment (via viper), and the .secrets/
// key file. Credentials are never compiled into the binary.
func credential(flagValue, viperKey, secretKey string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := viper.GetString(viperKey); v != "" {
		return v
	}
	return loadedSecrets[secretKey]
}

// rootCmd is the base command for the abstract-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "abstract-engine",
	Short: "Multi-source paper abstract resolution and Scopus search",
	Long: `abstract-engine queries bibliographic metadata APIs (Scopus, Crossref,
PubMed, Semantic Scholar, OpenAlex, arXiv, Unpaywall) for paper abstracts.

The resolve command takes DOIs and returns the best abstract across all
configured providers, ranked by a fixed per-provider trust score. The
search command queries Scopus by keyword and backfills missing abstracts
the same way, exporting results to CSV, JSON, YAML, or a local library.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env values become visible to viper.AutomaticEnv.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./abstract-engine.yaml or ~/.config/abstract-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("abstract-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "abstract-engine"))
		}
	}

	viper.SetEnvPrefix("ABSTRACT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
