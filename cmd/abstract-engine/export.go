package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/abstract-engine/internal/export"
	"github.com/pdiddy/abstract-engine/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a SQLite library to CSV, JSON, or YAML",
	Long: `Export reads every paper stored in a SQLite library (ordered by citation
count) and writes it out as CSV, JSON, or YAML. With no output flags the
papers are printed as JSON to stdout.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("db", "library.db", "SQLite library file to read")
	exportCmd.Flags().String("csv", "", "write papers to a CSV file")
	exportCmd.Flags().String("json", "", "write papers to a JSON file")
	exportCmd.Flags().String("yaml", "", "write papers to a YAML file")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	csvPath, _ := cmd.Flags().GetString("csv")
	jsonPath, _ := cmd.Flags().GetString("json")
	yamlPath, _ := cmd.Flags().GetString("yaml")

	lib, err := export.OpenLibrary(dbPath)
	if err != nil {
		return err
	}
	defer lib.Close()

	papers, err := lib.List(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "loaded %d papers from %s\n", len(papers), dbPath)

	if csvPath == "" && jsonPath == "" && yamlPath == "" {
		return export.WriteJSON(papers, os.Stdout)
	}

	if csvPath != "" {
		if err := writeCSVFile(papers, csvPath); err != nil {
			return err
		}
	}
	if jsonPath != "" {
		if err := writeToFile(papers, jsonPath, export.WriteJSON); err != nil {
			return err
		}
	}
	if yamlPath != "" {
		if err := writeToFile(papers, yamlPath, export.WriteYAML); err != nil {
			return err
		}
	}
	return nil
}

func writeToFile(papers []types.Paper, path string, write func([]types.Paper, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := write(papers, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
