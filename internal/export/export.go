// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes searched papers to output sinks: CSV, JSON, YAML,
// and a local SQLite library.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/abstract-engine/pkg/types"
)

// csvHeader is the fixed CSV column layout.
var csvHeader = []string{
	"Title", "Authors", "Publication", "Date", "DOI",
	"Citations", "Scopus_ID", "Scopus_URL", "Abstract", "Abstract_Source",
}

// WriteCSV writes papers as CSV to w. Empty string fields are rendered as
// the "N/A" sentinel, matching the historical export format.
func WriteCSV(papers []types.Paper, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range papers {
		row := []string{
			orSentinel(p.Title),
			orSentinel(p.Authors),
			orSentinel(p.Publication),
			orSentinel(p.Date),
			orSentinel(p.DOI),
			strconv.Itoa(p.Citations),
			orSentinel(p.ScopusID),
			orSentinel(p.ScopusURL),
			p.Abstract.AbstractText(),
			string(p.Abstract.Source),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON writes papers as indented JSON to w.
func WriteJSON(papers []types.Paper, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

// WriteYAML writes papers as YAML to w.
func WriteYAML(papers []types.Paper, w io.Writer) error {
	data, err := yaml.Marshal(papers)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func orSentinel(s string) string {
	if s == "" {
		return types.Sentinel
	}
	return s
}
