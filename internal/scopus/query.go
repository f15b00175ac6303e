// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"fmt"
	"strings"
)

// BuildQuery assembles a Scopus advanced search query. Comma-separated
// keywords are OR-joined inside a single TITLE-ABS-KEY clause, with
// multi-word keywords quoted. Year bounds are exclusive, matching the
// PUBYEAR operator semantics; zero disables a bound. englishOnly appends
// a LANGUAGE filter.
func BuildQuery(keywords string, fromYear, toYear int, englishOnly bool) string {
	var terms []string
	for _, k := range strings.Split(keywords, ",") {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if strings.Contains(k, " ") {
			k = `"` + k + `"`
		}
		terms = append(terms, k)
	}
	if len(terms) == 0 {
		return ""
	}

	parts := []string{fmt.Sprintf("TITLE-ABS-KEY(%s)", strings.Join(terms, " OR "))}
	if fromYear > 0 {
		parts = append(parts, fmt.Sprintf("PUBYEAR > %d", fromYear-1))
	}
	if toYear > 0 {
		parts = append(parts, fmt.Sprintf("PUBYEAR < %d", toYear+1))
	}
	if englishOnly {
		parts = append(parts, "LANGUAGE(english)")
	}
	return strings.Join(parts, " AND ")
}
