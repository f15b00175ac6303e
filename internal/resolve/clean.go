// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"regexp"
	"sort"
	"strings"
)

// MaxAbstractLen is the rune count abstracts are truncated to.
const MaxAbstractLen = 500

// Ellipsis marks a truncated abstract.
const Ellipsis = "..."

// tagPattern matches HTML and JATS-style markup tags (e.g. <b>, </jats:p>).
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// CleanAbstract normalizes raw abstract text: markup tags are stripped,
// whitespace runs collapse to single spaces, and text longer than
// MaxAbstractLen runes is truncated with a trailing ellipsis. The result of
// cleaning twice equals cleaning once. Empty or sentinel input yields "".
func CleanAbstract(s string) string {
	if s == "" || s == "N/A" {
		return ""
	}

	clean := tagPattern.ReplaceAllString(s, "")
	clean = strings.Join(strings.Fields(clean), " ")

	if r := []rune(clean); len(r) > MaxAbstractLen {
		clean = string(r[:MaxAbstractLen]) + Ellipsis
	}
	return clean
}

// ReconstructAbstract converts an OpenAlex-style inverted index back to
// plain text. The index maps each word to the positions where it appears;
// flattening to (position, word) pairs and sorting ascending recovers the
// original word order. An empty or nil index yields "".
func ReconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}
