// Package skills extracts known skills from free text and compares texts lexically.
package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-ranker/internal/taxonomy"
)

var (
	nonLetters     = regexp.MustCompile(`[^a-zA-Z]`)
	versionedSkill = regexp.MustCompile(`\b(\w+)\s+\d+(?:\.\d+)*\b`)
)

// Extractor finds taxonomy skills in text. It holds no mutable state and can be
// shared between goroutines.
type Extractor struct {
	tax *taxonomy.Taxonomy
}

// NewExtractor creates an Extractor over tax; nil selects the built-in taxonomy.
func NewExtractor(tax *taxonomy.Taxonomy) *Extractor {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &Extractor{tax: tax}
}

// Taxonomy returns the vocabulary the extractor matches against
func (e *Extractor) Taxonomy() *taxonomy.Taxonomy {
	return e.tax
}

// Extract returns the sorted, de-duplicated display labels of every taxonomy skill
// found in text. Blank input yields an empty slice.
func (e *Extractor) Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	normalized := strings.ToLower(text)
	found := make(map[string]struct{})

	e.matchMultiWord(normalized, found)
	e.matchSingleWord(normalized, found)
	e.matchVersioned(normalized, found)
	e.matchAliases(normalized, found)

	labels := make([]string, 0, len(found))
	for term := range found {
		label := FormatLabel(term)
		if utf8.RuneCountInString(label) < 2 {
			continue
		}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return dedupeSorted(labels)
}

func (e *Extractor) matchMultiWord(text string, found map[string]struct{}) {
	for _, term := range e.tax.MultiWordTerms() {
		if strings.Contains(text, term) {
			found[term] = struct{}{}
		}
	}
}

func (e *Extractor) matchSingleWord(text string, found map[string]struct{}) {
	for _, word := range strings.Fields(text) {
		clean := nonLetters.ReplaceAllString(word, "")
		if clean != "" && e.tax.Contains(clean) {
			found[clean] = struct{}{}
		}
	}
}

// matchVersioned records the word part of "java 8" / "python 3.11" style mentions
func (e *Extractor) matchVersioned(text string, found map[string]struct{}) {
	for _, m := range versionedSkill.FindAllStringSubmatch(text, -1) {
		if e.tax.Contains(m[1]) {
			found[m[1]] = struct{}{}
		}
	}
}

func (e *Extractor) matchAliases(text string, found map[string]struct{}) {
	for _, alias := range e.tax.Aliases() {
		if strings.Contains(text, alias.Key) {
			found[alias.Target] = struct{}{}
		}
	}
}

// FormatLabel renders a canonical term for display: first letter of each word upper,
// the rest lower ("spring boot" -> "Spring Boot").
func FormatLabel(term string) string {
	words := strings.Fields(term)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// dedupeSorted drops adjacent duplicates; two terms can share a label after formatting
func dedupeSorted(labels []string) []string {
	if len(labels) < 2 {
		return labels
	}
	out := labels[:1]
	for _, l := range labels[1:] {
		if l != out[len(out)-1] {
			out = append(out, l)
		}
	}
	return out
}

// Lower returns the lowercase form of each label, preserving order
func Lower(labels []string) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = strings.ToLower(l)
	}
	return out
}
