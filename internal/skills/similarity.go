package skills

import (
	"strings"
	"unicode/utf8"
)

// stopWords are function words plus generic résumé filler that carry no signal
var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true, "on": true, "at": true,
	"to": true, "for": true, "of": true, "with": true, "by": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true, "could": true,
	"should": true, "may": true, "might": true,
	"this": true, "that": true, "these": true, "those": true, "i": true, "you": true, "he": true,
	"she": true, "it": true, "we": true, "they": true,
	"me": true, "him": true, "her": true, "us": true, "them": true, "my": true, "your": true,
	"his": true, "its": true, "our": true, "their": true,
	"experience": true, "skills": true, "knowledge": true, "ability": true, "expertise": true,
	"proficiency": true,
	"strong": true, "excellent": true, "good": true, "great": true, "high": true, "low": true,
	"basic": true, "advanced": true,
	"required": true, "preferred": true, "necessary": true, "essential": true, "important": true,
	"key": true, "work": true,
	"working": true, "worked": true, "project": true, "projects": true, "developed": true,
	"development": true, "using": true,
	"used": true, "including": true, "include": true, "such": true, "as": true, "well": true,
	"also": true, "various": true, "multiple": true,
}

// Similarity is the Jaccard index of the content-word sets of a and b, in [0,1].
// It is symmetric and returns 0 when either text is empty.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	setA := contentWords(a)
	setB := contentWords(b)

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// contentWords lowercases and splits on whitespace, keeping tokens longer than two
// characters that are not stop words.
func contentWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(w) <= 2 || stopWords[w] {
			continue
		}
		words[w] = true
	}
	return words
}

// IsStopWord reports whether w is ignored by Similarity
func IsStopWord(w string) bool {
	return stopWords[strings.ToLower(w)]
}
