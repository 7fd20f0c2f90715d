// Package names detects a candidate's display name in résumé text.
package names

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-ranker/internal/types"
)

const (
	headerLines   = 5
	maxHeaderLine = 60
)

var (
	headerWords      = regexp.MustCompile(`(?i)\b(r[eé]sum[eé]|cv|curriculum vitae)\b`)
	decorativeEdges  = regexp.MustCompile(`^[\s\-_=|*•]+|[\s\-_=|*•]+$`)
	nameWord         = regexp.MustCompile(`^[A-Z][a-z]{1,15}$`)
	labeledName      = regexp.MustCompile(`(?i:name|candidate|applicant)[:\s]+([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,3})`)
	standaloneName   = regexp.MustCompile(`(?m)^[ \t]*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,3})[ \t]*$`)
	emailAddress     = regexp.MustCompile(`([A-Za-z0-9._%+\-]+)@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)*\.[A-Za-z]{2,}`)
	nonLetterRunes   = regexp.MustCompile(`[^A-Za-z]`)
	excludedKeywords = []string{
		"resume", "curriculum", "vitae", "profile", "contact", "address", "phone", "email", "objective", "summary",
	}
)

// Extract returns the candidate name found in text, or types.UnknownCandidate.
// Strategies run in order and the first valid hit wins: the first few header lines,
// labeled fields such as "Name: Jane Doe", a capitalized line standing on its own,
// then the local part of the first e-mail address.
func Extract(text string) string {
	if name := fromHeader(text); name != "" {
		return name
	}
	if name := fromLabels(text); name != "" {
		return name
	}
	if name := fromEmail(text); name != "" {
		return name
	}
	return types.UnknownCandidate
}

func fromHeader(text string) string {
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines) && i < headerLines; i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || utf8.RuneCountInString(line) >= maxHeaderLine {
			continue
		}
		line = strings.TrimSpace(headerWords.ReplaceAllString(line, ""))
		line = decorativeEdges.ReplaceAllString(line, "")
		if IsValidName(line) {
			return line
		}
	}
	return ""
}

func fromLabels(text string) string {
	for _, re := range []*regexp.Regexp{labeledName, standaloneName} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if name := strings.TrimSpace(m[1]); IsValidName(name) {
				return name
			}
		}
	}
	return ""
}

func fromEmail(text string) string {
	m := emailAddress.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	var parts []string
	for _, seg := range strings.Split(m[1], ".") {
		if seg = nonLetterRunes.ReplaceAllString(seg, ""); seg != "" {
			parts = append(parts, capitalize(seg))
		}
	}
	if len(parts) < 2 {
		return ""
	}
	return parts[0] + " " + parts[1]
}

// IsValidName reports whether s looks like a personal name: 3 to 50 characters, two to
// four capitalized alphabetic words, and none of the usual résumé heading keywords.
func IsValidName(s string) bool {
	n := utf8.RuneCountInString(s)
	if n < 3 || n > 50 {
		return false
	}
	words := strings.Fields(s)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if !nameWord.MatchString(w) {
			return false
		}
	}
	lower := strings.ToLower(s)
	for _, kw := range excludedKeywords {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}
