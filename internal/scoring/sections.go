package scoring

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxSectionBytes = 500
	maxProjects     = 8
	maxHackathons   = 5
	maxEducation    = 3
)

var projectSplitter = regexp.MustCompile(`[\n•-]`)

// extractSection returns the text from the first case-insensitive occurrence of name
// up to the next blank line, or at most maxSectionBytes when no blank line follows.
// Returns "" when name does not occur. The result keeps the original casing.
func extractSection(text, name string) string {
	lower, offsets := lowerWithOffsets(text)

	at := strings.Index(lower, strings.ToLower(name))
	if at < 0 {
		return ""
	}
	start := offsets[at]

	var end int
	if blank := strings.Index(lower[at:], "\n\n"); blank >= 0 {
		end = offsets[at+blank]
	} else {
		end = min(start+maxSectionBytes, len(text))
		for end < len(text) && end > start && !utf8.RuneStart(text[end]) {
			end--
		}
	}
	return text[start:end]
}

// lowerWithOffsets lowercases s rune by rune. offsets[i] is the byte offset in s of the
// rune that produced byte i of the result, and offsets[len(result)] is len(s).
func lowerWithOffsets(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)
	for i, r := range s {
		n, _ := b.WriteRune(unicode.ToLower(r))
		for range n {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(s))
	return b.String(), offsets
}

// extractProjects splits the projects section into description-sized fragments
func extractProjects(section string) []string {
	projects := []string{}
	if section == "" {
		return projects
	}
	for _, part := range projectSplitter.Split(section, -1) {
		part = strings.TrimSpace(part)
		n := utf8.RuneCountInString(part)
		if n > 20 && n < 200 {
			projects = append(projects, part)
			if len(projects) == maxProjects {
				break
			}
		}
	}
	return projects
}

// extractHackathons returns lines mentioning a hackathon
func extractHackathons(text string) []string {
	hackathons := []string{}
	if !strings.Contains(strings.ToLower(text), "hackathon") {
		return hackathons
	}
	for _, line := range strings.Split(text, "\n") {
		n := utf8.RuneCountInString(line)
		if n <= 10 || n >= 150 || !strings.Contains(strings.ToLower(line), "hackathon") {
			continue
		}
		hackathons = append(hackathons, strings.TrimSpace(line))
		if len(hackathons) == maxHackathons {
			break
		}
	}
	return hackathons
}

// extractEducation names the degrees mentioned in the education section. A section
// that names none yields the generic "Degree".
func extractEducation(section string) []string {
	if section == "" {
		return []string{}
	}
	lower := strings.ToLower(section)

	var degrees []string
	add := func(label string) {
		for _, d := range degrees {
			if d == label {
				return
			}
		}
		degrees = append(degrees, label)
	}

	if strings.Contains(lower, "mca") {
		add("MCA - Master of Computer Applications")
	}
	if strings.Contains(lower, "bca") {
		add("BCA - Bachelor of Computer Applications")
	}
	if strings.Contains(lower, "b.tech") || strings.Contains(lower, "btech") {
		if strings.Contains(lower, "computer science") {
			add("B.Tech Computer Science")
		} else {
			add("B.Tech Engineering")
		}
	}
	if strings.Contains(lower, "bachelor") && strings.Contains(lower, "computer") {
		add("Bachelor of Computer Science")
	}
	if strings.Contains(lower, "master") && strings.Contains(lower, "computer") {
		add("Master of Computer Science")
	}
	if strings.Contains(lower, "mba") {
		add("MBA - Master of Business Administration")
	}

	if len(degrees) == 0 {
		return []string{"Degree"}
	}
	if len(degrees) > maxEducation {
		degrees = degrees[:maxEducation]
	}
	return degrees
}
