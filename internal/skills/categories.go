package skills

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-ranker/internal/taxonomy"
)

// Report groupings, checked in order; the first pattern a skill contains wins
var reportGroups = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"Programming Languages", regexp.MustCompile(`java|python|javascript|c\+\+|c#|go|rust|php|ruby`)},
	{"Frameworks", regexp.MustCompile(`react|angular|vue|spring|django|express`)},
	{"Cloud & DevOps", regexp.MustCompile(`aws|azure|docker|kubernetes|jenkins`)},
	{"Databases", regexp.MustCompile(`mysql|postgresql|mongodb|redis|oracle`)},
}

const (
	otherGroup   = "Tools & Technologies"
	generalGroup = "General"
)

// TopCategory names the report grouping holding most of the given skills.
// Ties go to the grouping listed first; no skills yields "General".
func TopCategory(skills []string) string {
	if len(skills) == 0 {
		return generalGroup
	}

	counts := make(map[string]int)
	for _, skill := range skills {
		lower := strings.ToLower(skill)
		group := otherGroup
		for _, g := range reportGroups {
			if g.pattern.MatchString(lower) {
				group = g.name
				break
			}
		}
		counts[group]++
	}

	best, bestCount := generalGroup, 0
	for _, g := range reportGroups {
		if counts[g.name] > bestCount {
			best, bestCount = g.name, counts[g.name]
		}
	}
	if counts[otherGroup] > bestCount {
		best = otherGroup
	}
	return best
}

// CategoryCounts counts how many labels fall in each taxonomy category. A label in
// two categories counts for both.
func CategoryCounts(tax *taxonomy.Taxonomy, labels []string) map[taxonomy.Category]int {
	counts := make(map[taxonomy.Category]int, len(taxonomy.AllCategories))
	for _, c := range taxonomy.AllCategories {
		counts[c] = 0
	}
	for _, label := range labels {
		for _, c := range tax.CategoriesOf(label) {
			counts[c]++
		}
	}
	return counts
}
