// Package taxonomy holds the categorized reference vocabulary of known skill terms.
// A Taxonomy is immutable after construction and safe for concurrent reads.
package taxonomy

import (
	"fmt"
	"sort"
	"strings"
)

// Category tags a skill term with the area it belongs to
type Category string

// Skill categories
const (
	Programming       Category = "Programming"
	Frameworks        Category = "Frameworks"
	Database          Category = "Database"
	Cloud             Category = "Cloud"
	DataScience       Category = "DataScience"
	Mobile            Category = "Mobile"
	Testing           Category = "Testing"
	DevOps            Category = "DevOps"
	Design            Category = "Design"
	ProjectManagement Category = "ProjectManagement"
	Security          Category = "Security"
)

// AllCategories lists categories in display order
var AllCategories = []Category{
	Programming, Frameworks, Database, Cloud, DataScience, Mobile,
	Testing, DevOps, Design, ProjectManagement, Security,
}

// Entry is one canonical term with its category
type Entry struct {
	Term     string
	Category Category
}

// Taxonomy is the union of all category lists plus the abbreviation table.
type Taxonomy struct {
	terms      map[string][]Category
	byCategory map[Category][]string
	multiWord  []string
	aliases    []Alias
}

// Alias maps an abbreviation to the canonical term it stands for
type Alias struct {
	Key    string
	Target string
}

// New builds a Taxonomy from per-category term lists and an alias table.
// Terms must be lowercase, non-empty and unique within their category.
func New(lists map[Category][]string, aliases map[string]string) (*Taxonomy, error) {
	t := &Taxonomy{
		terms:      make(map[string][]Category),
		byCategory: make(map[Category][]string, len(lists)),
	}

	for category, terms := range lists {
		seen := make(map[string]bool, len(terms))
		list := make([]string, 0, len(terms))
		for _, term := range terms {
			if term == "" || strings.TrimSpace(term) != term {
				return nil, fmt.Errorf("taxonomy: invalid term %q in category %s", term, category)
			}
			if term != strings.ToLower(term) {
				return nil, fmt.Errorf("taxonomy: term %q in category %s is not lowercase", term, category)
			}
			if seen[term] {
				return nil, fmt.Errorf("taxonomy: duplicate term %q in category %s", term, category)
			}
			seen[term] = true
			list = append(list, term)
			t.terms[term] = append(t.terms[term], category)
		}
		sort.Strings(list)
		t.byCategory[category] = list
	}

	for term, categories := range t.terms {
		sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
		if strings.Contains(term, " ") {
			t.multiWord = append(t.multiWord, term)
		}
	}
	sort.Strings(t.multiWord)

	for key, target := range aliases {
		if key == "" || target == "" {
			return nil, fmt.Errorf("taxonomy: empty alias %q -> %q", key, target)
		}
		t.aliases = append(t.aliases, Alias{Key: strings.ToLower(key), Target: strings.ToLower(target)})
	}
	sort.Slice(t.aliases, func(i, j int) bool { return t.aliases[i].Key < t.aliases[j].Key })

	return t, nil
}

// Contains reports whether term (lowercase) is a known skill
func (t *Taxonomy) Contains(term string) bool {
	_, ok := t.terms[term]
	return ok
}

// CategoriesOf returns the categories a term belongs to, sorted by name
func (t *Taxonomy) CategoriesOf(term string) []Category {
	categories := t.terms[strings.ToLower(term)]
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Terms returns the sorted term list of one category
func (t *Taxonomy) Terms(category Category) []string {
	terms := t.byCategory[category]
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

// MultiWordTerms returns every term containing a space, sorted.
// The slice is shared and must not be modified.
func (t *Taxonomy) MultiWordTerms() []string {
	return t.multiWord
}

// Aliases returns the abbreviation table sorted by key. The slice is shared.
func (t *Taxonomy) Aliases() []Alias {
	return t.aliases
}

// Size is the number of distinct terms across all categories
func (t *Taxonomy) Size() int {
	return len(t.terms)
}
