package scoring

import "strings"

var (
	advancedSkills = []string{"kubernetes", "docker", "aws", "azure", "microservices", "system design"}
	frontendHints  = []string{"react", "angular", "vue", "html"}
	backendHints   = []string{"spring", "express", "django", "flask"}
	databaseHints  = []string{"sql", "mysql", "postgresql", "mongodb"}

	projectIndicators = []string{"project", "developed", "built", "created", "implemented"}
	modernTech        = []string{"react", "node", "python", "java", "spring", "docker", "aws", "mongodb", "postgresql"}
)

// skillsScore buckets the number of extracted skills and adds bonuses for in-demand
// skills and for covering several layers of the stack.
func skillsScore(skills []string) float64 {
	if len(skills) == 0 {
		return 0.10
	}

	var score float64
	switch n := len(skills); {
	case n >= 20:
		score = 0.85
	case n >= 15:
		score = 0.75
	case n >= 10:
		score = 0.60
	case n >= 5:
		score = 0.45
	case n >= 3:
		score = 0.30
	default:
		score = 0.15
	}

	lower := make(map[string]bool, len(skills))
	for _, s := range skills {
		lower[strings.ToLower(s)] = true
	}

	for _, s := range advancedSkills {
		if lower[s] {
			score += 0.10
			break
		}
	}

	frontend := anySkillContains(lower, frontendHints)
	backend := anySkillContains(lower, backendHints)
	database := anySkillContains(lower, databaseHints)
	switch {
	case frontend && backend && database:
		score += 0.10
	case (frontend && backend) || (backend && database):
		score += 0.05
	}

	return min(1.0, score)
}

func anySkillContains(skills map[string]bool, hints []string) bool {
	for s := range skills {
		if containsAny(s, hints) {
			return true
		}
	}
	return false
}

// experienceScore buckets estimated years and adds the strongest responsibility bonus found
func experienceScore(years int, text string) float64 {
	var score float64
	switch {
	case years <= 0:
		score = 0
	case years <= 1:
		score = 0.25
	case years <= 3:
		score = 0.50
	case years <= 6:
		score = 0.70
	case years <= 10:
		score = 0.85
	default:
		score = 0.95
	}

	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, []string{"architect", "principal", "director"}):
		score += 0.15
	case containsAny(lower, []string{"senior", "lead", "manager"}):
		score += 0.10
	case containsAny(lower, []string{"mentoring", "team", "coordinate"}):
		score += 0.05
	}

	return min(1.0, score)
}

// educationScore scores the highest degree mentioned plus a computing-field bonus
func educationScore(text string) float64 {
	lower := strings.ToLower(text)

	var score float64
	switch {
	case containsAny(lower, []string{"phd", "doctorate"}):
		score = 0.9
	case containsAny(lower, []string{"master", "mba"}):
		score = 0.7
	case containsAny(lower, []string{"bachelor", "b.tech", "b.e"}):
		score = 0.6
	case strings.Contains(lower, "diploma"):
		score = 0.4
	}

	if containsAny(lower, []string{"computer", "software", "engineering", "technology"}) {
		score += 0.1
	}

	return min(1.0, score)
}

// projectsScore rates the projects section by indicator-word count, domain complexity
// and breadth of modern technologies mentioned.
func projectsScore(section string) float64 {
	if section == "" {
		return 0.10
	}
	lower := strings.ToLower(section)

	count := 0
	for _, word := range projectIndicators {
		count += strings.Count(lower, word)
	}

	var score float64
	switch {
	case count >= 8:
		score = 0.85
	case count >= 5:
		score = 0.70
	case count >= 3:
		score = 0.55
	case count >= 1:
		score = 0.35
	default:
		score = 0.15
	}

	switch {
	case containsAny(lower, []string{"machine learning", "ai", "blockchain", "microservices"}):
		score += 0.15
	case containsAny(lower, []string{"api", "database", "authentication", "deployment"}):
		score += 0.10
	case containsAny(lower, []string{"responsive", "crud", "frontend", "backend"}):
		score += 0.05
	}

	tech := 0
	for _, t := range modernTech {
		if strings.Contains(lower, t) {
			tech++
		}
	}
	switch {
	case tech >= 5:
		score += 0.10
	case tech >= 3:
		score += 0.05
	}

	return min(1.0, score)
}
