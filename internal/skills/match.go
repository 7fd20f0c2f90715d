package skills

import "strings"

// Match compares résumé skills with job-description skills. A résumé skill is matched
// when the JD holds it exactly or either label contains the other ("Java" matches
// "Java 17"). A JD skill is missing when no résumé skill equals or contains it.
// Both results keep the order of their input slice.
func Match(resumeSkills, jdSkills []string) (matched, missing []string) {
	resumeLower := Lower(resumeSkills)
	jdLower := Lower(jdSkills)

	jdSet := make(map[string]bool, len(jdLower))
	for _, s := range jdLower {
		jdSet[s] = true
	}
	resumeSet := make(map[string]bool, len(resumeLower))
	for _, s := range resumeLower {
		resumeSet[s] = true
	}

	matched = []string{}
	for i, skill := range resumeLower {
		if jdSet[skill] || anyContains(jdLower, skill) {
			matched = append(matched, resumeSkills[i])
		}
	}

	missing = []string{}
	for i, skill := range jdLower {
		if resumeSet[skill] {
			continue
		}
		covered := false
		for _, r := range resumeLower {
			if strings.Contains(r, skill) {
				covered = true
				break
			}
		}
		if !covered {
			missing = append(missing, jdSkills[i])
		}
	}
	return matched, missing
}

// anyContains reports whether any label in list contains skill or is contained by it
func anyContains(list []string, skill string) bool {
	for _, other := range list {
		if strings.Contains(other, skill) || strings.Contains(skill, other) {
			return true
		}
	}
	return false
}
