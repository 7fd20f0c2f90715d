package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Component labels used in strength/weakness reporting
const (
	areaSkills     = "Technical Skills"
	areaExperience = "Professional Experience"
	areaProjects   = "Project Portfolio"
	areaEducation  = "Educational Background"
)

// Match levels, shared by every place a percentage is shown
const (
	LevelExcellent = "Excellent"
	LevelGood      = "Good"
	LevelFair      = "Fair"
	LevelPoor      = "Poor"
)

// MatchLevel labels a percentage in [0,100]
func MatchLevel(percent float64) string {
	switch {
	case percent >= 80:
		return LevelExcellent
	case percent >= 60:
		return LevelGood
	case percent >= 40:
		return LevelFair
	default:
		return LevelPoor
	}
}

// FitAssessment describes how well the JD match percentage fits the role
func FitAssessment(jdMatchPercent float64) string {
	switch MatchLevel(jdMatchPercent) {
	case LevelExcellent:
		return "Excellent fit for the role"
	case LevelGood:
		return "Good fit with some areas for development"
	case LevelFair:
		return "Moderate fit, may need additional training"
	default:
		return "Limited fit, significant skill gap"
	}
}

// HiringRecommendation uses the JD match when one is known, otherwise the overall score
func HiringRecommendation(b types.ScoreBreakdown) string {
	score := b.Overall
	if b.JDMatchPercent != nil && *b.JDMatchPercent > 0 {
		score = *b.JDMatchPercent / 100
	}
	switch {
	case score >= 0.8:
		return "HIGHLY RECOMMENDED - Excellent fit, proceed with interview"
	case score >= 0.6:
		return "RECOMMENDED - Good candidate, consider for interview"
	case score >= 0.4:
		return "CONDITIONAL - May need additional screening or training"
	default:
		return "NOT RECOMMENDED - Significant gaps in requirements"
	}
}

type area struct {
	name  string
	score float64
}

func areas(b types.ScoreBreakdown) []area {
	return []area{
		{areaSkills, b.Skills},
		{areaExperience, b.Experience},
		{areaProjects, b.Projects},
		{areaEducation, b.Education},
	}
}

// strength names the highest-scoring component; earlier components win ties
func strength(b types.ScoreBreakdown) string {
	best := areas(b)[0]
	for _, a := range areas(b)[1:] {
		if a.score > best.score {
			best = a
		}
	}
	return best.name
}

// weakness names the lowest-scoring component; earlier components win ties
func weakness(b types.ScoreBreakdown) string {
	worst := areas(b)[0]
	for _, a := range areas(b)[1:] {
		if a.score < worst.score {
			worst = a
		}
	}
	return worst.name
}

func improvements(b types.ScoreBreakdown) []string {
	out := []string{}
	if b.Skills < 0.6 {
		out = append(out, "Consider highlighting more technical skills and certifications")
	}
	if b.Experience < 0.6 {
		out = append(out, "Emphasize leadership roles and career progression")
	}
	if b.Projects < 0.6 {
		out = append(out, "Add more detailed project descriptions with technologies used")
	}
	return out
}

func jdSuggestions(matched, missing []string) []string {
	out := []string{}
	if len(matched) > 0 {
		out = append(out, fmt.Sprintf("Strong match with %d required skills", len(matched)))
	}
	switch {
	case len(missing) > 3:
		out = append(out, "Consider gaining experience in key missing skills")
	case len(missing) > 0:
		out = append(out, "Consider gaining experience in: "+strings.Join(missing, ", "))
	}
	return out
}

// fallbackSuggestions backs the detailed analysis when no enrichment is available
func fallbackSuggestions(missing []string, score float64) []string {
	var out []string
	switch {
	case score >= 0.7:
		out = append(out,
			"Your profile is strong! Focus on tailoring your resume to highlight relevant achievements",
			"Add specific metrics and quantifiable results to strengthen your impact statements",
			"Consider obtaining recommendations or endorsements for your key skills")
	case score >= 0.5:
		out = append(out,
			"Work on acquiring the missing skills through online courses or certifications",
			"Emphasize transferable skills that demonstrate your potential",
			"Add relevant side projects or volunteer work to showcase your abilities",
			"Network with industry professionals to learn about opportunities")
	default:
		out = append(out,
			"Consider additional training or education to bridge the skill gap",
			"Look for entry-level positions that offer learning and growth opportunities",
			"Build a portfolio of projects that demonstrate your commitment to learning",
			"Seek mentorship or career guidance to develop a strategic plan")
	}

	if len(missing) > 0 {
		out = append(out, "Focus on developing these critical skills: "+strings.Join(missing[:min(5, len(missing))], ", "))
		if len(missing) > 5 {
			out = append(out, "Prioritize the most important skills first and create a learning timeline")
		}
	}

	return append(out,
		"Regularly update your resume to reflect your latest skills and experiences",
		"Practice interviewing and articulating your value proposition clearly")
}
