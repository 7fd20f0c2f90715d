// Package types provides the value types shared by the scoring, batch and leaderboard packages.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "math"

// Composite weights. Overall is always derived from the components with these weights,
// so a stored breakdown can be re-audited.
const (
	WeightSkills     = 0.35
	WeightExperience = 0.35
	WeightProjects   = 0.20
	WeightEducation  = 0.10

	// With a job description: overall = WeightBase*base + WeightJDMatch*(percent/100)
	WeightBase    = 0.6
	WeightJDMatch = 0.4
)

// ScoreBreakdown is the per-component scoring of one résumé. Build it with
// NewScoreBreakdown / WithJDMatch rather than setting Overall directly.
type ScoreBreakdown struct {
	Skills         float64  `json:"skills"`
	Experience     float64  `json:"experience"`
	Education      float64  `json:"education"`
	Projects       float64  `json:"projects"`
	Overall        float64  `json:"overall"`
	JDMatchPercent *float64 `json:"jd_match_percent,omitempty"`
	// Overridden marks an Overall set by hand; Recompute no longer reproduces it
	Overridden     bool     `json:"overridden,omitempty"`
}

// NewScoreBreakdown clamps each component to [0,1] and derives Overall without a JD.
func NewScoreBreakdown(skills, experience, education, projects float64) ScoreBreakdown {
	b := ScoreBreakdown{
		Skills:     Clamp01(skills),
		Experience: Clamp01(experience),
		Education:  Clamp01(education),
		Projects:   Clamp01(projects),
	}
	b.Overall = b.BaseOverall()
	return b
}

// WithJDMatch returns a copy carrying the JD match percentage (clamped to [0,100])
// with Overall re-derived from the base blend and the match.
func (b ScoreBreakdown) WithJDMatch(percent float64) ScoreBreakdown {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	out := b
	out.JDMatchPercent = &percent
	out.Overall = out.Recompute()
	return out
}

// BaseOverall is the weighted component sum ignoring any JD match
func (b ScoreBreakdown) BaseOverall() float64 {
	return Clamp01(WeightSkills*b.Skills +
		WeightExperience*b.Experience +
		WeightProjects*b.Projects +
		WeightEducation*b.Education)
}

// Recompute derives Overall from the components and JD match, for auditing stored values
func (b ScoreBreakdown) Recompute() float64 {
	base := b.BaseOverall()
	if b.JDMatchPercent == nil {
		return base
	}
	return Clamp01(WeightBase*base + WeightJDMatch*(*b.JDMatchPercent/100))
}

// Consistent reports whether Overall is the value Recompute derives from the components
func (b ScoreBreakdown) Consistent() bool {
	return math.Abs(b.Overall-b.Recompute()) < 1e-9
}

// Clamp01 bounds v to [0,1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ExperienceLevel classifies a candidate's seniority
type ExperienceLevel string

// Experience levels
const (
	LevelStudentIntern   ExperienceLevel = "Student (Internship Experience)"
	LevelStudent         ExperienceLevel = "Student"
	LevelFresherProjects ExperienceLevel = "Fresher (Project Experience)"
	LevelFresher         ExperienceLevel = "Fresher"
	LevelSeniorLeader    ExperienceLevel = "Senior (Leadership Level)"
	LevelSenior          ExperienceLevel = "Senior"
	LevelMid             ExperienceLevel = "Mid-Level"
	LevelJunior          ExperienceLevel = "Junior"
	LevelEntry           ExperienceLevel = "Entry Level"
)

// IsStudentOrFresher reports whether the level describes someone without employment
func (l ExperienceLevel) IsStudentOrFresher() bool {
	switch l {
	case LevelStudentIntern, LevelStudent, LevelFresherProjects, LevelFresher:
		return true
	}
	return false
}

// CandidateProfile is everything derived from the résumé text about the candidate
type CandidateProfile struct {
	Name            string          `json:"name"`
	Skills          []string        `json:"skills"`
	Projects        []string        `json:"projects"`
	Hackathons      []string        `json:"hackathons"`
	Education       []string        `json:"education"`
	ExperienceYears int             `json:"experience_years"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
}

// Analysis is the full result of scoring one résumé, optionally against a JD
type Analysis struct {
	Breakdown     ScoreBreakdown   `json:"breakdown"`
	Profile       CandidateProfile `json:"profile"`
	HasJD         bool             `json:"has_jd"`
	MatchedSkills []string         `json:"matched_skills"`
	MissingSkills []string         `json:"missing_skills"`
	Strength      string           `json:"strength"`
	Weakness      string           `json:"weakness"`
	Suggestions   []string         `json:"suggestions"`
	FitAssessment string           `json:"fit_assessment"`

	SkillsSection     string `json:"-"`
	ExperienceSection string `json:"-"`
	ProjectsSection   string `json:"-"`
	EducationSection  string `json:"-"`
}
