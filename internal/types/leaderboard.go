//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// UnknownCandidate is the display name used when no name could be found
const UnknownCandidate = "Unknown Candidate"

// JobDescription is the optional target role a leaderboard was scored against
type JobDescription struct {
	Title    string `json:"title"`
	FileName string `json:"file_name,omitempty"`
	Text     string `json:"text"`
}

// LeaderboardEntry is one scored candidate. RankPosition is zero until the whole
// leaderboard has been ranked; Score is nil when no score was produced. InputIndex is
// the résumé's position in the batch request.
type LeaderboardEntry struct {
	ID            uuid.UUID       `json:"id"`
	LeaderboardID uuid.UUID       `json:"leaderboard_id"`
	CandidateName string          `json:"candidate_name"`
	FileName      string          `json:"file_name,omitempty"`
	InputIndex    int             `json:"input_index"`
	Score         *ScoreBreakdown `json:"score,omitempty"`
	RankPosition  int             `json:"rank_position,omitempty"`
	Favorite      bool            `json:"favorite"`
	Notes         string          `json:"notes,omitempty"`

	// Display projections of the analysis
	Skills          string   `json:"skills"`
	Experience      string   `json:"experience"`
	Projects        string   `json:"projects"`
	Hackathons      string   `json:"hackathons"`
	MissingSkills   []string `json:"missing_skills,omitempty"`
	ExperienceYears int      `json:"experience_years"`

	CreatedAt time.Time `json:"created_at"`
}

// Overall returns the composite score and whether one is set
func (e *LeaderboardEntry) Overall() (float64, bool) {
	if e.Score == nil {
		return 0, false
	}
	return e.Score.Overall, true
}

// Leaderboard is the ranked result of one batch run. Entries belong to exactly one
// leaderboard and are deleted with it.
type Leaderboard struct {
	ID             uuid.UUID          `json:"id"`
	OwnerID        uuid.UUID          `json:"owner_id"`
	JobDescription *JobDescription    `json:"job_description,omitempty"`
	Entries        []LeaderboardEntry `json:"entries"`
	CreatedAt      time.Time          `json:"created_at"`
}

// LeaderboardSummary is a listing row without entries
type LeaderboardSummary struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	JDTitle    string    `json:"jd_title,omitempty"`
	EntryCount int       `json:"entry_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// CandidateReport is the detailed view of one leaderboard entry
type CandidateReport struct {
	CandidateName        string          `json:"candidate_name"`
	RankPosition         int             `json:"rank_position"`
	Score                *ScoreBreakdown `json:"score,omitempty"`
	MatchLevel           string          `json:"match_level"`
	Skills               []string        `json:"skills"`
	MissingSkills        []string        `json:"missing_skills"`
	TopSkillCategory     string          `json:"top_skill_category"`
	ExperienceLevel      string          `json:"experience_level"`
	ExperienceYears      int             `json:"experience_years"`
	Projects             []string        `json:"projects"`
	Hackathons           []string        `json:"hackathons"`
	HiringRecommendation string          `json:"hiring_recommendation"`
	Notes                string          `json:"notes"`
	Favorite             bool            `json:"favorite"`
}
