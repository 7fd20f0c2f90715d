package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/types"
)

// entryOrder is the Store ordering: ranked entries by position, unranked last, ties by input index
const entryOrder = `ORDER BY (rank_position = 0), rank_position, input_index`

// entryRow is the column layout shared by the PostgreSQL and SQLite stores. Score
// columns are NULL together when an entry has no score.
type entryRow struct {
	ID              uuid.UUID
	LeaderboardID   uuid.UUID
	CandidateName   string
	FileName        string
	InputIndex      int
	SkillsScore     *float64
	ExperienceScore *float64
	EducationScore  *float64
	ProjectsScore   *float64
	OverallScore    *float64
	JDMatchPercent  *float64
	ScoreOverridden bool
	RankPosition    int
	Favorite        bool
	Notes           string
	Skills          string
	Experience      string
	Projects        string
	Hackathons      string
	MissingSkills   []string
	ExperienceYears int
	CreatedAt       time.Time
}

func rowFromEntry(e *types.LeaderboardEntry) entryRow {
	r := entryRow{
		ID:              e.ID,
		LeaderboardID:   e.LeaderboardID,
		CandidateName:   e.CandidateName,
		FileName:        e.FileName,
		InputIndex:      e.InputIndex,
		RankPosition:    e.RankPosition,
		Favorite:        e.Favorite,
		Notes:           e.Notes,
		Skills:          e.Skills,
		Experience:      e.Experience,
		Projects:        e.Projects,
		Hackathons:      e.Hackathons,
		MissingSkills:   e.MissingSkills,
		ExperienceYears: e.ExperienceYears,
		CreatedAt:       e.CreatedAt,
	}
	if r.MissingSkills == nil {
		r.MissingSkills = []string{}
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if s := e.Score; s != nil {
		r.SkillsScore = ptr(s.Skills)
		r.ExperienceScore = ptr(s.Experience)
		r.EducationScore = ptr(s.Education)
		r.ProjectsScore = ptr(s.Projects)
		r.OverallScore = ptr(s.Overall)
		r.ScoreOverridden = s.Overridden
		if s.JDMatchPercent != nil {
			r.JDMatchPercent = ptr(*s.JDMatchPercent)
		}
	}
	return r
}

func (r *entryRow) toEntry() types.LeaderboardEntry {
	e := types.LeaderboardEntry{
		ID:              r.ID,
		LeaderboardID:   r.LeaderboardID,
		CandidateName:   r.CandidateName,
		FileName:        r.FileName,
		InputIndex:      r.InputIndex,
		RankPosition:    r.RankPosition,
		Favorite:        r.Favorite,
		Notes:           r.Notes,
		Skills:          r.Skills,
		Experience:      r.Experience,
		Projects:        r.Projects,
		Hackathons:      r.Hackathons,
		ExperienceYears: r.ExperienceYears,
		CreatedAt:       r.CreatedAt,
	}
	if len(r.MissingSkills) > 0 {
		e.MissingSkills = r.MissingSkills
	}
	if r.OverallScore != nil {
		// stored components are used as-is so hand overrides survive a round trip
		e.Score = &types.ScoreBreakdown{
			Skills:         deref(r.SkillsScore),
			Experience:     deref(r.ExperienceScore),
			Education:      deref(r.EducationScore),
			Projects:       deref(r.ProjectsScore),
			Overall:        *r.OverallScore,
			JDMatchPercent: r.JDMatchPercent,
			Overridden:     r.ScoreOverridden,
		}
	}
	return e
}

// leaderboardRow is the header of a leaderboard without entries
type leaderboardRow struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	JDTitle    *string
	JDFileName *string
	JDText     *string
	CreatedAt  time.Time
}

func rowFromLeaderboard(lb *types.Leaderboard) leaderboardRow {
	r := leaderboardRow{ID: lb.ID, OwnerID: lb.OwnerID, CreatedAt: lb.CreatedAt}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if jd := lb.JobDescription; jd != nil {
		r.JDTitle, r.JDFileName, r.JDText = ptr(jd.Title), ptr(jd.FileName), ptr(jd.Text)
	}
	return r
}

func (r *leaderboardRow) toLeaderboard() *types.Leaderboard {
	lb := &types.Leaderboard{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		Entries:   []types.LeaderboardEntry{},
		CreatedAt: r.CreatedAt,
	}
	if r.JDText != nil {
		lb.JobDescription = &types.JobDescription{
			Title:    deref(r.JDTitle),
			FileName: deref(r.JDFileName),
			Text:     *r.JDText,
		}
	}
	return lb
}

func ptr[T any](v T) *T {
	return &v
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
