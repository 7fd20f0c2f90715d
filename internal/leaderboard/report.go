package leaderboard

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Report builds the detailed candidate view of one owned entry
func (s *Service) Report(ctx context.Context, entryID, owner uuid.UUID) (*types.CandidateReport, error) {
	entry, err := s.Entry(ctx, entryID, owner)
	if err != nil {
		return nil, err
	}
	return BuildReport(entry), nil
}

// BuildReport derives the report fields from the stored projections of an entry
func BuildReport(e *types.LeaderboardEntry) *types.CandidateReport {
	entrySkills := splitList(e.Skills)
	r := &types.CandidateReport{
		CandidateName:    e.CandidateName,
		RankPosition:     e.RankPosition,
		Score:            e.Score,
		MatchLevel:       scoring.LevelPoor,
		Skills:           entrySkills,
		MissingSkills:    e.MissingSkills,
		TopSkillCategory: skills.TopCategory(entrySkills),
		ExperienceLevel:  e.Experience,
		ExperienceYears:  e.ExperienceYears,
		Projects:         splitList(e.Projects),
		Hackathons:       splitList(e.Hackathons),
		Notes:            e.Notes,
		Favorite:         e.Favorite,
	}
	if r.MissingSkills == nil {
		r.MissingSkills = []string{}
	}

	if e.Score != nil {
		percent := e.Score.Overall * 100
		if e.Score.JDMatchPercent != nil {
			percent = *e.Score.JDMatchPercent
		}
		r.MatchLevel = scoring.MatchLevel(percent)
		r.HiringRecommendation = scoring.HiringRecommendation(*e.Score)
	} else {
		r.HiringRecommendation = scoring.HiringRecommendation(types.ScoreBreakdown{})
	}
	return r
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ", ") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
