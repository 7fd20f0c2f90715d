package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jonathan/resume-ranker/internal/leaderboard"
	"github.com/jonathan/resume-ranker/internal/types"
)

var _ leaderboard.Store = (*DB)(nil)

// foreignKeyViolation is the PostgreSQL SQLSTATE for a missing referenced row
const foreignKeyViolation = "23503"

const entryColumns = `id, leaderboard_id, candidate_name, file_name, input_index,
	skills_score, experience_score, education_score, projects_score, overall_score, jd_match_percent,
	rank_position, favorite, notes, skills, experience, projects, hackathons,
	missing_skills, experience_years, created_at, score_overridden`

func (r *entryRow) scanTargets() []any {
	return []any{&r.ID, &r.LeaderboardID, &r.CandidateName, &r.FileName, &r.InputIndex,
		&r.SkillsScore, &r.ExperienceScore, &r.EducationScore, &r.ProjectsScore, &r.OverallScore, &r.JDMatchPercent,
		&r.RankPosition, &r.Favorite, &r.Notes, &r.Skills, &r.Experience, &r.Projects, &r.Hackathons,
		&r.MissingSkills, &r.ExperienceYears, &r.CreatedAt, &r.ScoreOverridden}
}

// CreateLeaderboard stores the leaderboard header; its Entries are ignored
func (db *DB) CreateLeaderboard(ctx context.Context, lb *types.Leaderboard) error {
	r := rowFromLeaderboard(lb)
	_, err := db.pool.Exec(ctx,
		`INSERT INTO leaderboards (id, owner_id, jd_title, jd_file_name, jd_text, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.OwnerID, r.JDTitle, r.JDFileName, r.JDText, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create leaderboard: %w", err)
	}
	return nil
}

// AddEntries inserts entries in one transaction
func (db *DB) AddEntries(ctx context.Context, entries []types.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := range entries {
		r := rowFromEntry(&entries[i])
		_, err := tx.Exec(ctx,
			`INSERT INTO leaderboard_entries (`+entryColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`,
			r.ID, r.LeaderboardID, r.CandidateName, r.FileName, r.InputIndex,
			r.SkillsScore, r.ExperienceScore, r.EducationScore, r.ProjectsScore, r.OverallScore, r.JDMatchPercent,
			r.RankPosition, r.Favorite, r.Notes, r.Skills, r.Experience, r.Projects, r.Hackathons,
			r.MissingSkills, r.ExperienceYears, r.CreatedAt, r.ScoreOverridden,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
				return &leaderboard.NotFoundError{Kind: "leaderboard", ID: r.LeaderboardID}
			}
			return fmt.Errorf("failed to insert entry %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}
	return nil
}

// UpdateEntries overwrites the mutable columns of existing entries
func (db *DB) UpdateEntries(ctx context.Context, entries []types.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := range entries {
		r := rowFromEntry(&entries[i])
		tag, err := tx.Exec(ctx,
			`UPDATE leaderboard_entries
			 SET candidate_name = $2, skills_score = $3, experience_score = $4, education_score = $5,
			     projects_score = $6, overall_score = $7, jd_match_percent = $8, score_overridden = $9,
			     rank_position = $10, favorite = $11, notes = $12
			 WHERE id = $1`,
			r.ID, r.CandidateName, r.SkillsScore, r.ExperienceScore, r.EducationScore,
			r.ProjectsScore, r.OverallScore, r.JDMatchPercent, r.ScoreOverridden,
			r.RankPosition, r.Favorite, r.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to update entry %s: %w", r.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return &leaderboard.NotFoundError{Kind: "entry", ID: r.ID}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit entry updates: %w", err)
	}
	return nil
}

// GetLeaderboard returns the leaderboard with its entries, or nil when it does not exist
func (db *DB) GetLeaderboard(ctx context.Context, id uuid.UUID) (*types.Leaderboard, error) {
	var h leaderboardRow
	err := db.pool.QueryRow(ctx,
		`SELECT id, owner_id, jd_title, jd_file_name, jd_text, created_at FROM leaderboards WHERE id = $1`,
		id,
	).Scan(&h.ID, &h.OwnerID, &h.JDTitle, &h.JDFileName, &h.JDText, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	lb := h.toLeaderboard()

	rows, err := db.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM leaderboard_entries WHERE leaderboard_id = $1 `+entryOrder,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r entryRow
		if err := rows.Scan(r.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		lb.Entries = append(lb.Entries, r.toEntry())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return lb, nil
}

// GetEntry returns one entry, or nil when it does not exist
func (db *DB) GetEntry(ctx context.Context, id uuid.UUID) (*types.LeaderboardEntry, error) {
	var r entryRow
	err := db.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM leaderboard_entries WHERE id = $1`, id,
	).Scan(r.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	e := r.toEntry()
	return &e, nil
}

// ListLeaderboards returns the owner's leaderboards, newest first
func (db *DB) ListLeaderboards(ctx context.Context, ownerID uuid.UUID) ([]types.LeaderboardSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT l.id, l.owner_id, COALESCE(l.jd_title, ''), l.created_at,
		        (SELECT COUNT(*) FROM leaderboard_entries e WHERE e.leaderboard_id = l.id)
		 FROM leaderboards l
		 WHERE l.owner_id = $1
		 ORDER BY l.created_at DESC, l.id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboards: %w", err)
	}
	defer rows.Close()

	out := []types.LeaderboardSummary{}
	for rows.Next() {
		var s types.LeaderboardSummary
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.JDTitle, &s.CreatedAt, &s.EntryCount); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboards: %w", err)
	}
	return out, nil
}

// DeleteLeaderboard removes the leaderboard; entries go with it through ON DELETE CASCADE
func (db *DB) DeleteLeaderboard(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM leaderboards WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete leaderboard: %w", err)
	}
	return nil
}
