package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/leaderboard"
	"github.com/jonathan/resume-ranker/internal/types"
	_ "modernc.org/sqlite"
)

var _ leaderboard.Store = (*SQLiteStore)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS leaderboards (
	id           TEXT PRIMARY KEY,
	owner_id     TEXT NOT NULL,
	jd_title     TEXT,
	jd_file_name TEXT,
	jd_text      TEXT,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leaderboards_owner ON leaderboards (owner_id, created_at);
CREATE TABLE IF NOT EXISTS leaderboard_entries (
	id               TEXT PRIMARY KEY,
	leaderboard_id   TEXT NOT NULL REFERENCES leaderboards (id) ON DELETE CASCADE,
	candidate_name   TEXT NOT NULL,
	file_name        TEXT NOT NULL DEFAULT '',
	input_index      INTEGER NOT NULL,
	skills_score     REAL,
	experience_score REAL,
	education_score  REAL,
	projects_score   REAL,
	overall_score    REAL,
	jd_match_percent REAL,
	score_overridden INTEGER NOT NULL DEFAULT 0,
	rank_position    INTEGER NOT NULL DEFAULT 0,
	favorite         INTEGER NOT NULL DEFAULT 0,
	notes            TEXT NOT NULL DEFAULT '',
	skills           TEXT NOT NULL DEFAULT '',
	experience       TEXT NOT NULL DEFAULT '',
	projects         TEXT NOT NULL DEFAULT '',
	hackathons       TEXT NOT NULL DEFAULT '',
	missing_skills   TEXT NOT NULL DEFAULT '[]',
	experience_years INTEGER NOT NULL DEFAULT 0,
	created_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leaderboard_entries_rank
	ON leaderboard_entries (leaderboard_id, rank_position, input_index);`

// SQLiteStore keeps leaderboards in a local SQLite file. It serves single-user CLI
// runs that have no PostgreSQL server.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema exists
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	conn.SetMaxOpenConns(1) // single writer

	if _, err := conn.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := conn.Exec(sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: conn}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// timeLayout is fixed width so stored times sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored time %q: %w", s, err)
	}
	return t, nil
}

// CreateLeaderboard stores the leaderboard header; its Entries are ignored
func (s *SQLiteStore) CreateLeaderboard(ctx context.Context, lb *types.Leaderboard) error {
	r := rowFromLeaderboard(lb)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leaderboards (id, owner_id, jd_title, jd_file_name, jd_text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.OwnerID.String(), r.JDTitle, r.JDFileName, r.JDText, formatTime(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create leaderboard: %w", err)
	}
	return nil
}

// AddEntries inserts entries in one transaction
func (s *SQLiteStore) AddEntries(ctx context.Context, entries []types.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	checked := make(map[uuid.UUID]bool)
	for i := range entries {
		r := rowFromEntry(&entries[i])
		if !checked[r.LeaderboardID] {
			var one int
			err := tx.QueryRowContext(ctx, `SELECT 1 FROM leaderboards WHERE id = ?`, r.LeaderboardID.String()).Scan(&one)
			if errors.Is(err, sql.ErrNoRows) {
				return &leaderboard.NotFoundError{Kind: "leaderboard", ID: r.LeaderboardID}
			}
			if err != nil {
				return fmt.Errorf("failed to check leaderboard: %w", err)
			}
			checked[r.LeaderboardID] = true
		}

		missing, err := json.Marshal(r.MissingSkills)
		if err != nil {
			return fmt.Errorf("failed to marshal missing skills: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO leaderboard_entries (`+entryColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID.String(), r.LeaderboardID.String(), r.CandidateName, r.FileName, r.InputIndex,
			r.SkillsScore, r.ExperienceScore, r.EducationScore, r.ProjectsScore, r.OverallScore, r.JDMatchPercent,
			r.RankPosition, r.Favorite, r.Notes, r.Skills, r.Experience, r.Projects, r.Hackathons,
			string(missing), r.ExperienceYears, formatTime(r.CreatedAt), r.ScoreOverridden,
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}
	return nil
}

// UpdateEntries overwrites the mutable columns of existing entries
func (s *SQLiteStore) UpdateEntries(ctx context.Context, entries []types.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range entries {
		r := rowFromEntry(&entries[i])
		res, err := tx.ExecContext(ctx,
			`UPDATE leaderboard_entries
			 SET candidate_name = ?, skills_score = ?, experience_score = ?, education_score = ?,
			     projects_score = ?, overall_score = ?, jd_match_percent = ?, score_overridden = ?,
			     rank_position = ?, favorite = ?, notes = ?
			 WHERE id = ?`,
			r.CandidateName, r.SkillsScore, r.ExperienceScore, r.EducationScore,
			r.ProjectsScore, r.OverallScore, r.JDMatchPercent, r.ScoreOverridden,
			r.RankPosition, r.Favorite, r.Notes, r.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to update entry %s: %w", r.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return &leaderboard.NotFoundError{Kind: "entry", ID: r.ID}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entry updates: %w", err)
	}
	return nil
}

// GetLeaderboard returns the leaderboard with its entries, or nil when it does not exist
func (s *SQLiteStore) GetLeaderboard(ctx context.Context, id uuid.UUID) (*types.Leaderboard, error) {
	var h leaderboardRow
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, jd_title, jd_file_name, jd_text, created_at FROM leaderboards WHERE id = ?`,
		id.String(),
	).Scan(&h.ID, &h.OwnerID, &h.JDTitle, &h.JDFileName, &h.JDText, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	if h.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	lb := h.toLeaderboard()

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM leaderboard_entries WHERE leaderboard_id = ? `+entryOrder,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		r, err := scanSQLiteEntry(rows)
		if err != nil {
			return nil, err
		}
		lb.Entries = append(lb.Entries, r.toEntry())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return lb, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteEntry(row rowScanner) (*entryRow, error) {
	var r entryRow
	var missing, created string
	err := row.Scan(&r.ID, &r.LeaderboardID, &r.CandidateName, &r.FileName, &r.InputIndex,
		&r.SkillsScore, &r.ExperienceScore, &r.EducationScore, &r.ProjectsScore, &r.OverallScore, &r.JDMatchPercent,
		&r.RankPosition, &r.Favorite, &r.Notes, &r.Skills, &r.Experience, &r.Projects, &r.Hackathons,
		&missing, &r.ExperienceYears, &created, &r.ScoreOverridden)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(missing), &r.MissingSkills); err != nil {
		return nil, fmt.Errorf("invalid missing skills for entry %s: %w", r.ID, err)
	}
	if r.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetEntry returns one entry, or nil when it does not exist
func (s *SQLiteStore) GetEntry(ctx context.Context, id uuid.UUID) (*types.LeaderboardEntry, error) {
	r, err := scanSQLiteEntry(s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM leaderboard_entries WHERE id = ?`, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	e := r.toEntry()
	return &e, nil
}

// ListLeaderboards returns the owner's leaderboards, newest first
func (s *SQLiteStore) ListLeaderboards(ctx context.Context, ownerID uuid.UUID) ([]types.LeaderboardSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.id, l.owner_id, COALESCE(l.jd_title, ''), l.created_at,
		        (SELECT COUNT(*) FROM leaderboard_entries e WHERE e.leaderboard_id = l.id)
		 FROM leaderboards l
		 WHERE l.owner_id = ?
		 ORDER BY l.created_at DESC, l.id`,
		ownerID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []types.LeaderboardSummary{}
	for rows.Next() {
		var sum types.LeaderboardSummary
		var created string
		if err := rows.Scan(&sum.ID, &sum.OwnerID, &sum.JDTitle, &created, &sum.EntryCount); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard: %w", err)
		}
		if sum.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboards: %w", err)
	}
	return out, nil
}

// DeleteLeaderboard removes the leaderboard and its entries
func (s *SQLiteStore) DeleteLeaderboard(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM leaderboards WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete leaderboard: %w", err)
	}
	return nil
}
