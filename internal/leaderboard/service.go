package leaderboard

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/types"
	"go.uber.org/zap"
)

// Service exposes leaderboard reads and recruiter mutations over a Store. Every call is
// checked against the caller's owner id. Mutations of one leaderboard are serialized.
type Service struct {
	store  Store
	logger *zap.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewService creates a Service; a nil logger discards output.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Store returns the underlying store
func (s *Service) Store() Store {
	return s.store
}

// Lock acquires the mutation lock of one leaderboard and returns its release func
func (s *Service) Lock(id uuid.UUID) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// forgetLock drops the lock of a deleted leaderboard. A caller still holding or
// waiting on it keeps its reference.
func (s *Service) forgetLock(id uuid.UUID) {
	s.mu.Lock()
	delete(s.locks, id)
	s.mu.Unlock()
}

// Finalize ranks every stored entry of the leaderboard and persists the positions.
// It returns the ranked leaderboard.
func (s *Service) Finalize(ctx context.Context, id uuid.UUID) (*types.Leaderboard, error) {
	unlock := s.Lock(id)
	defer unlock()
	return s.rerank(ctx, id)
}

// rerank must be called with the leaderboard lock held
func (s *Service) rerank(ctx context.Context, id uuid.UUID) (*types.Leaderboard, error) {
	lb, err := s.store.GetLeaderboard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	if lb == nil {
		return nil, &NotFoundError{Kind: "leaderboard", ID: id}
	}

	// rank from input order so the result does not depend on earlier positions
	for i := range lb.Entries {
		lb.Entries[i].RankPosition = 0
	}
	SortEntries(lb.Entries)
	Rank(lb.Entries)

	if len(lb.Entries) > 0 {
		if err := s.store.UpdateEntries(ctx, lb.Entries); err != nil {
			return nil, fmt.Errorf("failed to save rank positions: %w", err)
		}
	}
	return lb, nil
}

// Get returns an owned leaderboard with its entries in rank order
func (s *Service) Get(ctx context.Context, id, owner uuid.UUID) (*types.Leaderboard, error) {
	lb, err := s.store.GetLeaderboard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	if lb == nil {
		return nil, &NotFoundError{Kind: "leaderboard", ID: id}
	}
	if lb.OwnerID != owner {
		return nil, &AccessDeniedError{LeaderboardID: id, OwnerID: owner}
	}
	return lb, nil
}

// Top returns the first N ranked entries, ordered by rank ascending
func (s *Service) Top(ctx context.Context, req types.TopNRequest, owner uuid.UUID) ([]types.LeaderboardEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	lb, err := s.Get(ctx, req.LeaderboardID, owner)
	if err != nil {
		return nil, err
	}
	return TopN(lb.Entries, req.N), nil
}

// ExportCSV writes the top N entries of a leaderboard as CSV
func (s *Service) ExportCSV(ctx context.Context, req types.TopNRequest, owner uuid.UUID, w io.Writer) error {
	entries, err := s.Top(ctx, req, owner)
	if err != nil {
		return err
	}
	return WriteCSV(w, entries)
}

// List returns the owner's leaderboards, newest first
func (s *Service) List(ctx context.Context, owner uuid.UUID) ([]types.LeaderboardSummary, error) {
	summaries, err := s.store.ListLeaderboards(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboards: %w", err)
	}
	return summaries, nil
}

// Delete removes an owned leaderboard together with its entries
func (s *Service) Delete(ctx context.Context, id, owner uuid.UUID) error {
	unlock := s.Lock(id)
	defer unlock()

	if _, err := s.Get(ctx, id, owner); err != nil {
		return err
	}
	if err := s.store.DeleteLeaderboard(ctx, id); err != nil {
		return fmt.Errorf("failed to delete leaderboard: %w", err)
	}
	s.forgetLock(id)
	s.logger.Info("leaderboard deleted", zap.String("leaderboard_id", id.String()))
	return nil
}

// UpdateNotes replaces the notes of an entry. Repeating the call is harmless.
func (s *Service) UpdateNotes(ctx context.Context, req types.UpdateNotesRequest, owner uuid.UUID) (*types.LeaderboardEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutateEntry(ctx, req.EntryID, owner, func(e *types.LeaderboardEntry) {
		e.Notes = req.Notes
	})
}

// SetFavorite sets the favorite flag of an entry
func (s *Service) SetFavorite(ctx context.Context, entryID, owner uuid.UUID, favorite bool) (*types.LeaderboardEntry, error) {
	return s.mutateEntry(ctx, entryID, owner, func(e *types.LeaderboardEntry) {
		e.Favorite = favorite
	})
}

// ToggleFavorite flips the favorite flag of an entry
func (s *Service) ToggleFavorite(ctx context.Context, entryID, owner uuid.UUID) (*types.LeaderboardEntry, error) {
	return s.mutateEntry(ctx, entryID, owner, func(e *types.LeaderboardEntry) {
		e.Favorite = !e.Favorite
	})
}

// OverrideScore sets an entry's overall score by hand and re-ranks its leaderboard.
// Component scores are kept and the score is marked Overridden.
func (s *Service) OverrideScore(ctx context.Context, req types.ScoreOverrideRequest, owner uuid.UUID) (*types.Leaderboard, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	entry, err := s.mutateEntry(ctx, req.EntryID, owner, func(e *types.LeaderboardEntry) {
		score := types.ScoreBreakdown{}
		if e.Score != nil {
			score = *e.Score
		}
		score.Overall = req.Overall
		score.Overridden = true
		e.Score = &score
	})
	if err != nil {
		return nil, err
	}

	unlock := s.Lock(entry.LeaderboardID)
	defer unlock()
	lb, err := s.rerank(ctx, entry.LeaderboardID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("score overridden",
		zap.String("entry_id", req.EntryID.String()),
		zap.Float64("overall", req.Overall))
	return lb, nil
}

// Entry returns one owned entry
func (s *Service) Entry(ctx context.Context, entryID, owner uuid.UUID) (*types.LeaderboardEntry, error) {
	entry, err := s.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}
	if entry == nil {
		return nil, &NotFoundError{Kind: "entry", ID: entryID}
	}
	if _, err := s.Get(ctx, entry.LeaderboardID, owner); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) mutateEntry(ctx context.Context, entryID, owner uuid.UUID, mutate func(*types.LeaderboardEntry)) (*types.LeaderboardEntry, error) {
	entry, err := s.Entry(ctx, entryID, owner)
	if err != nil {
		return nil, err
	}

	unlock := s.Lock(entry.LeaderboardID)
	defer unlock()

	// reload under the lock so concurrent mutations compose
	entry, err = s.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry: %w", err)
	}
	if entry == nil {
		return nil, &NotFoundError{Kind: "entry", ID: entryID}
	}
	mutate(entry)
	if err := s.store.UpdateEntries(ctx, []types.LeaderboardEntry{*entry}); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return entry, nil
}
