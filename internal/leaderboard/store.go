package leaderboard

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Store persists leaderboards and their entries. Lookups return (nil, nil) when the
// row does not exist. GetLeaderboard returns entries ordered by rank position with
// unranked entries last, ties broken by input index.
type Store interface {
	CreateLeaderboard(ctx context.Context, lb *types.Leaderboard) error
	AddEntries(ctx context.Context, entries []types.LeaderboardEntry) error
	UpdateEntries(ctx context.Context, entries []types.LeaderboardEntry) error
	GetLeaderboard(ctx context.Context, id uuid.UUID) (*types.Leaderboard, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*types.LeaderboardEntry, error)
	ListLeaderboards(ctx context.Context, ownerID uuid.UUID) ([]types.LeaderboardSummary, error)
	DeleteLeaderboard(ctx context.Context, id uuid.UUID) error
}

// SortEntries applies the Store ordering to entries in place
func SortEntries(entries []types.LeaderboardEntry) {
	slices.SortStableFunc(entries, func(a, b types.LeaderboardEntry) int {
		ar, br := a.RankPosition, b.RankPosition
		switch {
		case ar == br:
			return a.InputIndex - b.InputIndex
		case ar == 0:
			return 1
		case br == 0:
			return -1
		default:
			return ar - br
		}
	})
}

// MemoryStore keeps leaderboards in process memory. It backs dry runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	boards  map[uuid.UUID]*types.Leaderboard
	entries map[uuid.UUID]*types.LeaderboardEntry
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		boards:  make(map[uuid.UUID]*types.Leaderboard),
		entries: make(map[uuid.UUID]*types.LeaderboardEntry),
	}
}

// CreateLeaderboard stores the leaderboard header; its Entries are ignored
func (m *MemoryStore) CreateLeaderboard(_ context.Context, lb *types.Leaderboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	header := *lb
	header.Entries = nil
	if lb.JobDescription != nil {
		jd := *lb.JobDescription
		header.JobDescription = &jd
	}
	m.boards[lb.ID] = &header
	return nil
}

// AddEntries inserts new entries
func (m *MemoryStore) AddEntries(_ context.Context, entries []types.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range entries {
		if _, ok := m.boards[entries[i].LeaderboardID]; !ok {
			return &NotFoundError{Kind: "leaderboard", ID: entries[i].LeaderboardID}
		}
		e := copyEntry(&entries[i])
		m.entries[e.ID] = &e
	}
	return nil
}

// UpdateEntries overwrites existing entries
func (m *MemoryStore) UpdateEntries(_ context.Context, entries []types.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range entries {
		if _, ok := m.entries[entries[i].ID]; !ok {
			return &NotFoundError{Kind: "entry", ID: entries[i].ID}
		}
		e := copyEntry(&entries[i])
		m.entries[e.ID] = &e
	}
	return nil
}

// GetLeaderboard returns a copy of the leaderboard with its entries
func (m *MemoryStore) GetLeaderboard(_ context.Context, id uuid.UUID) (*types.Leaderboard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	header, ok := m.boards[id]
	if !ok {
		return nil, nil
	}
	lb := *header
	lb.Entries = []types.LeaderboardEntry{}
	for _, e := range m.entries {
		if e.LeaderboardID == id {
			lb.Entries = append(lb.Entries, copyEntry(e))
		}
	}
	SortEntries(lb.Entries)
	return &lb, nil
}

// GetEntry returns a copy of one entry
func (m *MemoryStore) GetEntry(_ context.Context, id uuid.UUID) (*types.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	out := copyEntry(e)
	return &out, nil
}

// ListLeaderboards returns the owner's leaderboards, newest first
func (m *MemoryStore) ListLeaderboards(_ context.Context, ownerID uuid.UUID) ([]types.LeaderboardSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[uuid.UUID]int)
	for _, e := range m.entries {
		counts[e.LeaderboardID]++
	}
	out := []types.LeaderboardSummary{}
	for _, lb := range m.boards {
		if lb.OwnerID != ownerID {
			continue
		}
		s := types.LeaderboardSummary{ID: lb.ID, OwnerID: lb.OwnerID, EntryCount: counts[lb.ID], CreatedAt: lb.CreatedAt}
		if lb.JobDescription != nil {
			s.JDTitle = lb.JobDescription.Title
		}
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b types.LeaderboardSummary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

// DeleteLeaderboard removes the leaderboard and all of its entries
func (m *MemoryStore) DeleteLeaderboard(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.boards, id)
	for entryID, e := range m.entries {
		if e.LeaderboardID == id {
			delete(m.entries, entryID)
		}
	}
	return nil
}

func copyEntry(e *types.LeaderboardEntry) types.LeaderboardEntry {
	out := *e
	if e.Score != nil {
		score := *e.Score
		if e.Score.JDMatchPercent != nil {
			p := *e.Score.JDMatchPercent
			score.JDMatchPercent = &p
		}
		out.Score = &score
	}
	out.MissingSkills = slices.Clone(e.MissingSkills)
	return out
}
