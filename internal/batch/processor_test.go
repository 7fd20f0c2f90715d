package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/leaderboard"
	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = func() time.Time { return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC) }

// failingExtractor fails for documents whose name starts with "bad"
type failingExtractor struct {
	ingestion.TextExtractor
}

func (f failingExtractor) ExtractText(ctx context.Context, doc types.Document) (string, error) {
	if strings.HasPrefix(doc.Name, "bad") {
		return "", errors.New("corrupt document")
	}
	return f.TextExtractor.ExtractText(ctx, doc)
}

// recordingStore remembers the input indices of each committed sub-batch
type recordingStore struct {
	*leaderboard.MemoryStore
	mu      sync.Mutex
	commits [][]int
}

func (r *recordingStore) AddEntries(ctx context.Context, entries []types.LeaderboardEntry) error {
	r.mu.Lock()
	idx := make([]int, len(entries))
	for i, e := range entries {
		idx[i] = e.InputIndex
	}
	r.commits = append(r.commits, idx)
	r.mu.Unlock()
	return r.MemoryStore.AddEntries(ctx, entries)
}

var resumes = []string{
	"Alice Walker\nSenior engineer with 9 years of experience.\nWork experience at Acme Corp.\nSkills: Java, Spring, AWS, Docker, Kubernetes, PostgreSQL",
	"Bob Stone\nFresher looking for roles.\nSkills: HTML, CSS",
	"Carol Diaz\nWork experience: Software Engineer at Beta Systems 2019 - 2024\nSkills: Python, Django, React, MySQL",
	"Dan Brown\nWork experience: Backend Developer at Gamma Inc 2021 - 2025\nSkills: Go, Kubernetes, Docker",
	"Eve Adams\nStudent pursuing MCA\nSkills: Java",
	"Frank Moore\nPrincipal architect with 14 years of experience leading teams.\nWork history at Delta Ltd.\nSkills: Java, Kafka, AWS, Kubernetes, Terraform, Python, React",
	"Grace Lee\nWork experience: Analyst at Omega Corp 2022 - 2024\nSkills: SQL, Excel, Tableau",
}

func docs(n int, badIndex ...int) []types.Document {
	out := make([]types.Document, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("resume%d.txt", i+1)
		for _, b := range badIndex {
			if b == i {
				name = "bad-" + name
			}
		}
		out[i] = types.Document{Name: name, Data: []byte(resumes[i%len(resumes)])}
	}
	return out
}

type harness struct {
	proc   *Processor
	store  *recordingStore
	svc    *leaderboard.Service
	events []ProgressEvent
}

func newHarness(t *testing.T, analyzer scoring.Analyzer, onProgress func(ProgressEvent)) *harness {
	t.Helper()
	h := &harness{store: &recordingStore{MemoryStore: leaderboard.NewMemoryStore()}}
	h.svc = leaderboard.NewService(h.store, nil)
	if analyzer == nil {
		analyzer = scoring.NewScorer(nil, scoring.WithClock(testNow))
	}
	h.proc = NewProcessor(failingExtractor{ingestion.NewAutoExtractor()}, analyzer, nil, h.svc, nil, Options{
		Now: testNow,
		OnProgress: func(e ProgressEvent) {
			h.events = append(h.events, e)
			if onProgress != nil {
				onProgress(e)
			}
		},
	})
	return h
}

func TestRun_PartialFailure(t *testing.T) {
	h := newHarness(t, nil, nil)
	owner := uuid.New()

	res, err := h.proc.Run(context.Background(), types.BatchRequest{OwnerID: owner, Resumes: docs(6, 2)})

	require.NoError(t, err)
	assert.Equal(t, 6, res.Requested)
	assert.Equal(t, 5, res.Scored)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 2, res.Skipped[0].Index)
	assert.Equal(t, "bad-resume3.txt", res.Skipped[0].File)

	entries := res.Leaderboard.Entries
	require.Len(t, entries, 5)
	for i, e := range entries {
		assert.Equal(t, i+1, e.RankPosition)
		if i > 0 {
			prev, _ := entries[i-1].Overall()
			cur, _ := e.Overall()
			assert.GreaterOrEqual(t, prev, cur)
		}
	}
	assert.Equal(t, owner, res.Leaderboard.OwnerID)
	assert.Nil(t, res.Leaderboard.JobDescription)
}

func TestRun_CommitsSubBatchesInInputOrder(t *testing.T) {
	h := newHarness(t, nil, nil)

	_, err := h.proc.Run(context.Background(), types.BatchRequest{Resumes: docs(12, 1)})

	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 2, 3, 4}, {5, 6, 7, 8, 9}, {10, 11}}, h.store.commits)
	assert.Equal(t, []ProgressEvent{
		{SubBatch: 1, Committed: 4, Requested: 12},
		{SubBatch: 2, Committed: 9, Requested: 12},
		{SubBatch: 3, Committed: 11, Requested: 12},
	}, h.events)
}

func TestRun_Deterministic(t *testing.T) {
	req := types.BatchRequest{Resumes: docs(7), JDText: "Java, Kubernetes and AWS engineer"}

	first, err := newHarness(t, nil, nil).proc.Run(context.Background(), req)
	require.NoError(t, err)
	second, err := newHarness(t, nil, nil).proc.Run(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, second.Leaderboard.Entries, len(first.Leaderboard.Entries))
	for i := range first.Leaderboard.Entries {
		a, b := first.Leaderboard.Entries[i], second.Leaderboard.Entries[i]
		assert.Equal(t, a.CandidateName, b.CandidateName)
		assert.Equal(t, a.Score, b.Score)
		assert.Equal(t, a.RankPosition, b.RankPosition)
	}
}

func TestRun_WithJDText(t *testing.T) {
	h := newHarness(t, nil, nil)

	res, err := h.proc.Run(context.Background(), types.BatchRequest{
		Resumes: docs(7),
		JDText:  "Java, Kubernetes and AWS engineer",
		JDTitle: "Platform Engineer",
	})

	require.NoError(t, err)
	require.NotNil(t, res.Leaderboard.JobDescription)
	assert.Equal(t, "Platform Engineer", res.Leaderboard.JobDescription.Title)
	top := res.Leaderboard.Entries[0]
	require.NotNil(t, top.Score.JDMatchPercent)
	assert.Contains(t, []string{"Alice Walker", "Frank Moore"}, top.CandidateName)
	assert.Contains(t, top.Skills, "Kubernetes")
}

func TestRun_AllFail(t *testing.T) {
	h := newHarness(t, nil, nil)

	res, err := h.proc.Run(context.Background(), types.BatchRequest{Resumes: docs(3, 0, 1, 2)})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Requested)
	assert.Equal(t, 0, res.Scored)
	assert.Len(t, res.Skipped, 3)
	require.NotNil(t, res.Leaderboard)
	assert.Empty(t, res.Leaderboard.Entries)
	assert.Empty(t, h.store.commits)
}

func TestRun_JDFailureIsFatal(t *testing.T) {
	h := newHarness(t, nil, nil)
	owner := uuid.New()

	res, err := h.proc.Run(context.Background(), types.BatchRequest{
		OwnerID: owner,
		Resumes: docs(2),
		JD:      &types.Document{Name: "bad-jd.txt", Data: []byte("Go")},
	})

	assert.Nil(t, res)
	var jdErr *JDResolutionError
	require.ErrorAs(t, err, &jdErr)
	assert.Equal(t, "bad-jd.txt", jdErr.Source)
	list, err := h.svc.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, list, "no leaderboard is created")
}

func TestRun_JDFromDocument(t *testing.T) {
	h := newHarness(t, nil, nil)

	res, err := h.proc.Run(context.Background(), types.BatchRequest{
		Resumes: docs(2),
		JD:      &types.Document{Name: "jd.html", Data: []byte("<h1>Backend</h1><p>Java and AWS</p>")},
	})

	require.NoError(t, err)
	assert.Equal(t, "jd.html", res.Leaderboard.JobDescription.Title)
	assert.Contains(t, res.Leaderboard.JobDescription.Text, "Backend")
	assert.Contains(t, res.Leaderboard.JobDescription.Text, "Java and AWS")
}

func TestRun_RejectsEmptyRequest(t *testing.T) {
	h := newHarness(t, nil, nil)

	_, err := h.proc.Run(context.Background(), types.BatchRequest{})

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, h.store.commits)
}

func TestRun_CancelBetweenSubBatches(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := newHarness(t, nil, func(ProgressEvent) { cancel() })

	res, err := h.proc.Run(ctx, types.BatchRequest{Resumes: docs(7)})

	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 5, res.Scored)
	require.Len(t, res.Leaderboard.Entries, 5)
	assert.Equal(t, 5, res.Leaderboard.Entries[4].RankPosition)
	assert.Len(t, h.store.commits, 1)
}

type panickyAnalyzer struct {
	scoring.Analyzer
}

func (p panickyAnalyzer) Analyze(ctx context.Context, resume, jd string) (types.Analysis, error) {
	if strings.Contains(resume, "Bob") {
		panic("boom")
	}
	return p.Analyzer.Analyze(ctx, resume, jd)
}

func TestRun_RecoversFromPanics(t *testing.T) {
	h := newHarness(t, panickyAnalyzer{scoring.NewScorer(nil, scoring.WithClock(testNow))}, nil)

	res, err := h.proc.Run(context.Background(), types.BatchRequest{Resumes: docs(3)})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Scored)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 1, res.Skipped[0].Index)
	assert.Contains(t, res.Skipped[0].Reason, "panicked")
}

func TestNewEntry(t *testing.T) {
	a := types.Analysis{
		Breakdown:     types.NewScoreBreakdown(0.5, 0.5, 0.5, 0.5).WithJDMatch(50),
		HasJD:         true,
		MatchedSkills: []string{"Java"},
		MissingSkills: []string{"Go"},
		Profile: types.CandidateProfile{
			Skills:          []string{"Java", "SQL"},
			Projects:        []string{"Payments API", "Chat app"},
			ExperienceLevel: types.LevelJunior,
			ExperienceYears: 1,
		},
	}
	lbID := uuid.New()

	e := NewEntry(lbID, "Jane Doe", "jane.txt", 4, a, testNow())

	assert.Equal(t, lbID, e.LeaderboardID)
	assert.Equal(t, "Java", e.Skills)
	assert.Equal(t, "Payments API, Chat app", e.Projects)
	assert.Equal(t, "Junior", e.Experience)
	assert.Equal(t, 4, e.InputIndex)
	assert.Equal(t, 0, e.RankPosition)
	assert.InDelta(t, 0.5, e.Score.Overall, 1e-9)

	a.HasJD = false
	assert.Equal(t, "Java, SQL", NewEntry(lbID, "Jane Doe", "jane.txt", 0, a, testNow()).Skills)
}
