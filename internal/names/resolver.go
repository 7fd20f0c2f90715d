package names

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/resume-ranker/internal/types"
	"go.uber.org/zap"
)

// DefaultTimeout bounds one enricher call
const DefaultTimeout = 15 * time.Second

// Enricher is an optional name source, usually LLM-backed
type Enricher interface {
	Available(ctx context.Context) bool
	ExtractName(ctx context.Context, text string) (string, error)
}

// Resolver asks the enricher first and falls through to Extract whenever the enricher
// is missing, unavailable, failing or unsure.
type Resolver struct {
	enricher Enricher
	timeout  time.Duration
	logger   *zap.Logger
}

// NewResolver creates a Resolver. A nil enricher makes Resolve equivalent to Extract.
func NewResolver(enricher Enricher, timeout time.Duration, logger *zap.Logger) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{enricher: enricher, timeout: timeout, logger: logger}
}

// Resolve never fails; the worst case is types.UnknownCandidate.
func (r *Resolver) Resolve(ctx context.Context, text string) string {
	if r == nil || r.enricher == nil {
		return Extract(text)
	}

	enrichCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if !r.enricher.Available(enrichCtx) {
		return Extract(text)
	}

	name, err := r.enricher.ExtractName(enrichCtx, text)
	if err != nil {
		r.logger.Warn("name enrichment failed, using heuristics", zap.Error(err))
		return Extract(text)
	}
	name = strings.TrimSpace(name)
	if name == "" || name == types.UnknownCandidate {
		return Extract(text)
	}
	return name
}
