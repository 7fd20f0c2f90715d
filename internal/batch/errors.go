package batch

import "fmt"

// JDResolutionError is fatal for the whole batch: a job description was supplied but
// no text could be extracted from it. No leaderboard is created.
type JDResolutionError struct {
	Source string
	Cause  error
}

func (e *JDResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve job description %q: %v", e.Source, e.Cause)
}

func (e *JDResolutionError) Unwrap() error {
	return e.Cause
}

// ExtractionError is a per-résumé failure. The résumé is skipped and the batch continues.
type ExtractionError struct {
	Index int
	File  string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("résumé %d (%s): %v", e.Index, e.File, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
