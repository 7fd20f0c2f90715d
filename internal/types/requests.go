//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ValidationError reports input rejected before any processing started
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Document is an uploaded file before text extraction
type Document struct {
	Name string `json:"name" validate:"required"`
	Data []byte `json:"-"`
}

// BatchRequest asks for a leaderboard over a set of résumés. JD and JDText are both
// optional; JD wins when both are set. JDTitle names a pasted JD.
type BatchRequest struct {
	OwnerID uuid.UUID  `json:"owner_id"`
	Resumes []Document `json:"resumes" validate:"required,min=1,dive"`
	JD      *Document  `json:"jd,omitempty"`
	JDText  string     `json:"jd_text,omitempty"`
	JDTitle string     `json:"jd_title,omitempty" validate:"max=200"`
}

// UpdateNotesRequest replaces the recruiter notes of an entry
type UpdateNotesRequest struct {
	EntryID uuid.UUID `json:"entry_id" validate:"required"`
	Notes   string    `json:"notes" validate:"max=5000"`
}

// ScoreOverrideRequest sets an entry's overall score by hand
type ScoreOverrideRequest struct {
	EntryID uuid.UUID `json:"entry_id" validate:"required"`
	Overall float64   `json:"overall" validate:"gte=0,lte=1"`
}

// TopNRequest selects the first N ranked entries of a leaderboard
type TopNRequest struct {
	LeaderboardID uuid.UUID `json:"leaderboard_id" validate:"required"`
	N             int       `json:"n" validate:"min=1"`
}

// Validate validates the BatchRequest using the validator.
func (r *BatchRequest) Validate() error {
	if len(r.Resumes) == 0 {
		return &ValidationError{Field: "Resumes", Message: "at least one résumé is required"}
	}
	validate := validator.New()
	return toValidationError(validate.Struct(r))
}

// Validate validates the UpdateNotesRequest using the validator.
func (r *UpdateNotesRequest) Validate() error {
	validate := validator.New()
	return toValidationError(validate.Struct(r))
}

// Validate validates the ScoreOverrideRequest using the validator.
func (r *ScoreOverrideRequest) Validate() error {
	validate := validator.New()
	return toValidationError(validate.Struct(r))
}

// Validate validates the TopNRequest using the validator.
func (r *TopNRequest) Validate() error {
	validate := validator.New()
	return toValidationError(validate.Struct(r))
}

// toValidationError reports the first failed field as a *ValidationError
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := fmt.Sprintf("failed %q validation", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed %q validation (%s)", fe.Tag(), fe.Param())
		}
		return &ValidationError{Field: fe.Field(), Message: msg}
	}
	return &ValidationError{Message: err.Error()}
}
