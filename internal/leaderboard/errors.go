package leaderboard

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError is returned when a leaderboard or entry does not exist
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// AccessDeniedError is returned when a leaderboard belongs to another owner
type AccessDeniedError struct {
	LeaderboardID uuid.UUID
	OwnerID       uuid.UUID
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("leaderboard %s is not owned by %s", e.LeaderboardID, e.OwnerID)
}
