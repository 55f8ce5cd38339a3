package service

import (
	"context"
	"time"
)

// VoteTally resolves the winning drink of a vote window.
type VoteTally interface {
	TopVotedDrink(ctx context.Context, since time.Time) (int64, bool, error)
}

// Picker draws the random fallback for the drink of the day.
// IntN returns a value in [0, n).
type Picker interface {
	IntN(n int) int
}
