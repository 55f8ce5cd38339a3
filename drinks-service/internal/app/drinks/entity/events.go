package entity

import "time"

const (
	EventTypeVoteCast        = "VOTE_CAST"
	EventTypeFeaturedRotated = "FEATURED_ROTATED"
	EventTypeRatingCreated   = "RATING_CREATED"
	EventTypeReviewAdded     = "REVIEW_ADDED"
)

const (
	SelectionSourceVotes  = "votes"
	SelectionSourceRandom = "random"
)

// DrinkEvent is published to Kafka after a state change. Unused fields are omitted.
type DrinkEvent struct {
	EventType string    `json:"event_type"`
	DrinkID   int64     `json:"drink_id"`
	UserID    int64     `json:"user_id,omitempty"`
	RatingID  int64     `json:"rating_id,omitempty"`
	ReviewID  string    `json:"review_id,omitempty"`
	Value     *float64  `json:"value,omitempty"`
	Source    string    `json:"source,omitempty"`
	Day       string    `json:"day,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
