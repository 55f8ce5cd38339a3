package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/pkg/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// voteRepository talks to the votes table through pgx. The table and its
// unique (user_id, vote_day) index are created by gorm AutoMigrate on startup.
type voteRepository struct {
	db *pgxpool.Pool
}

func NewVoteRepository(db *pgxpool.Pool) VoteRepository {
	return &voteRepository{db: db}
}

// GetSince returns votes cast at or after since, oldest first.
func (r *voteRepository) GetSince(ctx context.Context, since time.Time) ([]entity.Vote, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "votes")

	query := `
		SELECT id, user_id, drink_id, voted_at, vote_day
		FROM votes
		WHERE voted_at >= $1
		ORDER BY voted_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		timer.ObserveDuration(err)
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var votes []entity.Vote
	for rows.Next() {
		var v entity.Vote
		if err := rows.Scan(&v.ID, &v.UserID, &v.DrinkID, &v.VotedAt, &v.VoteDay); err != nil {
			timer.ObserveDuration(err)
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		timer.ObserveDuration(err)
		return nil, fmt.Errorf("failed to iterate votes: %w", err)
	}
	timer.ObserveDuration(nil)

	return votes, nil
}

// UpsertForUserDay relies on the unique (user_id, vote_day) index: a second
// ballot the same day only moves drink_id and keeps the original voted_at.
func (r *voteRepository) UpsertForUserDay(ctx context.Context, userID, drinkID int64, now time.Time) (*entity.Vote, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpsert, "votes")

	query := `
		INSERT INTO votes (user_id, drink_id, voted_at, vote_day)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, vote_day) DO UPDATE SET drink_id = EXCLUDED.drink_id
		RETURNING id, user_id, drink_id, voted_at, vote_day
	`

	var v entity.Vote
	err := r.db.QueryRow(ctx, query, userID, drinkID, now, entity.DayOf(now)).Scan(
		&v.ID,
		&v.UserID,
		&v.DrinkID,
		&v.VotedAt,
		&v.VoteDay,
	)
	timer.ObserveDuration(err)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert vote: %w", err)
	}
	return &v, nil
}

func (r *voteRepository) GetForUserDay(ctx context.Context, userID int64, day time.Time) (*entity.Vote, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "votes")

	query := `
		SELECT id, user_id, drink_id, voted_at, vote_day
		FROM votes
		WHERE user_id = $1 AND vote_day = $2
	`

	var v entity.Vote
	err := r.db.QueryRow(ctx, query, userID, entity.DayOf(day)).Scan(
		&v.ID,
		&v.UserID,
		&v.DrinkID,
		&v.VotedAt,
		&v.VoteDay,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			timer.ObserveDuration(nil)
			return nil, ErrVoteNotFound
		}
		timer.ObserveDuration(err)
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	timer.ObserveDuration(nil)

	return &v, nil
}
