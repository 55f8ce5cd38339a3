package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/drinks-service/internal/app/drinks/repository"
	"drinkcatalog/drinks-service/internal/app/drinks/util"
	"drinkcatalog/pkg/metrics"
)

// VotingService is the ballot ledger: one vote per user per calendar day.
type VotingService struct {
	voteRepo  repository.VoteRepository
	drinkRepo repository.DrinkRepository
	publisher util.MessagePublisher
}

func NewVotingService(
	voteRepo repository.VoteRepository,
	drinkRepo repository.DrinkRepository,
	publisher util.MessagePublisher,
) *VotingService {
	return &VotingService{
		voteRepo:  voteRepo,
		drinkRepo: drinkRepo,
		publisher: publisher,
	}
}

// CastVote records userID's ballot for the day of now. Voting again the same
// day moves the existing ballot to drinkID.
func (s *VotingService) CastVote(ctx context.Context, userID, drinkID int64, now time.Time) error {
	if _, err := s.drinkRepo.GetByID(ctx, drinkID); err != nil {
		if errors.Is(err, repository.ErrDrinkNotFound) {
			return ErrDrinkNotFound
		}
		return fmt.Errorf("failed to check drink %d: %w", drinkID, err)
	}

	vote, err := s.voteRepo.UpsertForUserDay(ctx, userID, drinkID, now)
	if err != nil {
		return fmt.Errorf("failed to cast vote of user %d for drink %d: %w", userID, drinkID, err)
	}

	metrics.VotesCast.Inc()
	publishEvent(ctx, s.publisher, entity.DrinkEvent{
		EventType: entity.EventTypeVoteCast,
		DrinkID:   vote.DrinkID,
		UserID:    vote.UserID,
		Day:       entity.DayOf(now).Format(time.DateOnly),
		Timestamp: now,
	})

	return nil
}

// TopVotedDrink returns the most voted drink among votes cast at or after
// since. Ties go to the lowest drink id. ok is false when no vote is in range.
func (s *VotingService) TopVotedDrink(ctx context.Context, since time.Time) (int64, bool, error) {
	votes, err := s.voteRepo.GetSince(ctx, since)
	if err != nil {
		return 0, false, fmt.Errorf("failed to load votes since %s: %w", since.Format(time.DateOnly), err)
	}

	id, ok := tally(votes)
	return id, ok, nil
}

// VoteOfUserForDay returns the ballot userID cast on day's calendar day.
func (s *VotingService) VoteOfUserForDay(ctx context.Context, userID int64, day time.Time) (*entity.Vote, error) {
	vote, err := s.voteRepo.GetForUserDay(ctx, userID, entity.DayOf(day))
	if err != nil {
		if errors.Is(err, repository.ErrVoteNotFound) {
			return nil, ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to get vote of user %d: %w", userID, err)
	}
	return vote, nil
}

func tally(votes []entity.Vote) (int64, bool) {
	if len(votes) == 0 {
		return 0, false
	}

	counts := make(map[int64]int, len(votes))
	for _, v := range votes {
		counts[v.DrinkID]++
	}

	var winner int64
	best := 0
	for id, n := range counts {
		if n > best || (n == best && id < winner) {
			winner, best = id, n
		}
	}
	return winner, true
}
