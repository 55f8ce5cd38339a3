package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/drinks-service/internal/app/drinks/repository"
	"drinkcatalog/drinks-service/internal/app/drinks/util"
	"drinkcatalog/pkg/logger"
	"drinkcatalog/pkg/metrics"
)

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// FeaturedService keeps exactly one drink of the day.
type FeaturedService struct {
	featuredRepo repository.FeaturedRepository
	drinkRepo    repository.DrinkRepository
	votes        VoteTally
	locker       util.DayLocker
	picker       Picker
	publisher    util.MessagePublisher
}

// NewFeaturedService wires the rotator. A nil picker draws from math/rand/v2.
func NewFeaturedService(
	featuredRepo repository.FeaturedRepository,
	drinkRepo repository.DrinkRepository,
	votes VoteTally,
	locker util.DayLocker,
	picker Picker,
	publisher util.MessagePublisher,
) *FeaturedService {
	if picker == nil {
		picker = globalPicker{}
	}
	return &FeaturedService{
		featuredRepo: featuredRepo,
		drinkRepo:    drinkRepo,
		votes:        votes,
		locker:       locker,
		picker:       picker,
		publisher:    publisher,
	}
}

// GetFeaturedDrink returns the drink of today's calendar day, rotating first
// when no item exists for that day yet.
func (s *FeaturedService) GetFeaturedDrink(ctx context.Context, today time.Time) (*entity.Drink, error) {
	item, err := s.featuredRepo.GetForDay(ctx, entity.DayOf(today))
	switch {
	case errors.Is(err, repository.ErrFeaturedNotFound):
		item, err = s.rotateIfStale(ctx, today)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("failed to get featured item: %w", err)
	}

	drink, err := s.drinkRepo.GetByID(ctx, item.DrinkID)
	if err != nil {
		if errors.Is(err, repository.ErrDrinkNotFound) {
			return nil, fmt.Errorf("%w: drink %d", ErrFeaturedDrinkMissing, item.DrinkID)
		}
		return nil, fmt.Errorf("failed to get featured drink %d: %w", item.DrinkID, err)
	}
	return drink, nil
}

// ForceRotate replaces today's item even if one exists.
func (s *FeaturedService) ForceRotate(ctx context.Context, today time.Time) (*entity.FeaturedItem, error) {
	release, err := s.locker.LockDay(ctx, entity.DayOf(today))
	if err != nil {
		return nil, fmt.Errorf("failed to lock featured rotation: %w", err)
	}
	defer release()

	return s.Rotate(ctx, today)
}

// rotateIfStale rotates under the day lock. Another replica may have rotated
// while we waited, so the day is checked again once the lock is held.
func (s *FeaturedService) rotateIfStale(ctx context.Context, today time.Time) (*entity.FeaturedItem, error) {
	day := entity.DayOf(today)

	release, err := s.locker.LockDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to lock featured rotation: %w", err)
	}
	defer release()

	item, err := s.featuredRepo.GetForDay(ctx, day)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, repository.ErrFeaturedNotFound) {
		return nil, fmt.Errorf("failed to get featured item: %w", err)
	}

	return s.Rotate(ctx, today)
}

// Rotate picks the winner of the votes cast since the start of yesterday,
// or a uniformly random drink when there are none, and makes it the only
// featured item.
func (s *FeaturedService) Rotate(ctx context.Context, today time.Time) (*entity.FeaturedItem, error) {
	day := entity.DayOf(today)

	drinkID, ok, err := s.votes.TopVotedDrink(ctx, entity.PreviousDay(today))
	if err != nil {
		return nil, fmt.Errorf("failed to rotate featured drink for %s: %w", day.Format(time.DateOnly), err)
	}

	source := entity.SelectionSourceVotes
	if !ok {
		drinks, err := s.drinkRepo.GetAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog for random featured drink: %w", err)
		}
		if len(drinks) == 0 {
			return nil, ErrEmptyCatalog
		}
		drinkID = drinks[s.picker.IntN(len(drinks))].ID
		source = entity.SelectionSourceRandom
	}

	item := &entity.FeaturedItem{DrinkID: drinkID, Day: day}
	if err := s.featuredRepo.Replace(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to store featured drink %d: %w", drinkID, err)
	}

	metrics.FeaturedRotations.WithLabelValues(source).Inc()
	logger.Info().
		Int64("drink_id", drinkID).
		Str("day", day.Format(time.DateOnly)).
		Str("source", source).
		Msg("featured drink rotated")

	publishEvent(ctx, s.publisher, entity.DrinkEvent{
		EventType: entity.EventTypeFeaturedRotated,
		DrinkID:   drinkID,
		Source:    source,
		Day:       day.Format(time.DateOnly),
		Timestamp: time.Now(),
	})

	return item, nil
}
