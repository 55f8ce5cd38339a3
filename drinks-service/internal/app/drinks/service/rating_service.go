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

const (
	MinRatingValue = 0.0
	MaxRatingValue = 5.0
)

// RatingService validates, stores and averages drink ratings.
type RatingService struct {
	ratingRepo repository.RatingRepository
	publisher  util.MessagePublisher
	activeOnly bool
	now        func() time.Time
}

// NewRatingService builds the service. With activeOnly set, AverageFor
// ignores inactive ratings.
func NewRatingService(ratingRepo repository.RatingRepository, publisher util.MessagePublisher, activeOnly bool) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		publisher:  publisher,
		activeOnly: activeOnly,
		now:        time.Now,
	}
}

// Validate reports whether value is present and within [0, 5].
func (s *RatingService) Validate(value *float64) bool {
	return value != nil && *value >= MinRatingValue && *value <= MaxRatingValue
}

func (s *RatingService) Create(ctx context.Context, in entity.RatingInput) (*entity.Rating, error) {
	if !s.Validate(in.Value) {
		metrics.ValidationFailures.WithLabelValues("rating").Inc()
		return nil, ErrInvalidRating
	}

	value := *in.Value
	rating := &entity.Rating{
		DrinkID:  in.DrinkID,
		UserID:   in.UserID,
		Value:    &value,
		Date:     in.Date.OrElse(s.now()),
		IsActive: in.IsActive.OrElse(true),
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to create rating for drink %d: %w", in.DrinkID, err)
	}

	metrics.RatingsCreated.Inc()
	metrics.RatingValues.Observe(value)
	publishEvent(ctx, s.publisher, entity.DrinkEvent{
		EventType: entity.EventTypeRatingCreated,
		DrinkID:   rating.DrinkID,
		UserID:    rating.UserID,
		RatingID:  rating.ID,
		Value:     rating.Value,
		Timestamp: s.now(),
	})

	return rating, nil
}

// Update overwrites drink and value of a rating owned by in.UserID. Date and
// active flag change only when the input carries them.
func (s *RatingService) Update(ctx context.Context, in entity.RatingInput) (*entity.Rating, error) {
	if !s.Validate(in.Value) {
		metrics.ValidationFailures.WithLabelValues("rating").Inc()
		return nil, ErrInvalidRating
	}

	rating, err := s.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if rating.UserID != in.UserID {
		return nil, ErrNotRatingOwner
	}

	value := *in.Value
	rating.DrinkID = in.DrinkID
	rating.UserID = in.UserID
	rating.Value = &value
	rating.Date = in.Date.OrElse(rating.Date)
	rating.IsActive = in.IsActive.OrElse(rating.IsActive)

	if err := s.ratingRepo.Update(ctx, rating); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to update rating %d: %w", in.ID, err)
	}

	return rating, nil
}

// AverageFor is the arithmetic mean of the drink's rating values, or 0 when
// there is nothing to average.
func (s *RatingService) AverageFor(ctx context.Context, drinkID int64) (float64, error) {
	ratings, err := s.ratingRepo.GetByDrinkID(ctx, drinkID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average rating for drink %d: %w", drinkID, err)
	}

	var sum float64
	var n int
	for _, r := range ratings {
		if r.Value == nil || (s.activeOnly && !r.IsActive) {
			continue
		}
		sum += *r.Value
		n++
	}

	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func (s *RatingService) Get(ctx context.Context, id int64) (*entity.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to get rating %d: %w", id, err)
	}
	return rating, nil
}

func (s *RatingService) ListForDrink(ctx context.Context, drinkID int64) ([]entity.Rating, error) {
	ratings, err := s.ratingRepo.GetByDrinkID(ctx, drinkID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for drink %d: %w", drinkID, err)
	}
	return ratings, nil
}

// Delete removes a rating owned by userID.
func (s *RatingService) Delete(ctx context.Context, id, userID int64) error {
	rating, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if rating.UserID != userID {
		return ErrNotRatingOwner
	}

	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return ErrRatingNotFound
		}
		return fmt.Errorf("failed to delete rating %d: %w", id, err)
	}
	return nil
}
