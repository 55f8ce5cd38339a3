package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/drinks-service/internal/app/drinks/repository"
	"drinkcatalog/drinks-service/internal/app/drinks/util"
	"drinkcatalog/pkg/metrics"
)

const MaxReviewLength = 500

// ReviewService validates and stores reviews attached to ratings.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	ratingRepo repository.RatingRepository
	publisher  util.MessagePublisher
	now        func() time.Time
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	ratingRepo repository.RatingRepository,
	publisher util.MessagePublisher,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		ratingRepo: ratingRepo,
		publisher:  publisher,
		now:        time.Now,
	}
}

// Validate reports whether content is non-blank and at most 500 characters.
func (s *ReviewService) Validate(content string) bool {
	return strings.TrimSpace(content) != "" && utf8.RuneCountInString(content) <= MaxReviewLength
}

// Add stores a new, active review stamped with the current time. Caller
// supplied date and active flag are ignored.
func (s *ReviewService) Add(ctx context.Context, in entity.ReviewInput) (*entity.Review, error) {
	if !s.Validate(in.Content) {
		metrics.ValidationFailures.WithLabelValues("review").Inc()
		return nil, ErrInvalidReview
	}

	rating, err := s.rating(ctx, in.RatingID)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		RatingID:     in.RatingID,
		UserID:       in.UserID,
		Content:      in.Content,
		CreationDate: s.now(),
		IsActive:     true,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to add review for rating %d: %w", in.RatingID, err)
	}

	metrics.ReviewsAdded.Inc()
	publishEvent(ctx, s.publisher, entity.DrinkEvent{
		EventType: entity.EventTypeReviewAdded,
		DrinkID:   rating.DrinkID,
		UserID:    review.UserID,
		RatingID:  review.RatingID,
		ReviewID:  review.ID.Hex(),
		Timestamp: review.CreationDate,
	})

	return review, nil
}

// Update replaces rating and content of a review owned by in.UserID. The new
// rating must exist. Creation date and active flag change only when the input
// carries them.
func (s *ReviewService) Update(ctx context.Context, in entity.ReviewInput) (*entity.Review, error) {
	if !s.Validate(in.Content) {
		metrics.ValidationFailures.WithLabelValues("review").Inc()
		return nil, ErrInvalidReview
	}

	review, err := s.get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if review.UserID != in.UserID {
		return nil, ErrNotReviewOwner
	}
	if _, err := s.rating(ctx, in.RatingID); err != nil {
		return nil, err
	}

	review.RatingID = in.RatingID
	review.UserID = in.UserID
	review.Content = in.Content
	review.CreationDate = in.CreationDate.OrElse(review.CreationDate)
	review.IsActive = in.IsActive.OrElse(review.IsActive)

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review %s: %w", in.ID, err)
	}

	return review, nil
}

// Delete removes a review owned by userID.
func (s *ReviewService) Delete(ctx context.Context, id string, userID int64) error {
	review, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	return nil
}

func (s *ReviewService) ListForRating(ctx context.Context, ratingID int64) ([]entity.Review, error) {
	reviews, err := s.reviewRepo.GetByRatingID(ctx, ratingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for rating %d: %w", ratingID, err)
	}
	return reviews, nil
}

func (s *ReviewService) get(ctx context.Context, id string) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review %s: %w", id, err)
	}
	return review, nil
}

func (s *ReviewService) rating(ctx context.Context, id int64) (*entity.Rating, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to get rating %d: %w", id, err)
	}
	return rating, nil
}
