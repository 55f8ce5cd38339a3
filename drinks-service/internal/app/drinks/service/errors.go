package service

import (
	"errors"
	"fmt"
)

// Error classes. Handlers map them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrInvariant       = errors.New("invariant violated")
	ErrForbidden       = errors.New("forbidden")
)

var (
	ErrInvalidRating   = fmt.Errorf("%w: rating value must be between 0 and 5", ErrInvalidArgument)
	ErrInvalidReview   = fmt.Errorf("%w: review content must be non-blank and at most 500 characters", ErrInvalidArgument)
	ErrInvalidDrink    = fmt.Errorf("%w: invalid drink", ErrInvalidArgument)
	ErrUnknownBrand    = fmt.Errorf("%w: unknown brand", ErrInvalidArgument)
	ErrUnknownCategory = fmt.Errorf("%w: unknown category", ErrInvalidArgument)

	ErrDrinkNotFound  = fmt.Errorf("drink %w", ErrNotFound)
	ErrVoteNotFound   = fmt.Errorf("vote %w", ErrNotFound)
	ErrRatingNotFound = fmt.Errorf("rating %w", ErrNotFound)
	ErrReviewNotFound = fmt.Errorf("review %w", ErrNotFound)

	ErrNotRatingOwner = fmt.Errorf("%w: rating belongs to another user", ErrForbidden)
	ErrNotReviewOwner = fmt.Errorf("%w: review belongs to another user", ErrForbidden)

	ErrEmptyCatalog         = fmt.Errorf("%w: catalog has no drinks to feature", ErrInvariant)
	ErrFeaturedDrinkMissing = fmt.Errorf("%w: featured drink does not exist", ErrInvariant)
)
