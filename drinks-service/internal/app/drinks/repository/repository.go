package repository

import (
	"context"
	"errors"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
)

const serviceName = "drinks-service"

var (
	ErrDrinkNotFound    = errors.New("drink not found")
	ErrVoteNotFound     = errors.New("vote not found")
	ErrFeaturedNotFound = errors.New("featured item not found")
	ErrRatingNotFound   = errors.New("rating not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrForeignKey       = errors.New("foreign key violation")
)

// DrinkRepository reads the catalog. Drinks are returned with brand and
// categories loaded.
type DrinkRepository interface {
	GetAll(ctx context.Context) ([]entity.Drink, error)
	GetByID(ctx context.Context, id int64) (*entity.Drink, error)
	Create(ctx context.Context, drink *entity.Drink) error
	GetBrands(ctx context.Context) ([]entity.Brand, error)
	GetCategories(ctx context.Context) ([]entity.Category, error)
}

// VoteRepository is the ballot ledger.
type VoteRepository interface {
	GetSince(ctx context.Context, since time.Time) ([]entity.Vote, error)
	// UpsertForUserDay inserts the user's ballot for DayOf(now) or, when one
	// already exists, points it at drinkID. It is a single statement.
	UpsertForUserDay(ctx context.Context, userID, drinkID int64, now time.Time) (*entity.Vote, error)
	GetForUserDay(ctx context.Context, userID int64, day time.Time) (*entity.Vote, error)
}

type FeaturedRepository interface {
	GetForDay(ctx context.Context, day time.Time) (*entity.FeaturedItem, error)
	// Replace removes every featured row and stores item, atomically.
	Replace(ctx context.Context, item *entity.FeaturedItem) error
}

type RatingRepository interface {
	GetByDrinkID(ctx context.Context, drinkID int64) ([]entity.Rating, error)
	GetByID(ctx context.Context, id int64) (*entity.Rating, error)
	Create(ctx context.Context, rating *entity.Rating) error
	Update(ctx context.Context, rating *entity.Rating) error
	Delete(ctx context.Context, id int64) error
}

type ReviewRepository interface {
	GetByRatingID(ctx context.Context, ratingID int64) ([]entity.Review, error)
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	Create(ctx context.Context, review *entity.Review) error
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error
}
