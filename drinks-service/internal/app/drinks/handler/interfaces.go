package handler

import (
	"context"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
)

type CatalogServiceInterface interface {
	SearchDrinks(ctx context.Context, f entity.DrinkFilter) ([]entity.Drink, error)
	GetDrink(ctx context.Context, id int64) (*entity.Drink, error)
	CreateDrink(ctx context.Context, req *entity.CreateDrinkRequest) (*entity.Drink, error)
	ListBrands(ctx context.Context) ([]entity.Brand, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
}

type VotingServiceInterface interface {
	CastVote(ctx context.Context, userID, drinkID int64, now time.Time) error
	VoteOfUserForDay(ctx context.Context, userID int64, day time.Time) (*entity.Vote, error)
}

type FeaturedServiceInterface interface {
	GetFeaturedDrink(ctx context.Context, today time.Time) (*entity.Drink, error)
	ForceRotate(ctx context.Context, today time.Time) (*entity.FeaturedItem, error)
}

type RatingServiceInterface interface {
	Create(ctx context.Context, in entity.RatingInput) (*entity.Rating, error)
	Update(ctx context.Context, in entity.RatingInput) (*entity.Rating, error)
	Delete(ctx context.Context, id, userID int64) error
	ListForDrink(ctx context.Context, drinkID int64) ([]entity.Rating, error)
	AverageFor(ctx context.Context, drinkID int64) (float64, error)
}

type ReviewServiceInterface interface {
	Add(ctx context.Context, in entity.ReviewInput) (*entity.Review, error)
	Update(ctx context.Context, in entity.ReviewInput) (*entity.Review, error)
	Delete(ctx context.Context, id string, userID int64) error
	ListForRating(ctx context.Context, ratingID int64) ([]entity.Review, error)
}
