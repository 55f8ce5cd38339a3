package repository

import (
	"context"
	"errors"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/pkg/metrics"

	"gorm.io/gorm"
)

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// GetByDrinkID returns every rating of the drink, active or not.
func (r *ratingRepository) GetByDrinkID(ctx context.Context, drinkID int64) ([]entity.Rating, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "ratings")

	var ratings []entity.Rating
	err := r.db.WithContext(ctx).Where("drink_id = ?", drinkID).Order("id ASC").Find(&ratings).Error
	timer.ObserveDuration(err)

	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id int64) (*entity.Rating, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "ratings")

	var rating entity.Rating
	result := r.db.WithContext(ctx).First(&rating, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			timer.ObserveDuration(nil)
			return nil, ErrRatingNotFound
		}
		timer.ObserveDuration(result.Error)
		return nil, result.Error
	}
	timer.ObserveDuration(nil)

	return &rating, nil
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "ratings")

	err := r.db.WithContext(ctx).Create(rating).Error
	timer.ObserveDuration(err)

	return err
}

// Update writes every column of rating. is_active is listed explicitly so a
// false value is stored rather than skipped as a zero value.
func (r *ratingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "ratings")

	result := r.db.WithContext(ctx).Model(&entity.Rating{}).Where("id = ?", rating.ID).Updates(map[string]interface{}{
		"drink_id":  rating.DrinkID,
		"user_id":   rating.UserID,
		"value":     rating.Value,
		"date":      rating.Date,
		"is_active": rating.IsActive,
	})
	timer.ObserveDuration(result.Error)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, id int64) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "ratings")

	result := r.db.WithContext(ctx).Delete(&entity.Rating{}, "id = ?", id)
	timer.ObserveDuration(result.Error)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}
