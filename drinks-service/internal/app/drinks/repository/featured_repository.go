package repository

import (
	"context"
	"errors"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/pkg/metrics"

	"gorm.io/gorm"
)

type featuredRepository struct {
	db *gorm.DB
}

func NewFeaturedRepository(db *gorm.DB) FeaturedRepository {
	return &featuredRepository{db: db}
}

func (r *featuredRepository) GetForDay(ctx context.Context, day time.Time) (*entity.FeaturedItem, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "featured_items")

	var item entity.FeaturedItem
	result := r.db.WithContext(ctx).Where("day = ?", day).Take(&item)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			timer.ObserveDuration(nil)
			return nil, ErrFeaturedNotFound
		}
		timer.ObserveDuration(result.Error)
		return nil, result.Error
	}
	timer.ObserveDuration(nil)

	return &item, nil
}

// Replace deletes all featured rows, including duplicates and rows of past
// days, then inserts item. Both statements share one transaction.
func (r *featuredRepository) Replace(ctx context.Context, item *entity.FeaturedItem) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpsert, "featured_items")

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.FeaturedItem{}).Error; err != nil {
			return err
		}
		return tx.Create(item).Error
	})
	timer.ObserveDuration(err)

	return err
}
