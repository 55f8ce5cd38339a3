package repository

import (
	"context"
	"errors"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/pkg/metrics"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type drinkRepository struct {
	db *gorm.DB
}

func NewDrinkRepository(db *gorm.DB) DrinkRepository {
	return &drinkRepository{db: db}
}

// GetAll loads the whole catalog in id order.
func (r *drinkRepository) GetAll(ctx context.Context) ([]entity.Drink, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "drinks")

	var drinks []entity.Drink
	result := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Categories").
		Order("id ASC").
		Find(&drinks)
	timer.ObserveDuration(result.Error)

	if result.Error != nil {
		return nil, result.Error
	}
	return drinks, nil
}

func (r *drinkRepository) GetByID(ctx context.Context, id int64) (*entity.Drink, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "drinks")

	var drink entity.Drink
	result := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Categories").
		First(&drink, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			timer.ObserveDuration(nil)
			return nil, ErrDrinkNotFound
		}
		timer.ObserveDuration(result.Error)
		return nil, result.Error
	}
	timer.ObserveDuration(nil)

	return &drink, nil
}

// Create inserts the drink and its category links. Brand and category rows
// must already exist; they are never written from here.
func (r *drinkRepository) Create(ctx context.Context, drink *entity.Drink) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "drinks")

	err := r.db.WithContext(ctx).
		Omit("Brand", "Categories.*").
		Create(drink).Error
	timer.ObserveDuration(err)

	return mapConstraintError(err)
}

func (r *drinkRepository) GetBrands(ctx context.Context) ([]entity.Brand, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "brands")

	var brands []entity.Brand
	err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error
	timer.ObserveDuration(err)

	if err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *drinkRepository) GetCategories(ctx context.Context) ([]entity.Category, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "categories")

	var categories []entity.Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	timer.ObserveDuration(err)

	if err != nil {
		return nil, err
	}
	return categories, nil
}

func mapConstraintError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
		return ErrForeignKey
	}
	return err
}
