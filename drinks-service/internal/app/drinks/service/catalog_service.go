package service

import (
	"context"
	"errors"
	"fmt"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/drinks-service/internal/app/drinks/repository"
)

// CatalogService reads the drink catalog and runs catalog queries over it.
type CatalogService struct {
	drinkRepo repository.DrinkRepository
}

func NewCatalogService(drinkRepo repository.DrinkRepository) *CatalogService {
	return &CatalogService{drinkRepo: drinkRepo}
}

// SearchDrinks loads the catalog once and filters it in memory.
func (s *CatalogService) SearchDrinks(ctx context.Context, f entity.DrinkFilter) ([]entity.Drink, error) {
	drinks, err := s.drinkRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return QueryDrinks(drinks, f), nil
}

func (s *CatalogService) GetDrink(ctx context.Context, id int64) (*entity.Drink, error) {
	drink, err := s.drinkRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDrinkNotFound) {
			return nil, ErrDrinkNotFound
		}
		return nil, fmt.Errorf("failed to get drink %d: %w", id, err)
	}
	return drink, nil
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]entity.Brand, error) {
	brands, err := s.drinkRepo.GetBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.drinkRepo.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateDrink adds a drink under an existing brand and existing categories.
func (s *CatalogService) CreateDrink(ctx context.Context, req *entity.CreateDrinkRequest) (*entity.Drink, error) {
	brands, err := s.drinkRepo.GetBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	brand, ok := findBrand(brands, req.BrandID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBrand, req.BrandID)
	}

	var categories []entity.Category
	if len(req.CategoryIDs) > 0 {
		all, err := s.drinkRepo.GetCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		byID := make(map[int64]entity.Category, len(all))
		for _, c := range all {
			byID[c.ID] = c
		}
		seen := make(map[int64]bool, len(req.CategoryIDs))
		for _, id := range req.CategoryIDs {
			c, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, id)
			}
			if !seen[id] {
				seen[id] = true
				categories = append(categories, c)
			}
		}
	}

	drink, err := entity.NewDrink(req.Name, req.ImageURL, req.AlcoholContent, brand, categories)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDrink, err)
	}

	if err := s.drinkRepo.Create(ctx, drink); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, fmt.Errorf("%w: %d", ErrUnknownBrand, req.BrandID)
		}
		return nil, fmt.Errorf("failed to create drink: %w", err)
	}

	return drink, nil
}

func findBrand(brands []entity.Brand, id int64) (entity.Brand, bool) {
	for _, b := range brands {
		if b.ID == id {
			return b, true
		}
	}
	return entity.Brand{}, false
}
