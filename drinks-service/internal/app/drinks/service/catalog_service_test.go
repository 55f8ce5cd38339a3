package service

import (
	"context"
	"errors"
	"testing"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/drinks-service/internal/app/drinks/repository"
	"drinkcatalog/drinks-service/internal/app/drinks/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSearchDrinks_FiltersLoadedCatalog(t *testing.T) {
	drinkRepo := new(mocks.MockDrinkRepository)
	service := NewCatalogService(drinkRepo)
	ctx := context.Background()

	drinkRepo.On("GetAll", ctx).Return(testCatalog(), nil).Once()

	result, err := service.SearchDrinks(ctx, entity.DrinkFilter{BrandNames: []string{"Duvel"}})

	assert.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(result))
	drinkRepo.AssertExpectations(t)
}

func TestSearchDrinks_RepoError(t *testing.T) {
	drinkRepo := new(mocks.MockDrinkRepository)
	service := NewCatalogService(drinkRepo)
	ctx := context.Background()

	drinkRepo.On("GetAll", ctx).Return(nil, errors.New("connection refused"))

	result, err := service.SearchDrinks(ctx, entity.DrinkFilter{})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to load catalog")
}

func TestGetDrink_NotFound(t *testing.T) {
	drinkRepo := new(mocks.MockDrinkRepository)
	service := NewCatalogService(drinkRepo)
	ctx := context.Background()

	drinkRepo.On("GetByID", ctx, int64(9)).Return(nil, repository.ErrDrinkNotFound)

	result, err := service.GetDrink(ctx, 9)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, result)
}

func TestCreateDrink_Success(t *testing.T) {
	drinkRepo := new(mocks.MockDrinkRepository)
	service := NewCatalogService(drinkRepo)
	ctx := context.Background()

	drinkRepo.On("GetBrands", ctx).Return([]entity.Brand{{ID: 2, Name: "Duvel"}}, nil)
	drinkRepo.On("GetCategories", ctx).Return([]entity.Category{{ID: 1, Name: "IPA"}, {ID: 2, Name: "Stout"}}, nil)
	drinkRepo.On("Create", ctx, mock.AnythingOfType("*entity.Drink")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Drink).ID = 77
	})

	drink, err := service.CreateDrink(ctx, &entity.CreateDrinkRequest{
		Name:           "Duvel Tripel Hop",
		AlcoholContent: 9.5,
		BrandID:        2,
		CategoryIDs:    []int64{1, 1, 2},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(77), drink.ID)
	assert.Equal(t, "Duvel", drink.Brand.Name)
	assert.Len(t, drink.Categories, 2)
}

func TestCreateDrink_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown brand", func(t *testing.T) {
		drinkRepo := new(mocks.MockDrinkRepository)
		drinkRepo.On("GetBrands", ctx).Return([]entity.Brand{{ID: 2, Name: "Duvel"}}, nil)

		_, err := NewCatalogService(drinkRepo).CreateDrink(ctx, &entity.CreateDrinkRequest{Name: "x", BrandID: 5})

		assert.ErrorIs(t, err, ErrUnknownBrand)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("unknown category", func(t *testing.T) {
		drinkRepo := new(mocks.MockDrinkRepository)
		drinkRepo.On("GetBrands", ctx).Return([]entity.Brand{{ID: 2, Name: "Duvel"}}, nil)
		drinkRepo.On("GetCategories", ctx).Return([]entity.Category{{ID: 1, Name: "IPA"}}, nil)

		_, err := NewCatalogService(drinkRepo).CreateDrink(ctx, &entity.CreateDrinkRequest{Name: "x", BrandID: 2, CategoryIDs: []int64{3}})

		assert.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("alcohol out of range", func(t *testing.T) {
		drinkRepo := new(mocks.MockDrinkRepository)
		drinkRepo.On("GetBrands", ctx).Return([]entity.Brand{{ID: 2, Name: "Duvel"}}, nil)

		_, err := NewCatalogService(drinkRepo).CreateDrink(ctx, &entity.CreateDrinkRequest{Name: "x", BrandID: 2, AlcoholContent: 101})

		assert.ErrorIs(t, err, ErrInvalidArgument)
		drinkRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
