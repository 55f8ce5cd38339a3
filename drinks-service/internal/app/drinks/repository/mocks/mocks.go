package mocks

import (
	"context"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"

	"github.com/stretchr/testify/mock"
)

// MockDrinkRepository is a testify mock of repository.DrinkRepository.
type MockDrinkRepository struct {
	mock.Mock
}

func (m *MockDrinkRepository) GetAll(ctx context.Context) ([]entity.Drink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Drink), args.Error(1)
}

func (m *MockDrinkRepository) GetByID(ctx context.Context, id int64) (*entity.Drink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Drink), args.Error(1)
}

func (m *MockDrinkRepository) Create(ctx context.Context, drink *entity.Drink) error {
	args := m.Called(ctx, drink)
	return args.Error(0)
}

func (m *MockDrinkRepository) GetBrands(ctx context.Context) ([]entity.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Brand), args.Error(1)
}

func (m *MockDrinkRepository) GetCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) GetSince(ctx context.Context, since time.Time) ([]entity.Vote, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Vote), args.Error(1)
}

func (m *MockVoteRepository) UpsertForUserDay(ctx context.Context, userID, drinkID int64, now time.Time) (*entity.Vote, error) {
	args := m.Called(ctx, userID, drinkID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Vote), args.Error(1)
}

func (m *MockVoteRepository) GetForUserDay(ctx context.Context, userID int64, day time.Time) (*entity.Vote, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Vote), args.Error(1)
}

type MockFeaturedRepository struct {
	mock.Mock
}

func (m *MockFeaturedRepository) GetForDay(ctx context.Context, day time.Time) (*entity.FeaturedItem, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FeaturedItem), args.Error(1)
}

func (m *MockFeaturedRepository) Replace(ctx context.Context, item *entity.FeaturedItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) GetByDrinkID(ctx context.Context, drinkID int64) ([]entity.Rating, error) {
	args := m.Called(ctx, drinkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetByID(ctx context.Context, id int64) (*entity.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) GetByRatingID(ctx context.Context, ratingID int64) ([]entity.Review, error) {
	args := m.Called(ctx, ratingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMessagePublisher records every published payload in Messages.
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockDayLocker returns the release func configured with Return.
type MockDayLocker struct {
	mock.Mock
}

func (m *MockDayLocker) LockDay(ctx context.Context, day time.Time) (func(), error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}
