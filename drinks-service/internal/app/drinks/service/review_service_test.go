package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/drinks-service/internal/app/drinks/repository"
	"drinkcatalog/drinks-service/internal/app/drinks/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newReviewFixture() (*ReviewService, *mocks.MockReviewRepository, *mocks.MockRatingRepository) {
	reviewRepo := new(mocks.MockReviewRepository)
	ratingRepo := new(mocks.MockRatingRepository)
	s := NewReviewService(reviewRepo, ratingRepo, nil)
	s.now = func() time.Time { return fixedNow }
	return s, reviewRepo, ratingRepo
}

func TestReviewValidate(t *testing.T) {
	service, _, _ := newReviewFixture()

	assert.True(t, service.Validate("Crisp and bitter."))
	assert.True(t, service.Validate(strings.Repeat("a", 500)))
	assert.True(t, service.Validate(strings.Repeat("é", 500)))
	assert.False(t, service.Validate(strings.Repeat("a", 501)))
	assert.False(t, service.Validate("   "))
	assert.False(t, service.Validate("\t\n"))
	assert.False(t, service.Validate(""))
}

func TestAddReview_ActivatesAndStamps(t *testing.T) {
	service, reviewRepo, ratingRepo := newReviewFixture()
	ctx := context.Background()
	oid := primitive.NewObjectID()

	ratingRepo.On("GetByID", ctx, int64(4)).Return(&entity.Rating{ID: 4, DrinkID: 2}, nil)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*entity.Review")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Review).ID = oid
	})

	review, err := service.Add(ctx, entity.ReviewInput{
		RatingID:     4,
		UserID:       9,
		Content:      strings.Repeat("a", 500),
		CreationDate: entity.Some(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)),
		IsActive:     entity.Some(false),
	})

	require.NoError(t, err)
	assert.Equal(t, oid, review.ID)
	assert.True(t, review.IsActive)
	assert.Equal(t, fixedNow, review.CreationDate)
}

func TestAddReview_InvalidContent(t *testing.T) {
	for _, content := range []string{strings.Repeat("a", 501), "   "} {
		service, reviewRepo, ratingRepo := newReviewFixture()

		review, err := service.Add(context.Background(), entity.ReviewInput{RatingID: 4, Content: content})

		assert.ErrorIs(t, err, ErrInvalidReview)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Nil(t, review)
		ratingRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestAddReview_UnknownRating(t *testing.T) {
	service, reviewRepo, ratingRepo := newReviewFixture()
	ctx := context.Background()

	ratingRepo.On("GetByID", ctx, int64(4)).Return(nil, repository.ErrRatingNotFound)

	_, err := service.Add(ctx, entity.ReviewInput{RatingID: 4, Content: "nice"})

	assert.ErrorIs(t, err, ErrRatingNotFound)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddReview_PublishesWithDrinkKey(t *testing.T) {
	reviewRepo := new(mocks.MockReviewRepository)
	ratingRepo := new(mocks.MockRatingRepository)
	publisher := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	service := NewReviewService(reviewRepo, ratingRepo, publisher)
	ctx := context.Background()

	ratingRepo.On("GetByID", ctx, int64(4)).Return(&entity.Rating{ID: 4, DrinkID: 2}, nil)
	reviewRepo.On("Create", ctx, mock.Anything).Return(nil)
	publisher.On("PublishMessage", ctx, "2", mock.Anything).Return(nil)

	_, err := service.Add(ctx, entity.ReviewInput{RatingID: 4, Content: "nice"})

	require.NoError(t, err)
	publisher.AssertExpectations(t)
	assert.Contains(t, string(publisher.Messages[0]), `"event_type":"REVIEW_ADDED"`)
}

func TestUpdateReview_SparsePatch(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	id := primitive.NewObjectID()

	stored := func() *entity.Review {
		return &entity.Review{ID: id, RatingID: 1, UserID: 1, Content: "old", CreationDate: created, IsActive: true}
	}

	t.Run("absent fields retained", func(t *testing.T) {
		service, reviewRepo, ratingRepo := newReviewFixture()
		reviewRepo.On("GetByID", ctx, id.Hex()).Return(stored(), nil)
		ratingRepo.On("GetByID", ctx, int64(2)).Return(&entity.Rating{ID: 2}, nil)
		reviewRepo.On("Update", ctx, mock.Anything).Return(nil)

		review, err := service.Update(ctx, entity.ReviewInput{ID: id.Hex(), RatingID: 2, UserID: 1, Content: "new"})

		require.NoError(t, err)
		assert.Equal(t, int64(2), review.RatingID)
		assert.Equal(t, int64(1), review.UserID)
		assert.Equal(t, "new", review.Content)
		assert.Equal(t, created, review.CreationDate)
		assert.True(t, review.IsActive)
	})

	t.Run("present fields overwrite", func(t *testing.T) {
		service, reviewRepo, ratingRepo := newReviewFixture()
		reviewRepo.On("GetByID", ctx, id.Hex()).Return(stored(), nil)
		ratingRepo.On("GetByID", ctx, int64(1)).Return(&entity.Rating{ID: 1}, nil)
		reviewRepo.On("Update", ctx, mock.Anything).Return(nil)

		review, err := service.Update(ctx, entity.ReviewInput{
			ID:           id.Hex(),
			RatingID:     1,
			UserID:       1,
			Content:      "new",
			CreationDate: entity.Some(fixedNow),
			IsActive:     entity.Some(false),
		})

		require.NoError(t, err)
		assert.Equal(t, fixedNow, review.CreationDate)
		assert.False(t, review.IsActive)
	})
}

func TestUpdateReview_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid content", func(t *testing.T) {
		service, reviewRepo, _ := newReviewFixture()
		_, err := service.Update(ctx, entity.ReviewInput{ID: "x", Content: " "})

		assert.ErrorIs(t, err, ErrInvalidReview)
		reviewRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("missing review", func(t *testing.T) {
		service, reviewRepo, _ := newReviewFixture()
		reviewRepo.On("GetByID", ctx, "abc").Return(nil, repository.ErrReviewNotFound)

		_, err := service.Update(ctx, entity.ReviewInput{ID: "abc", Content: "fine"})

		assert.ErrorIs(t, err, ErrReviewNotFound)
	})

	t.Run("another user's review", func(t *testing.T) {
		service, reviewRepo, ratingRepo := newReviewFixture()
		reviewRepo.On("GetByID", ctx, "abc").Return(&entity.Review{RatingID: 1, UserID: 1, Content: "mine"}, nil)

		_, err := service.Update(ctx, entity.ReviewInput{ID: "abc", RatingID: 1, UserID: 9, Content: "taken"})

		assert.ErrorIs(t, err, ErrNotReviewOwner)
		ratingRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("unknown rating", func(t *testing.T) {
		service, reviewRepo, ratingRepo := newReviewFixture()
		reviewRepo.On("GetByID", ctx, "abc").Return(&entity.Review{RatingID: 1, UserID: 1, Content: "mine"}, nil)
		ratingRepo.On("GetByID", ctx, int64(42)).Return(nil, repository.ErrRatingNotFound)

		_, err := service.Update(ctx, entity.ReviewInput{ID: "abc", RatingID: 42, UserID: 1, Content: "moved"})

		assert.ErrorIs(t, err, ErrRatingNotFound)
		reviewRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()

	t.Run("existing", func(t *testing.T) {
		service, reviewRepo, _ := newReviewFixture()
		reviewRepo.On("GetByID", ctx, "abc").Return(&entity.Review{UserID: 5}, nil)
		reviewRepo.On("Delete", ctx, "abc").Return(nil)

		assert.NoError(t, service.Delete(ctx, "abc", 5))
		reviewRepo.AssertExpectations(t)
	})

	t.Run("missing", func(t *testing.T) {
		service, reviewRepo, _ := newReviewFixture()
		reviewRepo.On("GetByID", ctx, "abc").Return(nil, repository.ErrReviewNotFound)

		assert.ErrorIs(t, service.Delete(ctx, "abc", 5), ErrReviewNotFound)
		reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("another user's review", func(t *testing.T) {
		service, reviewRepo, _ := newReviewFixture()
		reviewRepo.On("GetByID", ctx, "abc").Return(&entity.Review{UserID: 5}, nil)

		assert.ErrorIs(t, service.Delete(ctx, "abc", 9), ErrForbidden)
		reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("store error", func(t *testing.T) {
		service, reviewRepo, _ := newReviewFixture()
		reviewRepo.On("GetByID", ctx, "abc").Return(&entity.Review{UserID: 5}, nil)
		reviewRepo.On("Delete", ctx, "abc").Return(errors.New("network"))

		err := service.Delete(ctx, "abc", 5)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}
