package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drinkcatalog/drinks-service/internal/app/drinks/entity"
	"drinkcatalog/pkg/logger"
	"drinkcatalog/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository ensures the rating_id index exists on the reviews collection.
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection("reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "rating_id", Value: 1}},
		Options: options.Index().SetName("rating_id_idx"),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn().Err(err).Msg("failed to create index on rating_id")
	}

	return &reviewRepository{collection: collection}
}

func (r *reviewRepository) GetByRatingID(ctx context.Context, ratingID int64) ([]entity.Review, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "reviews")

	opts := options.Find().SetSort(bson.D{{Key: "creation_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"rating_id": ratingID}, opts)
	if err != nil {
		timer.ObserveDuration(err)
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []entity.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		timer.ObserveDuration(err)
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	timer.ObserveDuration(nil)

	return reviews, nil
}

// GetByID treats a malformed hex id as a missing review.
func (r *reviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrReviewNotFound
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "reviews")

	var review entity.Review
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			timer.ObserveDuration(nil)
			return nil, ErrReviewNotFound
		}
		timer.ObserveDuration(err)
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	timer.ObserveDuration(nil)

	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "reviews")

	result, err := r.collection.InsertOne(ctx, review)
	timer.ObserveDuration(err)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, "reviews")

	update := bson.M{
		"$set": bson.M{
			"rating_id":     review.RatingID,
			"user_id":       review.UserID,
			"content":       review.Content,
			"creation_date": review.CreationDate,
			"is_active":     review.IsActive,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": review.ID}, update)
	timer.ObserveDuration(err)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrReviewNotFound
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "reviews")

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	timer.ObserveDuration(err)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}
