package repository

import (
	"context"
	"time"

	"simpleshop/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type reviewRepository struct {
	docs documents[models.Review]
}

func NewReviewRepository(coll *mongo.Collection, timeout time.Duration) ReviewRepository {
	return &reviewRepository{docs: newDocuments[models.Review](coll, timeout)}
}

func (r *reviewRepository) List(ctx context.Context) ([]models.Review, error) {
	return r.docs.find(ctx, bson.M{})
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	return r.docs.find(ctx, bson.M{"productId": productID})
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	now := r.docs.timestamp()
	review.ID = primitive.NewObjectID()
	review.CreatedAt = now
	review.UpdatedAt = now
	return r.docs.insert(ctx, review)
}

func (r *reviewRepository) Update(ctx context.Context, id string, patch models.ReviewPatch) (*models.Review, error) {
	return r.docs.updateByID(ctx, id, patch)
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	return r.docs.deleteByID(ctx, id)
}
