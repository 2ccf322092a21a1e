package repository

import (
	"context"
	"time"

	"simpleshop/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type feedbackRepository struct {
	docs documents[models.Feedback]
}

func NewFeedbackRepository(coll *mongo.Collection, timeout time.Duration) FeedbackRepository {
	return &feedbackRepository{docs: newDocuments[models.Feedback](coll, timeout)}
}

func (r *feedbackRepository) List(ctx context.Context) ([]models.Feedback, error) {
	return r.docs.find(ctx, bson.M{})
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	now := r.docs.timestamp()
	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now
	return r.docs.insert(ctx, feedback)
}
