package repository

import (
	"context"
	"time"

	"simpleshop/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type orderRepository struct {
	docs documents[models.Order]
}

func NewOrderRepository(coll *mongo.Collection, timeout time.Duration) OrderRepository {
	return &orderRepository{docs: newDocuments[models.Order](coll, timeout)}
}

func (r *orderRepository) List(ctx context.Context) ([]models.Order, error) {
	return r.docs.find(ctx, bson.M{})
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	now := r.docs.timestamp()
	order.ID = primitive.NewObjectID()
	if order.Status == "" {
		order.Status = models.OrderStatusNew
	}
	order.CreatedAt = now
	order.UpdatedAt = now
	return r.docs.insert(ctx, order)
}

func (r *orderRepository) Update(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error) {
	return r.docs.updateByID(ctx, id, patch)
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	return r.docs.deleteByID(ctx, id)
}
