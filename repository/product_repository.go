package repository

import (
	"context"
	"time"

	"simpleshop/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type productRepository struct {
	docs documents[models.Product]
}

func NewProductRepository(coll *mongo.Collection, timeout time.Duration) ProductRepository {
	return &productRepository{docs: newDocuments[models.Product](coll, timeout)}
}

func (r *productRepository) List(ctx context.Context) ([]models.Product, error) {
	return r.docs.find(ctx, bson.M{})
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	now := r.docs.timestamp()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now
	return r.docs.insert(ctx, product)
}

func (r *productRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	return r.docs.updateByID(ctx, id, patch)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.docs.deleteByID(ctx, id)
}
