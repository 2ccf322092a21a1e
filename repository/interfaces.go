package repository

import (
	"context"

	"simpleshop/models"
)

type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	List(ctx context.Context) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Update(ctx context.Context, id string, patch models.OrderPatch) (*models.Order, error)
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) error

	FindByUsername(ctx context.Context, username string) (*models.User, error)
	SetPassword(ctx context.Context, id string, password string) error
}

type ReviewRepository interface {
	List(ctx context.Context) ([]models.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, id string, patch models.ReviewPatch) (*models.Review, error)
	Delete(ctx context.Context, id string) error
}

type FeedbackRepository interface {
	List(ctx context.Context) ([]models.Feedback, error)
	Create(ctx context.Context, feedback *models.Feedback) error
}
