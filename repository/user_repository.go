package repository

import (
	"context"
	"time"

	"simpleshop/database"
	"simpleshop/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	docs documents[models.User]
}

func NewUserRepository(coll *mongo.Collection, timeout time.Duration) UserRepository {
	return &userRepository{docs: newDocuments[models.User](coll, timeout)}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	return r.docs.find(ctx, bson.M{})
}

// Create relies on the unique username index; a clash surfaces as ErrDuplicate.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	now := r.docs.timestamp()
	user.ID = primitive.NewObjectID()
	if user.Role == "" {
		user.Role = models.RoleAdmin
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	return r.docs.insert(ctx, user)
}

func (r *userRepository) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	return r.docs.updateByID(ctx, id, patch)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.docs.deleteByID(ctx, id)
}

// FindByUsername matches the whole username ignoring case.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	opts := options.FindOne().SetCollation(database.UsernameCollation)
	return r.docs.findOne(ctx, bson.M{"username": username}, opts)
}

func (r *userRepository) SetPassword(ctx context.Context, id string, password string) error {
	return r.docs.setByID(ctx, id, bson.M{"password": password})
}
