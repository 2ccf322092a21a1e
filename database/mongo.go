package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	ProductsCollection = "products"
	OrdersCollection   = "orders"
	UsersCollection    = "users"
	ReviewsCollection  = "reviews"
	FeedbackCollection = "feedback"
)

// UsernameCollation makes username comparisons case-insensitive. The unique
// index and every username lookup must use the same collation.
var UsernameCollation = &options.Collation{Locale: "en", Strength: 2}

type Collections struct {
	Products *mongo.Collection
	Orders   *mongo.Collection
	Users    *mongo.Collection
	Reviews  *mongo.Collection
	Feedback *mongo.Collection
}

// ConnectMongo dials the server and verifies it with a ping. Embedded
// documents inside untyped fields decode as maps so they render back to
// JSON objects.
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	if uri == "" || dbName == "" {
		return nil, nil, fmt.Errorf("mongo uri and database name are required")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(dbName), nil
}

func InitCollections(db *mongo.Database) Collections {
	return Collections{
		Products: db.Collection(ProductsCollection),
		Orders:   db.Collection(OrdersCollection),
		Users:    db.Collection(UsersCollection),
		Reviews:  db.Collection(ReviewsCollection),
		Feedback: db.Collection(FeedbackCollection),
	}
}

// EnsureIndexes creates the indexes the handlers rely on. Creating an index
// that already exists with the same options is a no-op.
func EnsureIndexes(ctx context.Context, cols Collections) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := cols.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
		Options: options.Index().
			SetName("username_unique_ci").
			SetUnique(true).
			SetCollation(UsernameCollation),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = cols.Reviews.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().SetName("product_id"),
	})
	if err != nil {
		return fmt.Errorf("create reviews index: %w", err)
	}

	return nil
}
