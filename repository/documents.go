package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// documents holds the collection plumbing shared by every repository.
type documents[T any] struct {
	coll    *mongo.Collection
	timeout time.Duration
	now     func() time.Time
}

func newDocuments[T any](coll *mongo.Collection, timeout time.Duration) documents[T] {
	return documents[T]{coll: coll, timeout: timeout, now: time.Now}
}

func (d documents[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d.timeout)
}

// timestamp matches BSON datetime precision so returned records equal stored ones.
func (d documents[T]) timestamp() time.Time {
	return d.now().UTC().Truncate(time.Millisecond)
}

func (d documents[T]) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	cursor, err := d.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", d.coll.Name(), err)
	}

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.coll.Name(), err)
	}
	return items, nil
}

func (d documents[T]) findOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*T, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	var item T
	err := d.coll.FindOne(ctx, filter, opts...).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one %s: %w", d.coll.Name(), err)
	}
	return &item, nil
}

func (d documents[T]) insert(ctx context.Context, doc interface{}) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	if _, err := d.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", d.coll.Name(), err)
	}
	return nil
}

// updateByID applies the non-nil fields of patch and returns the updated
// document. Ids that are not valid ObjectIDs cannot match anything.
func (d documents[T]) updateByID(ctx context.Context, id string, patch interface{}) (*T, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set, err := setDocument(patch, d.timestamp())
	if err != nil {
		return nil, err
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated T
	err = d.coll.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set}, opts).Decode(&updated)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, ErrDuplicate
	case err != nil:
		return nil, fmt.Errorf("update %s: %w", d.coll.Name(), err)
	}
	return &updated, nil
}

func (d documents[T]) setByID(ctx context.Context, id string, fields bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	fields["updatedAt"] = d.timestamp()

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	res, err := d.coll.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update %s: %w", d.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// deleteByID succeeds whether or not a document matched.
func (d documents[T]) deleteByID(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	if _, err := d.coll.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		return fmt.Errorf("delete %s: %w", d.coll.Name(), err)
	}
	return nil
}

// setDocument turns a patch struct into a $set document using its bson tags.
func setDocument(patch interface{}, updatedAt time.Time) (bson.M, error) {
	raw, err := bson.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encode patch: %w", err)
	}

	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("decode patch: %w", err)
	}
	set["updatedAt"] = updatedAt
	return set, nil
}
