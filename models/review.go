package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductID is a loose reference: it is neither checked against products
// nor removed when the product goes away.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID string             `bson:"productId" json:"productId"`
	Username  string             `bson:"username" json:"username"`
	Text      string             `bson:"text" json:"text"`
	Rating    int                `bson:"rating" json:"rating"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ReviewPatch struct {
	ProductID *string `json:"productId" bson:"productId,omitempty"`
	Username  *string `json:"username" bson:"username,omitempty"`
	Text      *string `json:"text" bson:"text,omitempty"`
	Rating    *int    `json:"rating" bson:"rating,omitempty"`
}
