package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	Category    string             `bson:"category" json:"category"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductPatch carries the fields of a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string  `json:"name" bson:"name,omitempty"`
	Description *string  `json:"description" bson:"description,omitempty"`
	Price       *float64 `json:"price" bson:"price,omitempty"`
	Image       *string  `json:"image" bson:"image,omitempty"`
	Category    *string  `json:"category" bson:"category,omitempty"`
}
