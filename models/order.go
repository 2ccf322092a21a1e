package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const OrderStatusNew = "new"

// Order items are stored as the client sent them; their shape is not interpreted.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	Items     []interface{}      `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type OrderPatch struct {
	Name   *string        `json:"name" bson:"name,omitempty"`
	Phone  *string        `json:"phone" bson:"phone,omitempty"`
	Items  *[]interface{} `json:"items" bson:"items,omitempty"`
	Total  *float64       `json:"total" bson:"total,omitempty"`
	Status *string        `json:"status" bson:"status,omitempty"`
}
