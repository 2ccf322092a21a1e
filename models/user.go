package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RoleAdmin = "admin"

// Password holds a bcrypt hash. Records written before hashing was enforced
// may still carry plaintext until their next login or a rehash run.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"`
	Name      string             `bson:"name" json:"name"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type UserPatch struct {
	Username *string `json:"username" bson:"username,omitempty"`
	Name     *string `json:"name" bson:"name,omitempty"`
	Role     *string `json:"role" bson:"role,omitempty"`
}
