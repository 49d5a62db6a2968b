package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleDonor = "Donor"
	RoleAdmin = "Admin"

	StatusActive  = "Active"
	StatusBlocked = "Blocked"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	District  string             `bson:"district,omitempty" json:"district,omitempty"`
	Upazila   string             `bson:"upazila,omitempty" json:"upazila,omitempty"`
	Blood     string             `bson:"blood,omitempty" json:"blood,omitempty"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// UserProfile is the owner-editable field set. Every field is written,
// including empty ones.
type UserProfile struct {
	Name     string
	Phone    string
	District string
	Upazila  string
	Blood    string
}
