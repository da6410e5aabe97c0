package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff roles.
const (
	RoleAdmin     = "admin"
	RoleAgent     = "agent"
	RoleReference = "reference"
)

// StaffUser is a dashboard login account. Agents and references carry the
// ReferenceLabel that scopes which applicants they can see.
type StaffUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"passwordHash,omitempty" json:"-"`
	AuthProvider string             `bson:"authProvider" json:"authProvider"`
	GoogleID     *string            `bson:"googleId,omitempty" json:"-"`

	Name           string `bson:"name" json:"name"`
	Role           string `bson:"role" json:"role"`
	ReferenceLabel string `bson:"referenceLabel,omitempty" json:"referenceLabel,omitempty"`
	Avatar         string `bson:"avatar,omitempty" json:"avatar,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAgent, RoleReference:
		return true
	}
	return false
}
