package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reference is a recruiter label shown in the registration form dropdown.
// Applicants store the label denormalized in their `reference` field.
type Reference struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
