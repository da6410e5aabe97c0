package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Applicant is one SRM application submitted through the public form.
// Status may be absent on older documents; readers must treat that as "New"
// without writing the default back.
type Applicant struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"fullName" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
	Phone    string             `bson:"phone" json:"phone"`
	City     string             `bson:"city" json:"city"`

	Age             int    `bson:"age,omitempty" json:"age,omitempty"`
	Gender          string `bson:"gender,omitempty" json:"gender,omitempty"`
	Education       string `bson:"education,omitempty" json:"education,omitempty"`
	CurrentPosition string `bson:"currentPosition,omitempty" json:"currentPosition,omitempty"`

	WorkingHours       string `bson:"workingHours" json:"workingHours"`
	WeeklyAvailability string `bson:"weeklyAvailability" json:"weeklyAvailability"`
	WhyThisRole        string `bson:"whyThisRole" json:"whyThisRole"`

	Reference   string              `bson:"reference,omitempty" json:"reference,omitempty"`
	ReferenceID *primitive.ObjectID `bson:"referenceId,omitempty" json:"referenceId,omitempty"`

	Status         string `bson:"status,omitempty" json:"status,omitempty"`
	SalesCompleted int    `bson:"salesCompleted" json:"salesCompleted"`
	Notes          string `bson:"notes,omitempty" json:"notes,omitempty"`
	Starred        bool   `bson:"starred,omitempty" json:"starred"`

	SubmittedAt time.Time  `bson:"submittedAt" json:"submittedAt"`
	CreatedAt   string     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
