package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"levelup/database"
	"levelup/models"
	"levelup/pipeline"
)

// The form enforces a 50-character minimum on the motivation text.
const whyThisRoleMinLen = 50

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

var workingHoursOptions = []string{"Morning", "Afternoon", "Evening"}
var weeklyAvailabilityOptions = []string{"12 hrs", "20 hrs", "30+ hrs"}

type RegisterRequest struct {
	FullName           string `json:"fullName"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	City               string `json:"city"`
	Age                int    `json:"age"`
	Gender             string `json:"gender"`
	Education          string `json:"education"`
	CurrentPosition    string `json:"currentPosition"`
	WorkingHours       string `json:"workingHours"`
	WeeklyAvailability string `json:"weeklyAvailability"`
	WhyThisRole        string `json:"whyThisRole"`
	Reference          string `json:"reference"`
}

// stripNonDigits mirrors the form's phone input, which drops separators
// before validating length.
func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func oneOf(value string, options []string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

// ValidateRegistration returns a field→message map; an empty map means the
// submission is acceptable. Nothing is written when any field fails.
func ValidateRegistration(req RegisterRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(req.FullName) == "" {
		errs["fullName"] = "Full name is required"
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailRegex.MatchString(email) {
		errs["email"] = "Please enter a valid email address"
	}

	phone := stripNonDigits(req.Phone)
	if strings.TrimSpace(req.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !phoneRegex.MatchString(phone) {
		errs["phone"] = "Please enter a valid 10-digit phone number"
	}

	if strings.TrimSpace(req.City) == "" {
		errs["city"] = "City is required"
	}
	if req.WorkingHours == "" {
		errs["workingHours"] = "Preferred working hours is required"
	} else if !oneOf(req.WorkingHours, workingHoursOptions) {
		errs["workingHours"] = "Please select a valid working hours option"
	}
	if req.WeeklyAvailability == "" {
		errs["weeklyAvailability"] = "Weekly availability is required"
	} else if !oneOf(req.WeeklyAvailability, weeklyAvailabilityOptions) {
		errs["weeklyAvailability"] = "Please select a valid availability option"
	}

	why := strings.TrimSpace(req.WhyThisRole)
	if why == "" {
		errs["whyThisRole"] = "Please tell us why you want this role"
	} else if len(why) < whyThisRoleMinLen {
		errs["whyThisRole"] = "Please provide at least 50 characters explaining why you want this role"
	}

	return errs
}

// duplicateKeyField reports which unique index a racing insert tripped, so
// the conflict is attributed to the right form field.
func duplicateKeyField(err error) (string, string) {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, "phone_1") {
				return "phone", "This phone number has already been registered"
			}
		}
	}
	return "email", "This email has already been registered"
}

// Register handles the public application form. Exactly one document is
// written per successful submission; duplicates are rejected with a
// field-level error both by the pre-check and by the unique indexes.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs := ValidateRegistration(req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": errs,
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := stripNonDigits(req.Phone)

	// Friendly pre-check so the form can show which field collides. The
	// unique index below is what actually guarantees it.
	var existing models.Applicant
	err := database.Applicants.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Already registered",
			"fields": gin.H{"email": "This email has already been registered"},
		})
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("[Register] Database error on email check: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	err = database.Applicants.FindOne(ctx, bson.M{"phone": phone}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Already registered",
			"fields": gin.H{"phone": "This phone number has already been registered"},
		})
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("[Register] Database error on phone check: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	now := time.Now()
	applicant := models.Applicant{
		ID:                 primitive.NewObjectID(),
		FullName:           strings.TrimSpace(req.FullName),
		Email:              email,
		Phone:              phone,
		City:               strings.TrimSpace(req.City),
		Age:                req.Age,
		Gender:             req.Gender,
		Education:          req.Education,
		CurrentPosition:    req.CurrentPosition,
		WorkingHours:       req.WorkingHours,
		WeeklyAvailability: req.WeeklyAvailability,
		WhyThisRole:        strings.TrimSpace(req.WhyThisRole),
		Reference:          strings.TrimSpace(req.Reference),
		Status:             pipeline.StatusNew,
		SalesCompleted:     0,
		SubmittedAt:        now,
		CreatedAt:          now.Format(time.RFC3339),
	}

	if applicant.Reference != "" {
		var ref models.Reference
		err := database.References.FindOne(ctx, bson.M{"name": applicant.Reference}).Decode(&ref)
		if err == nil {
			applicant.ReferenceID = &ref.ID
		} else if err != mongo.ErrNoDocuments {
			log.Printf("[Register] Failed to resolve reference %q: %v", applicant.Reference, err)
		}
	}

	_, err = database.Applicants.InsertOne(ctx, applicant)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent submission won the race; same answer as the pre-check.
		field, msg := duplicateKeyField(err)
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Already registered",
			"fields": gin.H{field: msg},
		})
		return
	}
	if err != nil {
		log.Printf("[Register] Failed to insert applicant: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	if wsManager != nil {
		wsManager.BroadcastNewApplication(applicant)
	}
	NotifyNewApplication(applicant)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Application submitted successfully",
		"id":      applicant.ID.Hex(),
	})
}

// ListReferences serves the registration form's reference dropdown.
func ListReferences(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.References.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		log.Printf("[ListReferences] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load references"})
		return
	}

	references := []models.Reference{}
	if err := cursor.All(ctx, &references); err != nil {
		log.Printf("[ListReferences] Cursor error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load references"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"references": references})
}
