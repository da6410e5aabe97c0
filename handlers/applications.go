package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"levelup/contact"
	"levelup/database"
	"levelup/models"
	"levelup/pipeline"
)

// loadScopedApplications runs the one collection read every dashboard view
// starts from: scoped to the caller's role, newest first.
func loadScopedApplications(ctx context.Context, c *gin.Context) ([]models.Applicant, error) {
	query := scopeQuery(c.GetString("role"), c.GetString("referenceLabel"))

	cursor, err := database.Applicants.Find(ctx, query,
		options.Find().SetSort(bson.M{"submittedAt": -1}))
	if err != nil {
		return nil, err
	}

	apps := []models.Applicant{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListApplications returns the caller's visible applicants after applying the
// dashboard filters, plus the dropdown values derived from the unfiltered
// scoped set.
func ListApplications(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	apps, err := loadScopedApplications(ctx, c)
	if err != nil {
		log.Printf("[ListApplications] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load applications"})
		return
	}

	filtered := pipeline.Apply(apps, filtersFromQuery(c))

	c.JSON(http.StatusOK, gin.H{
		"applications": filtered,
		"total":        len(apps),
		"cities":       pipeline.Cities(apps),
		"references":   pipeline.ReferenceLabels(apps),
		"statuses":     pipeline.Statuses,
	})
}

type UpdateApplicationRequest struct {
	Status         *string `json:"status"`
	Notes          *string `json:"notes"`
	SalesCompleted *int    `json:"salesCompleted"`
	Starred        *bool   `json:"starred"`
}

// UpdateApplication applies a partial update to one applicant. Only the
// dashboard-editable fields are accepted, and the persisted document is
// returned so clients never have to patch state they can't trust.
func UpdateApplication(c *gin.Context) {
	appID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	set := bson.M{}
	if req.Status != nil {
		if !pipeline.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
			return
		}
		set["status"] = *req.Status
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if req.SalesCompleted != nil {
		if *req.SalesCompleted < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "salesCompleted cannot be negative"})
			return
		}
		set["salesCompleted"] = *req.SalesCompleted
	}
	if req.Starred != nil {
		set["starred"] = *req.Starred
	}

	if len(set) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No changes to update"})
		return
	}
	set["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Scope the update itself so an agent cannot edit another recruiter's row.
	query := scopeQuery(c.GetString("role"), c.GetString("referenceLabel"))
	query["_id"] = appID

	var updated models.Applicant
	err = database.Applicants.FindOneAndUpdate(
		ctx,
		query,
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	if err != nil {
		log.Printf("[UpdateApplication] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	if wsManager != nil {
		wsManager.BroadcastApplicationUpdated(updated)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application updated successfully",
		"application": updated,
	})
}

// DeleteApplication removes one applicant. Admin only; there is no soft
// delete.
func DeleteApplication(c *gin.Context) {
	appID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var app models.Applicant
	err = database.Applicants.FindOneAndDelete(ctx, bson.M{"_id": appID}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	if err != nil {
		log.Printf("[DeleteApplication] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete application"})
		return
	}

	if wsManager != nil {
		wsManager.BroadcastApplicationDeleted(app.ID.Hex(), app.Reference)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// GetContactLinks returns the WhatsApp and tel: links for one applicant,
// signed with the caller's name when we know it.
func GetContactLinks(c *gin.Context) {
	appID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := scopeQuery(c.GetString("role"), c.GetString("referenceLabel"))
	query["_id"] = appID

	var app models.Applicant
	err = database.Applicants.FindOne(ctx, query).Decode(&app)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}
	if err != nil {
		log.Printf("[GetContactLinks] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load application"})
		return
	}

	recruiterName := ""
	if userID, idErr := primitive.ObjectIDFromHex(c.GetString("userId")); idErr == nil {
		var user models.StaffUser
		if dbErr := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); dbErr == nil {
			recruiterName = user.Name
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"whatsapp": contact.WhatsAppLink(app.Phone, app.FullName, recruiterName),
		"tel":      contact.TelLink(app.Phone),
	})
}
