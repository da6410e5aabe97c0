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
	"golang.org/x/crypto/bcrypt"

	"levelup/database"
	"levelup/models"
)

type CreateAgentRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	ReferenceLabel string `json:"referenceLabel" binding:"required"`
	Role           string `json:"role"`
}

// CreateAgent provisions a recruiter: a login account plus the reference
// label document the registration form's dropdown is built from.
func CreateAgent(c *gin.Context) {
	var req CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleAgent
	}
	if role != models.RoleAgent && role != models.RoleReference {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be agent or reference"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var existing models.StaffUser
	err := database.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	agent := models.StaffUser{
		ID:             primitive.NewObjectID(),
		Email:          req.Email,
		PasswordHash:   &hashed,
		AuthProvider:   "email",
		Name:           req.Name,
		Role:           role,
		ReferenceLabel: req.ReferenceLabel,
		CreatedAt:      time.Now(),
	}

	if _, err := database.Users.InsertOne(ctx, agent); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
			return
		}
		log.Printf("[CreateAgent] Failed to insert agent: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create agent"})
		return
	}

	// Upsert the reference label so the form dropdown picks it up. Two agents
	// may legitimately share one label.
	_, err = database.References.UpdateOne(
		ctx,
		bson.M{"name": req.ReferenceLabel},
		bson.M{"$setOnInsert": models.Reference{
			ID:        primitive.NewObjectID(),
			Name:      req.ReferenceLabel,
			Email:     req.Email,
			CreatedAt: time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Printf("[CreateAgent] Failed to upsert reference %q: %v", req.ReferenceLabel, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Agent created successfully",
		"id":      agent.ID.Hex(),
	})
}

// ListAgents returns every non-admin staff account for the admin dashboard.
func ListAgents(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Users.Find(
		ctx,
		bson.M{"role": bson.M{"$ne": models.RoleAdmin}},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		log.Printf("[ListAgents] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load agents"})
		return
	}

	agents := []models.StaffUser{}
	if err := cursor.All(ctx, &agents); err != nil {
		log.Printf("[ListAgents] Cursor error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load agents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"agents": agents})
}

// DeleteAgent removes a recruiter account. Applicants keep their denormalized
// reference label; only the login goes away.
func DeleteAgent(c *gin.Context) {
	agentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.Users.DeleteOne(ctx, bson.M{
		"_id":  agentID,
		"role": bson.M{"$ne": models.RoleAdmin},
	})
	if err != nil {
		log.Printf("[DeleteAgent] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete agent"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Agent deleted successfully"})
}
