package handlers

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"levelup/models"
	"levelup/pipeline"
	"levelup/websocket"
)

// Shared state and helpers used across the handler files.

var wsManager *websocket.Manager
var vapidPrivateKey string

// PushSubscription stores one staff user's browser push endpoint.
type PushSubscription struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty"`
	UserID primitive.ObjectID   `bson:"userId"`
	Sub    webpush.Subscription `bson:"sub"`
}

// SetWebSocketManager sets the global WebSocket manager
func SetWebSocketManager(manager *websocket.Manager) {
	wsManager = manager
}

// SetVAPIDPrivateKey sets the VAPID private key
func SetVAPIDPrivateKey(key string) {
	vapidPrivateKey = key
}

// scopeQuery builds the mongo filter for what the signed-in staff member may
// see. Admins read the whole collection; agents and references only rows
// attributed to their own label.
func scopeQuery(role, referenceLabel string) bson.M {
	if role == models.RoleAdmin {
		return bson.M{}
	}
	return bson.M{"reference": referenceLabel}
}

// filtersFromQuery reads the dashboard filter selections off the request.
func filtersFromQuery(c *gin.Context) pipeline.Filters {
	return pipeline.Filters{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		City:      c.Query("city"),
		Reference: c.Query("reference"),
		Date:      c.Query("date"),
	}
}
