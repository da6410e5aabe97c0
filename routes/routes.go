package routes

import (
	"levelup/handlers"
	"levelup/middleware"
	"levelup/models"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Add health check endpoint for testing
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "LevelUp API is running",
			"time":    time.Now().Unix(),
			"ws":      "WebSocket available at /ws",
		})
	})

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8080", "http://127.0.0.1:8080", "http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public routes (no auth required)
	router.POST("/api/register", middleware.RegisterRateLimit(), handlers.Register)
	router.GET("/api/references", handlers.ListReferences)
	router.POST("/api/login", handlers.Login)
	router.GET("/api/vapid-public-key", handlers.GetVapidPublicKey)

	// Google OAuth routes
	router.GET("/api/google/auth-url", handlers.GetGoogleAuthURL)
	router.GET("/api/google/callback", handlers.GoogleOAuthCallback)

	// Protected routes group
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware())

	// Account
	protected.GET("/me", handlers.Me)
	protected.POST("/me/avatar", handlers.UploadAvatar)
	protected.POST("/subscribe", handlers.SubscribePush)

	// Applications (scoped per role inside the handlers)
	protected.GET("/applications", handlers.ListApplications)
	protected.GET("/applications/stats", handlers.GetStats)
	protected.GET("/applications/export", handlers.ExportApplications)
	protected.PATCH("/applications/:id", handlers.UpdateApplication)
	protected.GET("/applications/:id/contact", handlers.GetContactLinks)
	protected.DELETE("/applications/:id", middleware.RequireRole(models.RoleAdmin), handlers.DeleteApplication)

	// Agent management (admin only)
	admin := protected.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.POST("/agents", handlers.CreateAgent)
	admin.GET("/agents", handlers.ListAgents)
	admin.DELETE("/agents/:id", handlers.DeleteAgent)

	// Add a catch-all for undefined API routes
	router.NoRoute(func(c *gin.Context) {
		// If it's an API route, return JSON 404
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error":   "Endpoint not found",
				"path":    c.Request.URL.Path,
				"message": "Check the API documentation for available endpoints",
			})
			return
		}
		c.Next()
	})

	return router
}
