package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"levelup/pipeline"
)

// GetStats serves the KPI cards. It loads the same scoped list the table
// uses and optionally applies the same filters, so the numbers always agree
// with the rows on screen.
func GetStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	apps, err := loadScopedApplications(ctx, c)
	if err != nil {
		log.Printf("[GetStats] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load applications"})
		return
	}

	filtered := pipeline.Apply(apps, filtersFromQuery(c))
	c.JSON(http.StatusOK, pipeline.Stats(filtered, time.Now()))
}
