package handlers

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"levelup/export"
	"levelup/models"
	"levelup/pipeline"
)

// ExportApplications streams the currently filtered, scoped list as a file
// download. ?format=csv gives CSV; anything else gives the XLSX workbook the
// dashboards always produced. Export reads the same pipeline output as the
// table, so the file row count always equals the visible row count.
func ExportApplications(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	apps, err := loadScopedApplications(ctx, c)
	if err != nil {
		log.Printf("[ExportApplications] Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load applications"})
		return
	}

	filters := filtersFromQuery(c)
	filtered := pipeline.Apply(apps, filters)

	format := c.DefaultQuery("format", "xlsx")
	filename := exportFilename(c.GetString("role"), c.GetString("referenceLabel"), filters.Reference, format)

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if format == "csv" {
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, filtered); err != nil {
			log.Printf("[ExportApplications] CSV write error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate export"})
			return
		}
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
		return
	}

	wb, err := export.Workbook(filtered)
	if err != nil {
		log.Printf("[ExportApplications] Workbook error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate export"})
		return
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		log.Printf("[ExportApplications] Workbook write error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate export"})
		return
	}
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func exportFilename(role, label, referenceFilter, ext string) string {
	if role == models.RoleAdmin {
		return export.AdminFilename(referenceFilter, ext)
	}
	return export.ReferralFilename(label, time.Now(), ext)
}
