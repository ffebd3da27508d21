package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scolaris/scolaris-api/internal/models"
	"gorm.io/gorm"
)

// ListImportRuns returns past pipeline executions, newest first
func ListImportRuns(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var runs []models.ImportRun
		if err := db.Order("started_at desc").Limit(50).Find(&runs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch import runs",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    runs,
		})
	}
}
