package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scolaris/scolaris-api/internal/models"
	"gorm.io/gorm"
)

// ListInstitutions returns all institutions ordered by generated id
func ListInstitutions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var institutions []models.Institution
		if err := db.Order("id asc").Find(&institutions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch institutions",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    institutions,
		})
	}
}

// GetInstitution returns a single institution with its departments
func GetInstitution(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var institution models.Institution
		if err := db.Preload("Departments").First(&institution, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Institution not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch institution",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    institution,
		})
	}
}

// ListMentions returns mentions, optionally filtered by department
func ListMentions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Domain").Order("id asc")
		if departmentID := c.Query("department_id"); departmentID != "" {
			query = query.Where("department_id = ?", departmentID)
		}

		var mentions []models.Mention
		if err := query.Find(&mentions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch mentions",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    mentions,
		})
	}
}

// ListAcademicYears returns the seeded academic years in chronological order
func ListAcademicYears(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var years []models.AcademicYear
		if err := db.Order("ordinal asc").Find(&years).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch academic years",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    years,
		})
	}
}
