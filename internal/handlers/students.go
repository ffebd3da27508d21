package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/scolaris/scolaris-api/internal/services"
	"gorm.io/gorm"
)

// GetStudent returns a student with their enrollments
func GetStudent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var student models.Student
		err := db.Preload("Enrollments").
			Preload("Enrollments.Program").
			Preload("Enrollments.Semester").
			Preload("Enrollments.AcademicYear").
			First(&student, "id = ?", id).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Student not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch student",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    student,
		})
	}
}

// ListEnrollments returns enrollments filtered by program and/or academic year
func ListEnrollments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("code asc").Limit(500)
		if programID := c.Query("program_id"); programID != "" {
			query = query.Where("program_id = ?", programID)
		}
		if yearID := c.Query("academic_year_id"); yearID != "" {
			query = query.Where("academic_year_id = ?", yearID)
		}

		var enrollments []models.Enrollment
		if err := query.Find(&enrollments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch enrollments",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    enrollments,
		})
	}
}

// SearchStudents proxies a full-text query to Meilisearch
func SearchStudents(searchService *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		results, err := searchService.SearchStudents(c.Query("q"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SEARCH_ERROR",
					"message": "Search failed",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    results.Hits,
		})
	}
}
