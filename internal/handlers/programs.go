package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/scolaris/scolaris-api/internal/services"
	"gorm.io/gorm"
)

// ListPrograms returns programs, optionally filtered by mention
func ListPrograms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("ProgramType").Order("id asc")
		if mentionID := c.Query("mention_id"); mentionID != "" {
			query = query.Where("mention_id = ?", mentionID)
		}

		var programs []models.Program
		if err := query.Find(&programs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch programs",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    programs,
		})
	}
}

// GetProgram returns a program with the levels it offers, in academic order
func GetProgram(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var program models.Program
		err := db.Preload("Mention").Preload("ProgramType").
			Preload("Levels", func(db *gorm.DB) *gorm.DB {
				return db.Order("ordinal asc")
			}).
			Preload("Levels.Level").
			First(&program, "id = ?", id).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "NOT_FOUND",
						"message": "Program not found",
					},
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to fetch program",
				},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    program,
		})
	}
}

// SearchPrograms proxies a full-text query to Meilisearch
func SearchPrograms(searchService *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		mentionID := c.Query("mention_id")

		results, err := searchService.SearchPrograms(query, mentionID)
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
