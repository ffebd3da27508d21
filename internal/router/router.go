package router

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/scolaris/scolaris-api/internal/config"
	"github.com/scolaris/scolaris-api/internal/handlers"
	"github.com/scolaris/scolaris-api/internal/middleware"
	"github.com/scolaris/scolaris-api/internal/services"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize Services
	searchService := services.NewSearchService(cfg)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize rate limiter: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck(db))

	// API v1 routes
	api := r.Group("/api/v1")
	if rateLimiter != nil {
		api.Use(rateLimiter.RateLimitByIP(300, 60))
	}
	{
		// Institutions
		api.GET("/institutions", handlers.ListInstitutions(db))
		api.GET("/institutions/:id", handlers.GetInstitution(db))

		// Mentions
		api.GET("/mentions", handlers.ListMentions(db))

		// Programs
		api.GET("/programs", handlers.ListPrograms(db))
		api.GET("/programs/:id", handlers.GetProgram(db))

		// Students and enrollments
		api.GET("/students/:id", handlers.GetStudent(db))
		api.GET("/enrollments", handlers.ListEnrollments(db))

		// Academic years
		api.GET("/academic-years", handlers.ListAcademicYears(db))

		// Import runs
		api.GET("/import-runs", handlers.ListImportRuns(db))

		// Search
		api.GET("/search/programs", handlers.SearchPrograms(searchService))
		api.GET("/search/students", handlers.SearchStudents(searchService))
	}

	return r
}
