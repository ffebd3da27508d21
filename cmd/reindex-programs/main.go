package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/scolaris/scolaris-api/internal/config"
	"github.com/scolaris/scolaris-api/internal/database"
	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/scolaris/scolaris-api/internal/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Initialize search service
	searchService := services.NewSearchService(cfg)
	log.Println("Meilisearch service initialized")

	// Get counts
	var dbCount int64
	if err := db.Model(&models.Program{}).Count(&dbCount).Error; err != nil {
		log.Fatalf("Failed to get program count from DB: %v", err)
	}

	meiliCount, err := searchService.GetProgramCount()
	if err != nil {
		log.Fatalf("Failed to get program count from Meilisearch: %v", err)
	}

	log.Printf("Programs in DB: %d", dbCount)
	log.Printf("Programs in Meilisearch: %d", meiliCount)

	if meiliCount == dbCount {
		log.Println("Counts match. Verifying all programs are indexed...")
	} else {
		log.Println("Counts do not match. Reindexing all programs...")
	}

	// Fetch all programs in batches
	batchSize := 100
	var offset int
	totalIndexed := 0

	for {
		var programs []models.Program
		if err := db.Limit(batchSize).Offset(offset).Find(&programs).Error; err != nil {
			log.Fatalf("Failed to fetch programs: %v", err)
		}

		if len(programs) == 0 {
			break
		}

		if err := searchService.IndexPrograms(programs); err != nil {
			log.Printf("Failed to index batch (offset %d): %v", offset, err)
		} else {
			totalIndexed += len(programs)
			log.Printf("Indexed batch of %d programs (total: %d)", len(programs), totalIndexed)
		}

		offset += batchSize
		time.Sleep(100 * time.Millisecond) // Be nice to Meilisearch
	}

	// Students ride along so search stays consistent after an import
	var students []models.Student
	if err := db.Find(&students).Error; err != nil {
		log.Printf("Failed to fetch students: %v", err)
	} else if err := searchService.IndexStudents(students); err != nil {
		log.Printf("Failed to index students: %v", err)
	} else {
		log.Printf("Indexed %d students", len(students))
	}

	// Final check
	finalMeiliCount, err := searchService.GetProgramCount()
	if err != nil {
		log.Printf("Failed to get final count: %v", err)
	}

	log.Printf("Reindexing completed.")
	log.Printf("Final Meilisearch count: %d", finalMeiliCount)
}
