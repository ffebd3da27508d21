package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/scolaris/scolaris-api/internal/config"
	"github.com/scolaris/scolaris-api/internal/database"
	"github.com/scolaris/scolaris-api/internal/importer"
	"github.com/scolaris/scolaris-api/internal/models"
	"github.com/scolaris/scolaris-api/internal/services"
	"github.com/scolaris/scolaris-api/internal/source"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg := config.Load()

	startYear := flag.Int("start-year", cfg.YearStart, "first academic year to seed")
	endYear := flag.Int("end-year", cfg.YearEnd, "last academic year to seed")
	flag.Parse()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Rejected rows land here with their natural key and error class
	audit, err := importer.OpenAuditLog(cfg.AuditLogFile)
	if err != nil {
		log.Fatalf("Failed to open audit log %s: %v", cfg.AuditLogFile, err)
	}
	defer audit.Close()

	imp := importer.New(db, audit,
		&source.ExcelSource{Path: cfg.InstitutionFile},
		&source.ExcelSource{Path: cfg.MetadataFile},
		&source.ExcelSource{Path: cfg.EnrollmentFile},
	)
	imp.YearStart = *startYear
	imp.YearEnd = *endYear

	// Initialize logo storage
	logoStorage, err := services.NewLogoStorage(cfg)
	if err != nil {
		log.Printf("Warning: Failed to initialize logo storage: %v", err)
	} else {
		imp.Logos = logoStorage
	}

	summary, err := imp.Run()
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	inserted, updated, skipped, failed := summary.Totals()
	log.Printf("Import completed: %d inserted, %d updated, %d skipped, %d rejected",
		inserted, updated, skipped, failed)

	// Push the fresh catalog into Meilisearch
	searchService := services.NewSearchService(cfg)

	var programs []models.Program
	if err := db.Find(&programs).Error; err != nil {
		log.Printf("Failed to fetch programs for indexing: %v", err)
	} else if err := searchService.IndexPrograms(programs); err != nil {
		log.Printf("Failed to index programs: %v", err)
	} else {
		log.Printf("Indexed %d programs", len(programs))
	}

	var students []models.Student
	if err := db.Find(&students).Error; err != nil {
		log.Printf("Failed to fetch students for indexing: %v", err)
	} else if err := searchService.IndexStudents(students); err != nil {
		log.Printf("Failed to index students: %v", err)
	} else {
		log.Printf("Indexed %d students", len(students))
	}
}
