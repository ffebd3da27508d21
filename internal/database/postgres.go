package database

import (
	"fmt"
	"log"

	"github.com/scolaris/scolaris-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Database connected successfully")
	return db, nil
}

// RunMigrations creates or updates the schema for every model. Reference
// tables come first so foreign keys resolve during creation.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running migrations...")
	return db.AutoMigrate(
		&models.Cycle{},
		&models.Level{},
		&models.Semester{},
		&models.ExamSession{},
		&models.EnrollmentMode{},
		&models.ProgramType{},
		&models.AcademicYear{},
		&models.Institution{},
		&models.Department{},
		&models.Domain{},
		&models.Mention{},
		&models.Program{},
		&models.Student{},
		&models.Enrollment{},
		&models.ProgramLevel{},
		&models.InstitutionHistory{},
		&models.DepartmentHistory{},
		&models.MentionHistory{},
		&models.ProgramHistory{},
		&models.ImportRun{},
	)
}
