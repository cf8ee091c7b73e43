package database

import (
	"fmt"

	"learnhub/backend/config"
	"learnhub/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the PostgreSQL connection, tunes the pool and runs
// migrations.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs AutoMigrate for every model; tests call it against sqlite.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.CourseModule{},
		&models.Lesson{},
		&models.CourseEnrollment{},
		&models.LessonProgress{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAnswer{},
		&models.QuizAttempt{},
		&models.Payment{},
		&models.Review{},
		&models.Certificate{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
