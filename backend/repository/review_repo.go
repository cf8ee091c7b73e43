package repository

import (
	"context"

	"learnhub/backend/models"

	"gorm.io/gorm"
)

type ReviewRepo interface {
	// UnmoderatedForCourse returns the reviews counted by every aggregate.
	UnmoderatedForCourse(ctx context.Context, courseID uint) ([]models.Review, error)
	Create(ctx context.Context, row *models.Review) error
}

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) ReviewRepo {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) UnmoderatedForCourse(ctx context.Context, courseID uint) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND is_moderated = ?", courseID, false).
		Find(&rows).Error
	return rows, err
}

func (r *reviewRepo) Create(ctx context.Context, row *models.Review) error {
	return r.db.WithContext(ctx).Create(row).Error
}
