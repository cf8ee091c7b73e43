package repository

import (
	"context"
	"errors"

	"learnhub/backend/models"

	"gorm.io/gorm"
)

type CertificateRepo interface {
	FindByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.Certificate, error)
	FindByVerificationCode(ctx context.Context, code string) (*models.Certificate, error)
	Create(ctx context.Context, row *models.Certificate) error
}

type certificateRepo struct {
	db *gorm.DB
}

func NewCertificateRepo(db *gorm.DB) CertificateRepo {
	return &certificateRepo{db: db}
}

func (r *certificateRepo) FindByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.Certificate, error) {
	var row models.Certificate
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *certificateRepo) FindByVerificationCode(ctx context.Context, code string) (*models.Certificate, error) {
	var row models.Certificate
	err := r.db.WithContext(ctx).
		Where("verification_code = ?", code).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *certificateRepo) Create(ctx context.Context, row *models.Certificate) error {
	return r.db.WithContext(ctx).Create(row).Error
}
