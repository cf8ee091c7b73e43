package repository

import (
	"context"
	"errors"
	"time"

	"learnhub/backend/models"

	"gorm.io/gorm"
)

type EnrollmentRepo interface {
	FindByID(ctx context.Context, id uint) (*models.CourseEnrollment, error)
	FindByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uint) (*models.CourseEnrollment, error)
	Create(ctx context.Context, tx *gorm.DB, row *models.CourseEnrollment) error
	Save(ctx context.Context, tx *gorm.DB, row *models.CourseEnrollment) error
	ListByUser(ctx context.Context, userID uint) ([]models.CourseEnrollment, error)
	ListByCourse(ctx context.Context, courseID uint) ([]models.CourseEnrollment, error)

	CountByCourses(ctx context.Context, courseIDs []uint, from, to *time.Time) (int64, error)
	CountDistinctStudents(ctx context.Context, courseIDs []uint) (int64, error)
	AvgProgress(ctx context.Context, courseIDs []uint) (float64, error)
	Recent(ctx context.Context, courseIDs []uint, limit int) ([]models.CourseEnrollment, error)
	StatusCounts(ctx context.Context, courseID uint, from, to *time.Time) (models.EnrollmentStats, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepo {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *enrollmentRepo) FindByID(ctx context.Context, id uint) (*models.CourseEnrollment, error) {
	var row models.CourseEnrollment
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *enrollmentRepo) FindByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uint) (*models.CourseEnrollment, error) {
	var row models.CourseEnrollment
	err := r.conn(tx).WithContext(ctx).
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

func (r *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, row *models.CourseEnrollment) error {
	return r.conn(tx).WithContext(ctx).Create(row).Error
}

func (r *enrollmentRepo) Save(ctx context.Context, tx *gorm.DB, row *models.CourseEnrollment) error {
	return r.conn(tx).WithContext(ctx).Save(row).Error
}

func (r *enrollmentRepo) ListByUser(ctx context.Context, userID uint) ([]models.CourseEnrollment, error) {
	var rows []models.CourseEnrollment
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("last_accessed_at DESC NULLS LAST").
		Find(&rows).Error
	return rows, err
}

func (r *enrollmentRepo) ListByCourse(ctx context.Context, courseID uint) ([]models.CourseEnrollment, error) {
	var rows []models.CourseEnrollment
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Find(&rows).Error
	return rows, err
}

func (r *enrollmentRepo) CountByCourses(ctx context.Context, courseIDs []uint, from, to *time.Time) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	query := r.db.WithContext(ctx).
		Model(&models.CourseEnrollment{}).
		Where("course_id IN ?", courseIDs)
	if from != nil && to != nil {
		query = query.Where("created_at BETWEEN ? AND ?", from, to)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *enrollmentRepo) CountDistinctStudents(ctx context.Context, courseIDs []uint) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CourseEnrollment{}).
		Where("course_id IN ?", courseIDs).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (r *enrollmentRepo) AvgProgress(ctx context.Context, courseIDs []uint) (float64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.CourseEnrollment{}).
		Where("course_id IN ?", courseIDs).
		Select("AVG(progress)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *enrollmentRepo) Recent(ctx context.Context, courseIDs []uint, limit int) ([]models.CourseEnrollment, error) {
	if len(courseIDs) == 0 {
		return []models.CourseEnrollment{}, nil
	}
	var rows []models.CourseEnrollment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("course_id IN ?", courseIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *enrollmentRepo) StatusCounts(ctx context.Context, courseID uint, from, to *time.Time) (models.EnrollmentStats, error) {
	var out models.EnrollmentStats

	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Model(&models.CourseEnrollment{}).
			Where("course_id = ?", courseID)
		if from != nil && to != nil {
			q = q.Where("created_at BETWEEN ? AND ?", from, to)
		}
		return q
	}

	if err := base().Count(&out.Total).Error; err != nil {
		return out, err
	}
	if err := base().Where("status = ?", models.EnrollmentActive).Count(&out.Active).Error; err != nil {
		return out, err
	}
	err := base().Where("status = ?", models.EnrollmentCompleted).Count(&out.Completed).Error
	return out, err
}
