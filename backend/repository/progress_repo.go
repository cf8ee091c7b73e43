package repository

import (
	"context"
	"errors"
	"time"

	"learnhub/backend/models"

	"gorm.io/gorm"
)

// ProgressRepo owns per-user, per-lesson progress rows. Methods taking a tx
// participate in the caller's transaction when one is passed.
type ProgressRepo interface {
	FindByUserAndLesson(ctx context.Context, tx *gorm.DB, userID, lessonID uint) (*models.LessonProgress, error)
	Save(ctx context.Context, tx *gorm.DB, row *models.LessonProgress) error
	ListByUser(ctx context.Context, userID uint) ([]models.LessonProgress, error)
	CountCompletedForCourse(ctx context.Context, tx *gorm.DB, userID, courseID uint) (int64, error)
	EngagementForCourse(ctx context.Context, courseID uint, from, to *time.Time) (models.StudentEngagement, error)
}

type progressRepo struct {
	db *gorm.DB
}

func NewProgressRepo(db *gorm.DB) ProgressRepo {
	return &progressRepo{db: db}
}

func (r *progressRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *progressRepo) FindByUserAndLesson(ctx context.Context, tx *gorm.DB, userID, lessonID uint) (*models.LessonProgress, error) {
	var row models.LessonProgress
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *progressRepo) Save(ctx context.Context, tx *gorm.DB, row *models.LessonProgress) error {
	return r.conn(tx).WithContext(ctx).Save(row).Error
}

func (r *progressRepo) ListByUser(ctx context.Context, userID uint) ([]models.LessonProgress, error) {
	var rows []models.LessonProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	return rows, err
}

func (r *progressRepo) CountCompletedForCourse(ctx context.Context, tx *gorm.DB, userID, courseID uint) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&models.LessonProgress{}).
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND lesson_progresses.user_id = ? AND lesson_progresses.is_completed = ?",
			courseID, userID, true).
		Count(&count).Error
	return count, err
}

func (r *progressRepo) EngagementForCourse(ctx context.Context, courseID uint, from, to *time.Time) (models.StudentEngagement, error) {
	var out models.StudentEngagement

	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Model(&models.LessonProgress{}).
			Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
			Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
			Where("course_modules.course_id = ?", courseID)
		if from != nil && to != nil {
			q = q.Where("lesson_progresses.last_accessed_at BETWEEN ? AND ?", from, to)
		}
		return q
	}

	if err := base().Count(&out.TotalInteractions).Error; err != nil {
		return out, err
	}
	err := base().Distinct("lesson_progresses.user_id").Count(&out.ActiveStudents).Error
	return out, err
}
