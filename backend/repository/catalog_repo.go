package repository

import (
	"context"
	"errors"

	"learnhub/backend/models"

	"gorm.io/gorm"
)

// CatalogRepo reads course structure owned by the catalog subsystem. The
// only write it exposes is the denormalized students counter bumped on
// enroll.
type CatalogRepo interface {
	FindCourse(ctx context.Context, id uint) (*models.Course, error)
	CourseIDForLesson(ctx context.Context, tx *gorm.DB, lessonID uint) (uint, error)
	CountLessonsInCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error)
	LessonIDsForCourse(ctx context.Context, courseID uint) ([]uint, error)
	CoursesByInstructor(ctx context.Context, instructorID uint) ([]models.Course, error)
	TopCoursesByInstructor(ctx context.Context, instructorID uint, limit int) ([]models.Course, error)
	AvgRating(ctx context.Context, courseIDs []uint) (float64, error)
	IncrementStudents(ctx context.Context, tx *gorm.DB, courseID uint) error
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepo {
	return &catalogRepo{db: db}
}

func (r *catalogRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *catalogRepo) FindCourse(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).First(&course, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *catalogRepo) CourseIDForLesson(ctx context.Context, tx *gorm.DB, lessonID uint) (uint, error) {
	var courseID uint
	err := r.conn(tx).WithContext(ctx).
		Model(&models.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("lessons.id = ?", lessonID).
		Select("course_modules.course_id").
		Scan(&courseID).Error
	return courseID, err
}

func (r *catalogRepo) CountLessonsInCourse(ctx context.Context, tx *gorm.DB, courseID uint) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&models.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *catalogRepo) LessonIDsForCourse(ctx context.Context, courseID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ?", courseID).
		Order("course_modules.sequence_order, lessons.sequence_order").
		Pluck("lessons.id", &ids).Error
	return ids, err
}

func (r *catalogRepo) CoursesByInstructor(ctx context.Context, instructorID uint) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Find(&courses).Error
	return courses, err
}

func (r *catalogRepo) TopCoursesByInstructor(ctx context.Context, instructorID uint, limit int) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("students_count DESC, rating DESC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

func (r *catalogRepo) AvgRating(ctx context.Context, courseIDs []uint) (float64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id IN ?", courseIDs).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *catalogRepo) IncrementStudents(ctx context.Context, tx *gorm.DB, courseID uint) error {
	return r.conn(tx).WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", courseID).
		UpdateColumn("students_count", gorm.Expr("students_count + 1")).Error
}
