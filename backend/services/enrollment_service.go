package services

import (
	"context"
	"fmt"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/repository"
	"learnhub/backend/utils"

	"gorm.io/gorm"
)

// EnrollmentService owns enrollment state transitions. The rollup engine
// only supplies the percentage; flipping an enrollment to completed happens
// here.
type EnrollmentService struct {
	db          *gorm.DB
	enrollments repository.EnrollmentRepo
	catalog     repository.CatalogRepo
	notifier    Notifier
	log         *utils.Logger
}

func NewEnrollmentService(
	db *gorm.DB,
	enrollments repository.EnrollmentRepo,
	catalog repository.CatalogRepo,
	notifier Notifier,
	log *utils.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		db:          db,
		enrollments: enrollments,
		catalog:     catalog,
		notifier:    notifier,
		log:         log.With("service", "enrollment"),
	}
}

func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint) (*models.CourseEnrollment, error) {
	course, err := s.catalog.FindCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
	}

	var enrollment *models.CourseEnrollment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.enrollments.FindByUserAndCourse(ctx, tx, userID, courseID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("course %d: %w", courseID, ErrAlreadyEnrolled)
		}

		enrollment = &models.CourseEnrollment{
			UserID:   userID,
			CourseID: courseID,
			Status:   models.EnrollmentActive,
		}
		if err := s.enrollments.Create(ctx, tx, enrollment); err != nil {
			return err
		}
		return s.catalog.IncrementStudents(ctx, tx, courseID)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(userID, models.NotificationCourseEnrolled,
		"Enrolled",
		fmt.Sprintf("You are enrolled in %q", course.Title),
		map[string]interface{}{"course_id": courseID})
	return enrollment, nil
}

func (s *EnrollmentService) ListUserEnrollments(ctx context.Context, userID uint) ([]models.CourseEnrollment, error) {
	return s.enrollments.ListByUser(ctx, userID)
}

// UpdateEnrollmentProgress sets the percentage directly and transitions the
// enrollment to completed at 100%. The completed status and timestamp are
// never reverted.
func (s *EnrollmentService) UpdateEnrollmentProgress(ctx context.Context, enrollmentID uint, progress float64) (*models.CourseEnrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, fmt.Errorf("progress %.2f out of range: %w", progress, ErrValidation)
	}

	enrollment, err := s.enrollments.FindByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("enrollment %d: %w", enrollmentID, ErrNotFound)
	}

	now := time.Now()
	enrollment.Progress = progress
	enrollment.LastAccessedAt = &now

	completedNow := progress >= 100 && enrollment.Status != models.EnrollmentCompleted
	if completedNow {
		enrollment.Status = models.EnrollmentCompleted
		enrollment.CompletedAt = &now
	}

	if err := s.enrollments.Save(ctx, nil, enrollment); err != nil {
		return nil, err
	}

	if completedNow {
		s.log.Info("enrollment completed", "enrollment_id", enrollment.ID, "user_id", enrollment.UserID)
		s.notifier.Notify(enrollment.UserID, models.NotificationCourseCompleted,
			"Course completed",
			"Congratulations, you finished the course",
			map[string]interface{}{"course_id": enrollment.CourseID})
	}
	return enrollment, nil
}
