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

// ProgressService records lesson interactions and rolls per-lesson
// completions up into the enrollment percentage.
type ProgressService struct {
	db          *gorm.DB
	progress    repository.ProgressRepo
	enrollments repository.EnrollmentRepo
	catalog     repository.CatalogRepo
	log         *utils.Logger
}

func NewProgressService(
	db *gorm.DB,
	progress repository.ProgressRepo,
	enrollments repository.EnrollmentRepo,
	catalog repository.CatalogRepo,
	log *utils.Logger,
) *ProgressService {
	return &ProgressService{
		db:          db,
		progress:    progress,
		enrollments: enrollments,
		catalog:     catalog,
		log:         log.With("service", "progress"),
	}
}

// RecordLessonInteraction upserts the (user, lesson) progress row and
// recomputes the owning course's enrollment percentage. The progress write
// and the rollup write run in one transaction. WatchedSeconds and
// IsCompleted are overwritten with the caller's values; CompletedAt is set
// once and never cleared.
func (s *ProgressService) RecordLessonInteraction(ctx context.Context, userID, lessonID uint, watchedSeconds int, isCompleted bool) (*models.LessonProgress, error) {
	if watchedSeconds < 0 {
		return nil, fmt.Errorf("watched seconds must not be negative: %w", ErrValidation)
	}

	var row *models.LessonProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		row, err = s.progress.FindByUserAndLesson(ctx, tx, userID, lessonID)
		if err != nil {
			return err
		}
		if row == nil {
			row = &models.LessonProgress{UserID: userID, LessonID: lessonID}
		}

		now := time.Now()
		row.WatchedSeconds = watchedSeconds
		row.IsCompleted = isCompleted
		row.LastAccessedAt = &now
		if isCompleted && row.CompletedAt == nil {
			row.CompletedAt = &now
			row.ProgressPercentage = 100
		}

		if err := s.progress.Save(ctx, tx, row); err != nil {
			return err
		}
		return s.rollupCourseProgress(ctx, tx, userID, lessonID)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// rollupCourseProgress recomputes completedLessons/totalLessons*100 for the
// lesson's owning course and writes it onto the enrollment. A missing
// enrollment is not an error: progress may be recorded for preview lessons.
func (s *ProgressService) rollupCourseProgress(ctx context.Context, tx *gorm.DB, userID, lessonID uint) error {
	courseID, err := s.catalog.CourseIDForLesson(ctx, tx, lessonID)
	if err != nil {
		return err
	}
	if courseID == 0 {
		return nil
	}

	totalLessons, err := s.catalog.CountLessonsInCourse(ctx, tx, courseID)
	if err != nil {
		return err
	}
	completedLessons, err := s.progress.CountCompletedForCourse(ctx, tx, userID, courseID)
	if err != nil {
		return err
	}

	var percentage float64
	if totalLessons > 0 {
		percentage = float64(completedLessons) / float64(totalLessons) * 100
	}

	enrollment, err := s.enrollments.FindByUserAndCourse(ctx, tx, userID, courseID)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return nil
	}

	now := time.Now()
	enrollment.Progress = percentage
	enrollment.LastAccessedAt = &now
	return s.enrollments.Save(ctx, tx, enrollment)
}

// GetCourseProgress returns the enrollment together with the per-lesson
// rows for the course; ErrNotFound when the user is not enrolled.
func (s *ProgressService) GetCourseProgress(ctx context.Context, userID, courseID uint) (*models.CourseProgressView, error) {
	enrollment, err := s.enrollments.FindByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("enrollment for course %d: %w", courseID, ErrNotFound)
	}

	lessonIDs, err := s.catalog.LessonIDsForCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	inCourse := make(map[uint]bool, len(lessonIDs))
	for _, id := range lessonIDs {
		inCourse[id] = true
	}

	all, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows := make([]models.LessonProgress, 0, len(all))
	for _, p := range all {
		if inCourse[p.LessonID] {
			rows = append(rows, p)
		}
	}

	return &models.CourseProgressView{
		Enrollment:           *enrollment,
		LessonProgress:       rows,
		CompletionPercentage: enrollment.Progress,
	}, nil
}

// GetDashboard summarizes the user's enrollments, most recently accessed
// first.
func (s *ProgressService) GetDashboard(ctx context.Context, userID uint) (*models.StudentDashboard, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &models.StudentDashboard{
		TotalCourses: len(enrollments),
		Enrollments:  enrollments,
	}
	for _, e := range enrollments {
		switch {
		case e.Progress >= 100:
			dashboard.CompletedCourses++
		case e.Progress > 0:
			dashboard.InProgressCourses++
		}
	}
	return dashboard, nil
}
