package models

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress is unique per (user, lesson), created lazily on the first
// interaction. CompletedAt is set once and never cleared.
type LessonProgress struct {
	gorm.Model
	UserID             uint `gorm:"uniqueIndex:idx_progress_user_lesson"`
	LessonID           uint `gorm:"uniqueIndex:idx_progress_user_lesson"`
	IsCompleted        bool
	WatchedSeconds     int
	ProgressPercentage float64
	CompletedAt        *time.Time
	LastAccessedAt     *time.Time
}

// CourseProgressView combines a user's enrollment with their per-lesson
// progress for one course.
type CourseProgressView struct {
	Enrollment           CourseEnrollment `json:"enrollment"`
	LessonProgress       []LessonProgress `json:"lesson_progress"`
	CompletionPercentage float64          `json:"completion_percentage"`
}
