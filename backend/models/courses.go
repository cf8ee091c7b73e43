package models

import (
	"time"

	"gorm.io/gorm"
)

// Course structure is owned by the catalog subsystem; the progress and
// grading services only ever read it.
type Course struct {
	gorm.Model
	Title         string
	ShortDesc     string
	Description   string
	InstructorID  uint `gorm:"index"`
	Price         float64
	Rating        float64
	StudentsCount int
	IsPublished   bool
	Modules       []CourseModule
}

type CourseModule struct {
	gorm.Model
	CourseID      uint `gorm:"index"`
	Title         string
	SequenceOrder int
	Lessons       []Lesson `gorm:"foreignKey:ModuleID"`
}

type Lesson struct {
	gorm.Model
	ModuleID      uint `gorm:"index"`
	Title         string
	Content       string
	SequenceOrder int
	DurationSecs  int
}

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// CourseEnrollment is unique per (user, course). Progress holds the rollup
// percentage recomputed from lesson completions; rows are never deleted,
// only status-transitioned.
type CourseEnrollment struct {
	gorm.Model
	UserID         uint             `gorm:"uniqueIndex:idx_enrollment_user_course"`
	CourseID       uint             `gorm:"uniqueIndex:idx_enrollment_user_course"`
	Status         EnrollmentStatus `gorm:"default:active"`
	Progress       float64
	CompletedAt    *time.Time
	LastAccessedAt *time.Time
	User           User   `gorm:"foreignKey:UserID"`
	Course         Course `gorm:"foreignKey:CourseID"`
}
