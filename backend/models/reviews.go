package models

import "gorm.io/gorm"

// Review is unique per (user, course); moderated reviews are excluded from
// every aggregate.
type Review struct {
	gorm.Model
	UserID      uint `gorm:"uniqueIndex:idx_review_user_course"`
	CourseID    uint `gorm:"uniqueIndex:idx_review_user_course"`
	Rating      int  // 1..5
	Comment     string
	IsModerated bool
}
