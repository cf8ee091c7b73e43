package models

import (
	"time"

	"gorm.io/gorm"
)

type Certificate struct {
	gorm.Model
	CertificateNumber string `gorm:"uniqueIndex"`
	UserID            uint   `gorm:"uniqueIndex:idx_certificate_user_course"`
	CourseID          uint   `gorm:"uniqueIndex:idx_certificate_user_course"`
	FinalScore        float64
	VerificationCode  string `gorm:"uniqueIndex"`
	IsVerified        bool
	IssuedAt          time.Time
}
