package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment rows are written by the (excluded) payment capture flow; analytics
// reads only completed ones.
type Payment struct {
	gorm.Model
	UserID           uint `gorm:"index"`
	CourseID         uint `gorm:"index"`
	Amount           float64
	PlatformFee      float64
	InstructorAmount float64
	Currency         string
	Status           PaymentStatus `gorm:"default:pending;index"`
	PaidAt           *time.Time
}
