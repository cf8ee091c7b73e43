package models

import "gorm.io/gorm"

// User is owned by the (excluded) auth subsystem; kept here so enrollments
// and analytics can resolve display names.
type User struct {
	gorm.Model
	Username string
	Email    string `gorm:"uniqueIndex"`
	Role     string // student, instructor, admin
}
