package models

import "gorm.io/gorm"

type NotificationType string

const (
	NotificationCourseEnrolled       NotificationType = "course_enrolled"
	NotificationCourseCompleted      NotificationType = "course_completed"
	NotificationQuizGraded           NotificationType = "quiz_graded"
	NotificationCertificateGenerated NotificationType = "certificate_generated"
)

type Notification struct {
	gorm.Model
	UserID  uint `gorm:"index"`
	Type    NotificationType
	Title   string
	Message string
	Payload map[string]interface{} `gorm:"serializer:json"`
	IsRead  bool
}
