package repository

import (
	"context"
	"time"

	"learnhub/backend/models"

	"gorm.io/gorm"
)

// PaymentRepo reads completed-payment facts written by the excluded payment
// capture flow.
type PaymentRepo interface {
	InstructorRevenue(ctx context.Context, instructorID uint, from, to *time.Time) (float64, error)
	RevenueOverTime(ctx context.Context, instructorID uint, from, to time.Time) ([]models.RevenuePoint, error)
	CourseRevenue(ctx context.Context, courseID uint, from, to *time.Time) (models.RevenueStats, error)
	Create(ctx context.Context, row *models.Payment) error
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepo {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) InstructorRevenue(ctx context.Context, instructorID uint, from, to *time.Time) (float64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Joins("JOIN courses ON courses.id = payments.course_id").
		Where("courses.instructor_id = ? AND payments.status = ?", instructorID, models.PaymentCompleted)
	if from != nil && to != nil {
		query = query.Where("payments.paid_at BETWEEN ? AND ?", from, to)
	}

	var total *float64
	err := query.Select("SUM(payments.instructor_amount)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *paymentRepo) RevenueOverTime(ctx context.Context, instructorID uint, from, to time.Time) ([]models.RevenuePoint, error) {
	var points []models.RevenuePoint
	err := r.db.WithContext(ctx).Raw(`
		SELECT DATE(payments.paid_at) AS date,
		       SUM(payments.instructor_amount) AS revenue
		FROM payments
		JOIN courses ON courses.id = payments.course_id
		WHERE courses.instructor_id = ?
		  AND payments.status = ?
		  AND payments.paid_at BETWEEN ? AND ?
		GROUP BY DATE(payments.paid_at)
		ORDER BY date ASC
	`, instructorID, models.PaymentCompleted, from, to).Scan(&points).Error
	return points, err
}

func (r *paymentRepo) CourseRevenue(ctx context.Context, courseID uint, from, to *time.Time) (models.RevenueStats, error) {
	var out models.RevenueStats

	query := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("course_id = ? AND status = ?", courseID, models.PaymentCompleted)
	if from != nil && to != nil {
		query = query.Where("paid_at BETWEEN ? AND ?", from, to)
	}

	var row struct {
		TotalRevenue      *float64
		InstructorRevenue *float64
		TotalSales        int64
	}
	err := query.
		Select("SUM(amount) AS total_revenue, SUM(instructor_amount) AS instructor_revenue, COUNT(id) AS total_sales").
		Scan(&row).Error
	if err != nil {
		return out, err
	}
	if row.TotalRevenue != nil {
		out.TotalRevenue = *row.TotalRevenue
	}
	if row.InstructorRevenue != nil {
		out.InstructorRevenue = *row.InstructorRevenue
	}
	out.TotalSales = row.TotalSales
	return out, nil
}

func (r *paymentRepo) Create(ctx context.Context, row *models.Payment) error {
	return r.db.WithContext(ctx).Create(row).Error
}
