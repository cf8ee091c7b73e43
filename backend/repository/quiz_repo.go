package repository

import (
	"context"
	"errors"
	"time"

	"learnhub/backend/models"

	"gorm.io/gorm"
)

// StaleCandidate is an in-progress attempt together with its quiz time
// limit, enough for the sweeper to decide staleness without loading the
// full quiz.
type StaleCandidate struct {
	ID               uint
	StartedAt        time.Time
	TimeLimitMinutes int
}

type QuizRepo interface {
	FindWithQuestions(ctx context.Context, quizID uint) (*models.Quiz, error)
	CountAttempts(ctx context.Context, tx *gorm.DB, quizID, userID uint) (int64, error)
	CreateAttempt(ctx context.Context, tx *gorm.DB, row *models.QuizAttempt) error
	FindAttempt(ctx context.Context, attemptID uint) (*models.QuizAttempt, error)
	SaveAttempt(ctx context.Context, row *models.QuizAttempt) error
	ListUserAttempts(ctx context.Context, userID, quizID uint) ([]models.QuizAttempt, error)
	CompletedAttemptsForCourse(ctx context.Context, courseID uint) ([]models.QuizAttempt, error)
	InProgressCandidates(ctx context.Context) ([]StaleCandidate, error)
	MarkAbandoned(ctx context.Context, ids []uint) (int64, error)
}

type quizRepo struct {
	db *gorm.DB
}

func NewQuizRepo(db *gorm.DB) QuizRepo {
	return &quizRepo{db: db}
}

func (r *quizRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *quizRepo) FindWithQuestions(ctx context.Context, quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.sequence_order")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_answers.sequence_order")
		}).
		First(&quiz, quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) CountAttempts(ctx context.Context, tx *gorm.DB, quizID, userID uint) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Count(&count).Error
	return count, err
}

func (r *quizRepo) CreateAttempt(ctx context.Context, tx *gorm.DB, row *models.QuizAttempt) error {
	return r.conn(tx).WithContext(ctx).Create(row).Error
}

func (r *quizRepo) FindAttempt(ctx context.Context, attemptID uint) (*models.QuizAttempt, error) {
	var row models.QuizAttempt
	err := r.db.WithContext(ctx).First(&row, attemptID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *quizRepo) SaveAttempt(ctx context.Context, row *models.QuizAttempt) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *quizRepo) ListUserAttempts(ctx context.Context, userID, quizID uint) ([]models.QuizAttempt, error) {
	var rows []models.QuizAttempt
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number DESC").
		Find(&rows).Error
	return rows, err
}

func (r *quizRepo) CompletedAttemptsForCourse(ctx context.Context, courseID uint) ([]models.QuizAttempt, error) {
	var rows []models.QuizAttempt
	err := r.db.WithContext(ctx).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Joins("JOIN lessons ON lessons.id = quizzes.lesson_id").
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND quiz_attempts.status = ?", courseID, models.AttemptCompleted).
		Find(&rows).Error
	return rows, err
}

func (r *quizRepo) InProgressCandidates(ctx context.Context) ([]StaleCandidate, error) {
	var rows []StaleCandidate
	err := r.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quiz_attempts.status = ?", models.AttemptInProgress).
		Select("quiz_attempts.id, quiz_attempts.started_at, quizzes.time_limit_minutes").
		Scan(&rows).Error
	return rows, err
}

func (r *quizRepo) MarkAbandoned(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("id IN ? AND status = ?", ids, models.AttemptInProgress).
		Update("status", models.AttemptAbandoned)
	return res.RowsAffected, res.Error
}
