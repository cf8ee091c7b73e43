package models

import (
	"time"

	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
)

type Quiz struct {
	gorm.Model
	LessonID           uint `gorm:"index"`
	Title              string
	Description        string
	TimeLimitMinutes   int     `gorm:"default:60"`
	PassingScore       float64 `gorm:"default:70"`
	MaxAttempts        int     `gorm:"default:3"`
	ShuffleQuestions   bool    `gorm:"default:true"`
	ShowCorrectAnswers bool
	Questions          []QuizQuestion
}

type QuizQuestion struct {
	gorm.Model
	QuizID        uint `gorm:"index"`
	Question      string
	Type          QuestionType `gorm:"default:multiple_choice"`
	Points        int
	SequenceOrder int
	Explanation   string
	Answers       []QuizAnswer `gorm:"foreignKey:QuestionID"`
}

type QuizAnswer struct {
	gorm.Model
	QuestionID    uint `gorm:"index"`
	Answer        string
	IsCorrect     bool
	SequenceOrder int
}

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
	AttemptAbandoned  AttemptStatus = "abandoned"
)

// QuizAttempt is numbered sequentially per (quiz, user); the unique index
// backs the transactional count-then-insert in the grading service so the
// max-attempts invariant holds under concurrent starts.
type QuizAttempt struct {
	gorm.Model
	QuizID        uint          `gorm:"uniqueIndex:idx_attempt_quiz_user_number"`
	UserID        uint          `gorm:"uniqueIndex:idx_attempt_quiz_user_number"`
	AttemptNumber int           `gorm:"uniqueIndex:idx_attempt_quiz_user_number"`
	Status        AttemptStatus `gorm:"default:in_progress"`
	Score         float64
	Passed        bool
	Answers       map[uint]uint `gorm:"serializer:json"` // questionId -> submitted answerId
	StartedAt     time.Time
	CompletedAt   *time.Time
}
