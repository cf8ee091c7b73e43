package services

import (
	"fmt"
	"testing"
	"time"

	"learnhub/backend/database"
	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv bundles what service tests need to seed data directly.
type testEnv struct {
	db *gorm.DB
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared in-memory DB per test so the pool's connections all see
	// the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testLogger() *utils.Logger {
	return utils.NopLogger()
}

// seedCourse creates a course with a single module holding lessonCount
// lessons and returns the course and lesson IDs in order.
func seedCourse(t *testing.T, db *gorm.DB, instructorID uint, lessonCount int) (models.Course, []uint) {
	t.Helper()

	course := models.Course{
		Title:        fmt.Sprintf("Course by %d", instructorID),
		InstructorID: instructorID,
		IsPublished:  true,
	}
	require.NoError(t, db.Create(&course).Error)

	module := models.CourseModule{CourseID: course.ID, Title: "Module 1", SequenceOrder: 1}
	require.NoError(t, db.Create(&module).Error)

	lessonIDs := make([]uint, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := models.Lesson{
			ModuleID:      module.ID,
			Title:         fmt.Sprintf("Lesson %d", i+1),
			SequenceOrder: i + 1,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessonIDs = append(lessonIDs, lesson.ID)
	}
	return course, lessonIDs
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) models.CourseEnrollment {
	t.Helper()

	enrollment := models.CourseEnrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   models.EnrollmentActive,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}

// seedQuiz attaches a quiz to the lesson with one question per entry of
// points; each question gets one correct and one wrong answer. Returns the
// quiz reloaded with questions and answers.
func seedQuiz(t *testing.T, db *gorm.DB, lessonID uint, passingScore float64, maxAttempts int, points []int) models.Quiz {
	t.Helper()

	quiz := models.Quiz{
		LessonID:     lessonID,
		Title:        "Checkpoint quiz",
		PassingScore: passingScore,
		MaxAttempts:  maxAttempts,
	}
	require.NoError(t, db.Create(&quiz).Error)

	for i, p := range points {
		question := models.QuizQuestion{
			QuizID:        quiz.ID,
			Question:      fmt.Sprintf("Question %d", i+1),
			Type:          models.QuestionMultipleChoice,
			Points:        p,
			SequenceOrder: i + 1,
		}
		require.NoError(t, db.Create(&question).Error)

		correct := models.QuizAnswer{QuestionID: question.ID, Answer: "right", IsCorrect: true, SequenceOrder: 1}
		wrong := models.QuizAnswer{QuestionID: question.ID, Answer: "wrong", SequenceOrder: 2}
		require.NoError(t, db.Create(&correct).Error)
		require.NoError(t, db.Create(&wrong).Error)
	}

	var loaded models.Quiz
	require.NoError(t, db.Preload("Questions.Answers").First(&loaded, quiz.ID).Error)
	return loaded
}

// correctAnswerID returns the id of the correct answer for a question.
func correctAnswerID(t *testing.T, q models.QuizQuestion) uint {
	t.Helper()
	for _, a := range q.Answers {
		if a.IsCorrect {
			return a.ID
		}
	}
	t.Fatalf("question %d has no correct answer", q.ID)
	return 0
}

func seedPayment(t *testing.T, db *gorm.DB, courseID uint, amount, instructorAmount float64, paidAt time.Time) {
	t.Helper()

	payment := models.Payment{
		UserID:           1,
		CourseID:         courseID,
		Amount:           amount,
		InstructorAmount: instructorAmount,
		Status:           models.PaymentCompleted,
		PaidAt:           &paidAt,
	}
	require.NoError(t, db.Create(&payment).Error)
}
