package services

import (
	"context"
	"fmt"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/repository"
	"learnhub/backend/utils"

	"gorm.io/gorm"
)

// QuizService enforces the attempt policy and grades submissions. Scoring
// is deterministic: exact answer-id match against the question's correct
// answer, weighted by points.
type QuizService struct {
	db       *gorm.DB
	quizzes  repository.QuizRepo
	notifier Notifier
	log      *utils.Logger
}

func NewQuizService(db *gorm.DB, quizzes repository.QuizRepo, notifier Notifier, log *utils.Logger) *QuizService {
	return &QuizService{
		db:       db,
		quizzes:  quizzes,
		notifier: notifier,
		log:      log.With("service", "quiz"),
	}
}

func (s *QuizService) GetQuiz(ctx context.Context, quizID uint) (*models.Quiz, error) {
	quiz, err := s.quizzes.FindWithQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, fmt.Errorf("quiz %d: %w", quizID, ErrNotFound)
	}
	return quiz, nil
}

// StartAttempt creates an in-progress attempt numbered count+1. The count
// and insert run in one transaction; together with the unique index on
// (quiz_id, user_id, attempt_number) this keeps the max-attempts invariant
// under concurrent starts.
func (s *QuizService) StartAttempt(ctx context.Context, quizID, userID uint) (*models.QuizAttempt, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	var attempt *models.QuizAttempt
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := s.quizzes.CountAttempts(ctx, tx, quizID, userID)
		if err != nil {
			return err
		}
		if count >= int64(quiz.MaxAttempts) {
			return fmt.Errorf("quiz %d allows %d attempts: %w", quizID, quiz.MaxAttempts, ErrAttemptLimitExceeded)
		}

		attempt = &models.QuizAttempt{
			QuizID:        quizID,
			UserID:        userID,
			Status:        models.AttemptInProgress,
			StartedAt:     time.Now(),
			AttemptNumber: int(count) + 1,
		}
		return s.quizzes.CreateAttempt(ctx, tx, attempt)
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// SubmitAttempt grades the attempt and marks it completed. Re-submission is
// rejected with ErrInvalidState rather than silently re-scored.
func (s *QuizService) SubmitAttempt(ctx context.Context, attemptID uint, answers map[uint]uint) (*models.QuizAttempt, error) {
	attempt, err := s.quizzes.FindAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, fmt.Errorf("attempt %d: %w", attemptID, ErrNotFound)
	}
	if attempt.Status != models.AttemptInProgress {
		return nil, fmt.Errorf("attempt %d is %s: %w", attemptID, attempt.Status, ErrInvalidState)
	}

	quiz, err := s.GetQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}

	score := scoreAnswers(quiz.Questions, answers)
	now := time.Now()
	attempt.Answers = answers
	attempt.Score = score
	attempt.Passed = score >= quiz.PassingScore
	attempt.Status = models.AttemptCompleted
	attempt.CompletedAt = &now

	if err := s.quizzes.SaveAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	s.log.Info("attempt graded",
		"attempt_id", attempt.ID, "quiz_id", quiz.ID, "user_id", attempt.UserID,
		"score", attempt.Score, "passed", attempt.Passed)
	s.notifier.Notify(attempt.UserID, models.NotificationQuizGraded,
		"Quiz graded",
		fmt.Sprintf("You scored %.2f%% on %q", attempt.Score, quiz.Title),
		map[string]interface{}{"quiz_id": quiz.ID, "attempt_id": attempt.ID, "passed": attempt.Passed})

	return attempt, nil
}

// scoreAnswers computes earned/total*100 over all questions. Questions with
// zero weight still count toward the denominator; a quiz with no questions
// scores 0. Short-answer questions are graded by exact id match like the
// rest.
func scoreAnswers(questions []models.QuizQuestion, answers map[uint]uint) float64 {
	totalPoints := 0
	earnedPoints := 0
	for _, q := range questions {
		totalPoints += q.Points

		submitted, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, a := range q.Answers {
			if a.IsCorrect {
				if submitted == a.ID {
					earnedPoints += q.Points
				}
				break
			}
		}
	}

	if totalPoints == 0 {
		return 0
	}
	score := float64(earnedPoints) / float64(totalPoints) * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return round2(score)
}

// GetUserAttempts returns the user's attempts for a quiz, newest attempt
// number first.
func (s *QuizService) GetUserAttempts(ctx context.Context, userID, quizID uint) ([]models.QuizAttempt, error) {
	return s.quizzes.ListUserAttempts(ctx, userID, quizID)
}

// AbandonStaleAttempts transitions in-progress attempts whose time limit
// (plus grace) has elapsed to abandoned. Quizzes without a time limit are
// left alone.
func (s *QuizService) AbandonStaleAttempts(ctx context.Context, grace time.Duration) (int64, error) {
	candidates, err := s.quizzes.InProgressCandidates(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	var stale []uint
	for _, c := range candidates {
		if c.TimeLimitMinutes <= 0 {
			continue
		}
		deadline := c.StartedAt.Add(time.Duration(c.TimeLimitMinutes)*time.Minute + grace)
		if now.After(deadline) {
			stale = append(stale, c.ID)
		}
	}

	abandoned, err := s.quizzes.MarkAbandoned(ctx, stale)
	if err != nil {
		return 0, err
	}
	if abandoned > 0 {
		s.log.Info("abandoned stale attempts", "count", abandoned)
	}
	return abandoned, nil
}
