package services

import (
	"context"
	"testing"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsService(t *testing.T) (*AnalyticsService, *testEnv) {
	t.Helper()

	db := newTestDB(t)
	svc := NewAnalyticsService(
		repository.NewEnrollmentRepo(db),
		repository.NewCatalogRepo(db),
		repository.NewPaymentRepo(db),
		repository.NewProgressRepo(db),
		repository.NewQuizRepo(db),
		repository.NewReviewRepo(db),
		testLogger(),
	)
	return svc, &testEnv{db: db}
}

func TestInstructorDashboardWithNoCourses(t *testing.T) {
	svc, _ := newAnalyticsService(t)

	dashboard, err := svc.InstructorDashboard(context.Background(), 77, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dashboard.Overview.TotalRevenue)
	assert.Equal(t, int64(0), dashboard.Overview.TotalStudents)
	assert.Equal(t, int64(0), dashboard.Overview.TotalEnrollments)
	assert.Equal(t, 0.0, dashboard.Overview.AvgCompletion)
	assert.Equal(t, 0.0, dashboard.Overview.AvgRating)
	assert.Empty(t, dashboard.TopCourses)
	assert.Empty(t, dashboard.RecentEnrollments)
	assert.Empty(t, dashboard.RevenueOverTime)
}

func TestInstructorDashboardAggregates(t *testing.T) {
	svc, env := newAnalyticsService(t)
	ctx := context.Background()

	courseA, _ := seedCourse(t, env.db, 11, 2)
	courseB, _ := seedCourse(t, env.db, 11, 2)
	require.NoError(t, env.db.Model(&models.Course{}).Where("id = ?", courseA.ID).
		Updates(map[string]interface{}{"students_count": 5, "rating": 4.5}).Error)
	require.NoError(t, env.db.Model(&models.Course{}).Where("id = ?", courseB.ID).
		Updates(map[string]interface{}{"students_count": 9, "rating": 3.5}).Error)

	// Same student in both courses counts once.
	e1 := seedEnrollment(t, env.db, 101, courseA.ID)
	require.NoError(t, env.db.Model(&e1).Update("progress", 100).Error)
	e2 := seedEnrollment(t, env.db, 101, courseB.ID)
	require.NoError(t, env.db.Model(&e2).Update("progress", 50).Error)
	seedEnrollment(t, env.db, 102, courseA.ID)

	seedPayment(t, env.db, courseA.ID, 100, 70, time.Now().Add(-time.Hour))
	seedPayment(t, env.db, courseB.ID, 50, 35, time.Now().Add(-2*time.Hour))
	// Pending payments never count.
	pending := models.Payment{CourseID: courseA.ID, Amount: 500, InstructorAmount: 350, Status: models.PaymentPending}
	require.NoError(t, env.db.Create(&pending).Error)

	dashboard, err := svc.InstructorDashboard(ctx, 11, nil)
	require.NoError(t, err)

	assert.Equal(t, 105.0, dashboard.Overview.TotalRevenue)
	assert.Equal(t, int64(2), dashboard.Overview.TotalStudents)
	assert.Equal(t, int64(3), dashboard.Overview.TotalEnrollments)
	assert.Equal(t, 50.0, dashboard.Overview.AvgCompletion) // (100+50+0)/3
	assert.Equal(t, 4.0, dashboard.Overview.AvgRating)
	assert.Equal(t, 2, dashboard.Overview.TotalCourses)

	require.Len(t, dashboard.TopCourses, 2)
	assert.Equal(t, courseB.ID, dashboard.TopCourses[0].ID) // more students
	assert.Equal(t, courseA.ID, dashboard.TopCourses[1].ID)

	require.Len(t, dashboard.RecentEnrollments, 3)

	// Both payments land inside the default trailing 30 days.
	var total float64
	for _, p := range dashboard.RevenueOverTime {
		total += p.Revenue
	}
	assert.Equal(t, 105.0, total)
}

func TestCourseAnalyticsEmptyCourse(t *testing.T) {
	svc, env := newAnalyticsService(t)

	course, _ := seedCourse(t, env.db, 1, 3)

	report, err := svc.CourseAnalytics(context.Background(), course.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), report.EnrollmentStats.Total)
	assert.Equal(t, 0.0, report.CompletionStats.AvgProgress)
	assert.Equal(t, 0.0, report.CompletionStats.CompletionRate)
	assert.Equal(t, 0.0, report.CompletionStats.DropoffRate)
	assert.Equal(t, 0.0, report.QuizPerformance.AvgScore)
	assert.Equal(t, 0.0, report.QuizPerformance.PassRate)
	assert.Equal(t, 0, report.QuizPerformance.TotalAttempts)
	assert.Equal(t, int64(0), report.StudentEngagement.ActiveStudents)
	assert.Equal(t, 0.0, report.RevenueStats.TotalRevenue)
	assert.Equal(t, 0, report.ReviewStats.TotalReviews)
	assert.Equal(t, 0.0, report.ReviewStats.AvgRating)
	for rating := 1; rating <= 5; rating++ {
		assert.Equal(t, int64(0), report.ReviewStats.RatingDistribution[rating])
	}
}

func TestCourseAnalyticsCompletionStats(t *testing.T) {
	svc, env := newAnalyticsService(t)

	course, _ := seedCourse(t, env.db, 1, 2)
	done := seedEnrollment(t, env.db, 1, course.ID)
	require.NoError(t, env.db.Model(&done).Updates(map[string]interface{}{
		"progress": 100, "status": models.EnrollmentCompleted,
	}).Error)
	half := seedEnrollment(t, env.db, 2, course.ID)
	require.NoError(t, env.db.Model(&half).Update("progress", 50).Error)
	seedEnrollment(t, env.db, 3, course.ID)

	report, err := svc.CourseAnalytics(context.Background(), course.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.EnrollmentStats.Total)
	assert.Equal(t, int64(2), report.EnrollmentStats.Active)
	assert.Equal(t, int64(1), report.EnrollmentStats.Completed)
	assert.Equal(t, 50.0, report.CompletionStats.AvgProgress)
	assert.Equal(t, 33.33, report.CompletionStats.CompletionRate)
	assert.Equal(t, 66.67, report.CompletionStats.DropoffRate)
}

func TestCourseAnalyticsReviewStatsRounding(t *testing.T) {
	svc, env := newAnalyticsService(t)

	course, _ := seedCourse(t, env.db, 1, 1)
	for i, rating := range []int{5, 4, 4} {
		review := models.Review{UserID: uint(i + 1), CourseID: course.ID, Rating: rating}
		require.NoError(t, env.db.Create(&review).Error)
	}
	// Moderated reviews are invisible to aggregates.
	moderated := models.Review{UserID: 9, CourseID: course.ID, Rating: 1, IsModerated: true}
	require.NoError(t, env.db.Create(&moderated).Error)

	report, err := svc.CourseAnalytics(context.Background(), course.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, report.ReviewStats.TotalReviews)
	assert.Equal(t, 4.33, report.ReviewStats.AvgRating)
	assert.Equal(t, int64(2), report.ReviewStats.RatingDistribution[4])
	assert.Equal(t, int64(1), report.ReviewStats.RatingDistribution[5])
	assert.Equal(t, int64(0), report.ReviewStats.RatingDistribution[1])
}

func TestCourseAnalyticsQuizPerformance(t *testing.T) {
	svc, env := newAnalyticsService(t)

	course, lessons := seedCourse(t, env.db, 1, 1)
	quiz := seedQuiz(t, env.db, lessons[0], 70, 5, []int{10})

	now := time.Now()
	for _, a := range []struct {
		score  float64
		passed bool
		number int
	}{
		{score: 80, passed: true, number: 1},
		{score: 60, passed: false, number: 2},
	} {
		attempt := models.QuizAttempt{
			QuizID:        quiz.ID,
			UserID:        4,
			AttemptNumber: a.number,
			Status:        models.AttemptCompleted,
			Score:         a.score,
			Passed:        a.passed,
			StartedAt:     now,
			CompletedAt:   &now,
		}
		require.NoError(t, env.db.Create(&attempt).Error)
	}
	// In-progress attempts are excluded.
	open := models.QuizAttempt{QuizID: quiz.ID, UserID: 4, AttemptNumber: 3, Status: models.AttemptInProgress, StartedAt: now}
	require.NoError(t, env.db.Create(&open).Error)

	report, err := svc.CourseAnalytics(context.Background(), course.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.QuizPerformance.TotalAttempts)
	assert.Equal(t, 70.0, report.QuizPerformance.AvgScore)
	assert.Equal(t, 50.0, report.QuizPerformance.PassRate)
}

func TestCourseAnalyticsRevenueAndEngagementRange(t *testing.T) {
	svc, env := newAnalyticsService(t)
	ctx := context.Background()

	course, lessons := seedCourse(t, env.db, 1, 1)

	inRange := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	outOfRange := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	seedPayment(t, env.db, course.ID, 100, 70, inRange)
	seedPayment(t, env.db, course.ID, 40, 28, outOfRange)

	progress := models.LessonProgress{UserID: 6, LessonID: lessons[0], WatchedSeconds: 30, LastAccessedAt: &inRange}
	require.NoError(t, env.db.Create(&progress).Error)

	rng := &DateRange{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC),
	}
	report, err := svc.CourseAnalytics(ctx, course.ID, rng)
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.RevenueStats.TotalRevenue)
	assert.Equal(t, 70.0, report.RevenueStats.InstructorRevenue)
	assert.Equal(t, int64(1), report.RevenueStats.TotalSales)
	assert.Equal(t, int64(1), report.StudentEngagement.ActiveStudents)
	assert.Equal(t, int64(1), report.StudentEngagement.TotalInteractions)

	// Without a range everything counts.
	report, err = svc.CourseAnalytics(ctx, course.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 140.0, report.RevenueStats.TotalRevenue)
	assert.Equal(t, int64(2), report.RevenueStats.TotalSales)
}
