package services

import (
	"context"
	"math"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/repository"
	"learnhub/backend/utils"

	"golang.org/x/sync/errgroup"
)

// DateRange is an inclusive [Start, End] filter. A nil *DateRange means all
// time, except the revenue time series which defaults to the trailing 30
// days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r *DateRange) bounds() (from, to *time.Time) {
	if r == nil {
		return nil, nil
	}
	return &r.Start, &r.End
}

// AnalyticsService produces the read-only instructor views. Sub-queries of
// one report are independent and run concurrently; if any fails the whole
// report fails.
type AnalyticsService struct {
	enrollments repository.EnrollmentRepo
	catalog     repository.CatalogRepo
	payments    repository.PaymentRepo
	progress    repository.ProgressRepo
	quizzes     repository.QuizRepo
	reviews     repository.ReviewRepo
	log         *utils.Logger
}

func NewAnalyticsService(
	enrollments repository.EnrollmentRepo,
	catalog repository.CatalogRepo,
	payments repository.PaymentRepo,
	progress repository.ProgressRepo,
	quizzes repository.QuizRepo,
	reviews repository.ReviewRepo,
	log *utils.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		enrollments: enrollments,
		catalog:     catalog,
		payments:    payments,
		progress:    progress,
		quizzes:     quizzes,
		reviews:     reviews,
		log:         log.With("service", "analytics"),
	}
}

func (s *AnalyticsService) InstructorDashboard(ctx context.Context, instructorID uint, rng *DateRange) (*models.InstructorDashboard, error) {
	courses, err := s.catalog.CoursesByInstructor(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]uint, len(courses))
	for i, c := range courses {
		courseIDs[i] = c.ID
	}

	from, to := rng.bounds()

	seriesFrom := time.Now().AddDate(0, 0, -30)
	seriesTo := time.Now()
	if rng != nil {
		seriesFrom, seriesTo = rng.Start, rng.End
	}

	var (
		revenue       float64
		students      int64
		enrollCount   int64
		avgProgress   float64
		avgRating     float64
		recent        []models.CourseEnrollment
		topCourses    []models.Course
		revenueSeries []models.RevenuePoint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		revenue, err = s.payments.InstructorRevenue(gctx, instructorID, from, to)
		return err
	})
	g.Go(func() (err error) {
		students, err = s.enrollments.CountDistinctStudents(gctx, courseIDs)
		return err
	})
	g.Go(func() (err error) {
		enrollCount, err = s.enrollments.CountByCourses(gctx, courseIDs, from, to)
		return err
	})
	g.Go(func() (err error) {
		avgProgress, err = s.enrollments.AvgProgress(gctx, courseIDs)
		return err
	})
	g.Go(func() (err error) {
		avgRating, err = s.catalog.AvgRating(gctx, courseIDs)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.enrollments.Recent(gctx, courseIDs, 10)
		return err
	})
	g.Go(func() (err error) {
		topCourses, err = s.catalog.TopCoursesByInstructor(gctx, instructorID, 5)
		return err
	})
	g.Go(func() (err error) {
		revenueSeries, err = s.payments.RevenueOverTime(gctx, instructorID, seriesFrom, seriesTo)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if topCourses == nil {
		topCourses = []models.Course{}
	}
	if recent == nil {
		recent = []models.CourseEnrollment{}
	}
	if revenueSeries == nil {
		revenueSeries = []models.RevenuePoint{}
	}

	return &models.InstructorDashboard{
		Overview: models.DashboardOverview{
			TotalRevenue:     round2(revenue),
			TotalStudents:    students,
			TotalEnrollments: enrollCount,
			AvgCompletion:    round2(avgProgress),
			AvgRating:        round2(avgRating),
			TotalCourses:     len(courses),
		},
		RecentEnrollments: recent,
		TopCourses:        topCourses,
		RevenueOverTime:   revenueSeries,
	}, nil
}

func (s *AnalyticsService) CourseAnalytics(ctx context.Context, courseID uint, rng *DateRange) (*models.CourseAnalytics, error) {
	from, to := rng.bounds()

	var report models.CourseAnalytics

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		report.EnrollmentStats, err = s.enrollments.StatusCounts(gctx, courseID, from, to)
		return err
	})
	g.Go(func() (err error) {
		report.CompletionStats, err = s.completionStats(gctx, courseID)
		return err
	})
	g.Go(func() (err error) {
		report.QuizPerformance, err = s.quizPerformance(gctx, courseID)
		return err
	})
	g.Go(func() (err error) {
		report.StudentEngagement, err = s.progress.EngagementForCourse(gctx, courseID, from, to)
		return err
	})
	g.Go(func() (err error) {
		report.RevenueStats, err = s.payments.CourseRevenue(gctx, courseID, from, to)
		return err
	})
	g.Go(func() (err error) {
		report.ReviewStats, err = s.reviewStats(gctx, courseID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.RevenueStats.TotalRevenue = round2(report.RevenueStats.TotalRevenue)
	report.RevenueStats.InstructorRevenue = round2(report.RevenueStats.InstructorRevenue)
	return &report, nil
}

func (s *AnalyticsService) completionStats(ctx context.Context, courseID uint) (models.CompletionStats, error) {
	enrollments, err := s.enrollments.ListByCourse(ctx, courseID)
	if err != nil || len(enrollments) == 0 {
		return models.CompletionStats{}, err
	}

	var totalProgress float64
	var completed int
	for _, e := range enrollments {
		totalProgress += e.Progress
		if e.Progress >= 100 {
			completed++
		}
	}

	completionRate := float64(completed) / float64(len(enrollments)) * 100
	return models.CompletionStats{
		AvgProgress:    round2(totalProgress / float64(len(enrollments))),
		CompletionRate: round2(completionRate),
		DropoffRate:    round2(100 - completionRate),
	}, nil
}

func (s *AnalyticsService) quizPerformance(ctx context.Context, courseID uint) (models.QuizPerformance, error) {
	attempts, err := s.quizzes.CompletedAttemptsForCourse(ctx, courseID)
	if err != nil || len(attempts) == 0 {
		return models.QuizPerformance{}, err
	}

	var totalScore float64
	var passed int
	for _, a := range attempts {
		totalScore += a.Score
		if a.Passed {
			passed++
		}
	}

	return models.QuizPerformance{
		AvgScore:      round2(totalScore / float64(len(attempts))),
		PassRate:      round2(float64(passed) / float64(len(attempts)) * 100),
		TotalAttempts: len(attempts),
	}, nil
}

func (s *AnalyticsService) reviewStats(ctx context.Context, courseID uint) (models.ReviewStats, error) {
	distribution := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}

	reviews, err := s.reviews.UnmoderatedForCourse(ctx, courseID)
	if err != nil {
		return models.ReviewStats{RatingDistribution: distribution}, err
	}
	if len(reviews) == 0 {
		return models.ReviewStats{RatingDistribution: distribution}, nil
	}

	var totalRating int
	for _, r := range reviews {
		totalRating += r.Rating
		if r.Rating >= 1 && r.Rating <= 5 {
			distribution[r.Rating]++
		}
	}

	return models.ReviewStats{
		TotalReviews:       len(reviews),
		AvgRating:          round2(float64(totalRating) / float64(len(reviews))),
		RatingDistribution: distribution,
	}, nil
}

// round2 rounds to 2 decimal places; applied at the point of output only.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
