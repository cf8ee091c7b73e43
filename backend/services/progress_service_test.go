package services

import (
	"context"
	"testing"

	"learnhub/backend/models"
	"learnhub/backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressService(t *testing.T) (*ProgressService, *testEnv) {
	t.Helper()

	db := newTestDB(t)
	env := &testEnv{db: db}
	svc := NewProgressService(
		db,
		repository.NewProgressRepo(db),
		repository.NewEnrollmentRepo(db),
		repository.NewCatalogRepo(db),
		testLogger(),
	)
	return svc, env
}

func TestRecordLessonInteractionRollsUpEnrollment(t *testing.T) {
	svc, env := newProgressService(t)
	ctx := context.Background()

	course, lessons := seedCourse(t, env.db, 1, 4)
	seedEnrollment(t, env.db, 42, course.ID)

	// Complete 3 of 4 lessons.
	for _, lessonID := range lessons[:3] {
		_, err := svc.RecordLessonInteraction(ctx, 42, lessonID, 120, true)
		require.NoError(t, err)
	}

	var enrollment models.CourseEnrollment
	require.NoError(t, env.db.Where("user_id = ? AND course_id = ?", 42, course.ID).First(&enrollment).Error)
	assert.Equal(t, 75.0, enrollment.Progress)
	assert.NotNil(t, enrollment.LastAccessedAt)
}

func TestRecordLessonInteractionCompletionIsMonotonic(t *testing.T) {
	svc, env := newProgressService(t)
	ctx := context.Background()

	course, lessons := seedCourse(t, env.db, 1, 2)
	seedEnrollment(t, env.db, 7, course.ID)

	first, err := svc.RecordLessonInteraction(ctx, 7, lessons[0], 60, true)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)
	assert.Equal(t, 100.0, first.ProgressPercentage)

	// A later interaction never clears CompletedAt, even with
	// isCompleted=false, and the raw fields take the latest write.
	second, err := svc.RecordLessonInteraction(ctx, 7, lessons[0], 30, false)
	require.NoError(t, err)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, second.CompletedAt.Equal(*first.CompletedAt))
	assert.Equal(t, 30, second.WatchedSeconds)
	assert.False(t, second.IsCompleted)

	third, err := svc.RecordLessonInteraction(ctx, 7, lessons[0], 90, true)
	require.NoError(t, err)
	assert.True(t, third.CompletedAt.Equal(*first.CompletedAt))
}

func TestRecordLessonInteractionWithoutEnrollment(t *testing.T) {
	svc, env := newProgressService(t)
	ctx := context.Background()

	_, lessons := seedCourse(t, env.db, 1, 3)

	// Preview lessons: progress is recorded even though the user never
	// enrolled, and no enrollment row appears.
	progress, err := svc.RecordLessonInteraction(ctx, 99, lessons[0], 45, true)
	require.NoError(t, err)
	assert.True(t, progress.IsCompleted)

	var count int64
	require.NoError(t, env.db.Model(&models.CourseEnrollment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordLessonInteractionOrphanLesson(t *testing.T) {
	svc, env := newProgressService(t)
	ctx := context.Background()

	// A lesson with no owning course: the rollup is skipped, nothing
	// divides by zero.
	lesson := models.Lesson{Title: "Orphan", SequenceOrder: 1}
	require.NoError(t, env.db.Create(&lesson).Error)

	progress, err := svc.RecordLessonInteraction(ctx, 5, lesson.ID, 10, true)
	require.NoError(t, err)
	assert.True(t, progress.IsCompleted)
}

func TestRecordLessonInteractionRejectsNegativeSeconds(t *testing.T) {
	svc, env := newProgressService(t)

	_, lessons := seedCourse(t, env.db, 1, 1)

	_, err := svc.RecordLessonInteraction(context.Background(), 1, lessons[0], -5, false)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetCourseProgress(t *testing.T) {
	svc, env := newProgressService(t)
	ctx := context.Background()

	course, lessons := seedCourse(t, env.db, 1, 2)
	seedEnrollment(t, env.db, 8, course.ID)

	_, err := svc.RecordLessonInteraction(ctx, 8, lessons[0], 300, true)
	require.NoError(t, err)

	view, err := svc.GetCourseProgress(ctx, 8, course.ID)
	require.NoError(t, err)
	assert.Len(t, view.LessonProgress, 1)
	assert.Equal(t, 50.0, view.CompletionPercentage)

	_, err = svc.GetCourseProgress(ctx, 8, course.ID+1000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetDashboardCounts(t *testing.T) {
	svc, env := newProgressService(t)
	ctx := context.Background()

	courseA, _ := seedCourse(t, env.db, 1, 1)
	courseB, _ := seedCourse(t, env.db, 1, 1)
	courseC, _ := seedCourse(t, env.db, 1, 1)

	done := seedEnrollment(t, env.db, 3, courseA.ID)
	require.NoError(t, env.db.Model(&done).Update("progress", 100).Error)
	halfway := seedEnrollment(t, env.db, 3, courseB.ID)
	require.NoError(t, env.db.Model(&halfway).Update("progress", 40).Error)
	seedEnrollment(t, env.db, 3, courseC.ID)

	dashboard, err := svc.GetDashboard(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, dashboard.TotalCourses)
	assert.Equal(t, 1, dashboard.CompletedCourses)
	assert.Equal(t, 1, dashboard.InProgressCourses)
}
