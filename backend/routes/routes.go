package routes

import (
	"learnhub/backend/config"
	"learnhub/backend/controllers"
	"learnhub/backend/middleware"
	"learnhub/backend/services"

	"github.com/gofiber/fiber/v2"
)

type Services struct {
	Progress    *services.ProgressService
	Quiz        *services.QuizService
	Analytics   *services.AnalyticsService
	Enrollment  *services.EnrollmentService
	Certificate *services.CertificateService
}

func SetupRoutes(app *fiber.App, svcs Services, cfg *config.Config) {
	authMiddleware := middleware.AuthMiddleware(cfg)

	// Progress routes
	progressController := controllers.NewProgressController(svcs.Progress, cfg)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Get("/dashboard", progressController.GetDashboard)
	progress.Post("/lessons/:id", progressController.UpdateLessonProgress)
	progress.Get("/courses/:id", progressController.GetCourseProgress)

	// Quiz routes
	quizzesController := controllers.NewQuizzesController(svcs.Quiz, cfg)
	quizzes := app.Group("/api/quizzes", authMiddleware)
	quizzes.Get("/:id", quizzesController.GetQuiz)
	quizzes.Post("/:id/attempts", quizzesController.StartAttempt)
	quizzes.Get("/:id/attempts", quizzesController.GetUserAttempts)
	app.Post("/api/attempts/:id/submit", authMiddleware, quizzesController.SubmitAttempt)

	// Enrollment routes
	enrollmentsController := controllers.NewEnrollmentsController(svcs.Enrollment, cfg)
	app.Post("/api/courses/:id/enroll", authMiddleware, enrollmentsController.Enroll)
	app.Get("/api/enrollments", authMiddleware, enrollmentsController.GetEnrollments)
	app.Put("/api/enrollments/:id/progress", authMiddleware, enrollmentsController.UpdateProgress)

	// Certificate routes
	certificatesController := controllers.NewCertificatesController(svcs.Certificate, cfg)
	app.Post("/api/courses/:id/certificate", authMiddleware, certificatesController.IssueCertificate)
	app.Get("/api/certificates/verify/:code", certificatesController.VerifyCertificate)

	// Analytics routes
	analyticsController := controllers.NewAnalyticsController(svcs.Analytics, cfg)
	analytics := app.Group("/api/analytics", authMiddleware)
	analytics.Get("/dashboard", analyticsController.GetInstructorDashboard)
	analytics.Get("/courses/:id", analyticsController.GetCourseAnalytics)
}
