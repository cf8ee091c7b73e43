package main

import (
	"log"

	"learnhub/backend/config"
	"learnhub/backend/database"
	"learnhub/backend/jobs"
	"learnhub/backend/middleware"
	"learnhub/backend/repository"
	"learnhub/backend/routes"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Error initializing database", "error", err)
	}

	// Repositories
	progressRepo := repository.NewProgressRepo(db)
	enrollmentRepo := repository.NewEnrollmentRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)
	quizRepo := repository.NewQuizRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	certificateRepo := repository.NewCertificateRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)

	// Services
	notifier := services.NewNotifier(notificationRepo, logger)
	svcs := routes.Services{
		Progress:    services.NewProgressService(db, progressRepo, enrollmentRepo, catalogRepo, logger),
		Quiz:        services.NewQuizService(db, quizRepo, notifier, logger),
		Analytics:   services.NewAnalyticsService(enrollmentRepo, catalogRepo, paymentRepo, progressRepo, quizRepo, reviewRepo, logger),
		Enrollment:  services.NewEnrollmentService(db, enrollmentRepo, catalogRepo, notifier, logger),
		Certificate: services.NewCertificateService(certificateRepo, enrollmentRepo, notifier, logger),
	}

	// Background jobs
	scheduler := jobs.StartScheduler(svcs.Quiz, cfg, logger)
	defer scheduler.Stop()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, svcs, cfg)

	// Start server
	logger.Fatal("server stopped", "error", app.Listen(":"+cfg.ServerPort))
}
