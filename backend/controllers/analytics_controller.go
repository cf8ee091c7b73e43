package controllers

import (
	"strconv"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsController struct {
	Svc *services.AnalyticsService
	Cfg *config.Config
}

func NewAnalyticsController(svc *services.AnalyticsService, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{Svc: svc, Cfg: cfg}
}

// parseDateRange reads optional start_date/end_date query params
// (YYYY-MM-DD, both inclusive). Missing params mean no range filter.
func parseDateRange(c *fiber.Ctx) (*services.DateRange, error) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" && endDate == "" {
		return nil, nil
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, err
	}

	// Push the end to the last instant of its day so the range stays
	// inclusive.
	return &services.DateRange{
		Start: start,
		End:   end.Add(24*time.Hour - time.Nanosecond),
	}, nil
}

// GetInstructorDashboard godoc
// @Summary Instructor dashboard
// @Description Revenue, students, completion and rating metrics across the instructor's courses
// @Tags analytics
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /analytics/dashboard [get]
func (ac *AnalyticsController) GetInstructorDashboard(c *fiber.Ctx) error {
	instructorID, err := utils.ExtractUserIDFromToken(c, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	rng, err := parseDateRange(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
	}

	dashboard, err := ac.Svc.InstructorDashboard(c.Context(), instructorID, rng)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, dashboard)
}

func (ac *AnalyticsController) GetCourseAnalytics(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, ac.Cfg); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	rng, err := parseDateRange(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
	}

	report, err := ac.Svc.CourseAnalytics(c.Context(), uint(courseID), rng)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, report)
}
