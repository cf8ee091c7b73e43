package controllers

import (
	"strconv"

	"learnhub/backend/config"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Svc *services.ProgressService
	Cfg *config.Config
}

func NewProgressController(svc *services.ProgressService, cfg *config.Config) *ProgressController {
	return &ProgressController{Svc: svc, Cfg: cfg}
}

// UpdateLessonProgress godoc
// @Summary Record a lesson interaction
// @Description Upserts the lesson progress row and recomputes the course percentage
// @Tags progress
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/lessons/{id} [post]
func (pc *ProgressController) UpdateLessonProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	lessonID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input struct {
		WatchedSeconds int  `json:"watched_seconds" validate:"gte=0"`
		IsCompleted    bool `json:"is_completed"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.UnprocessableEntity(c, "Invalid progress payload", errs)
	}

	progress, err := pc.Svc.RecordLessonInteraction(c.Context(), userID, uint(lessonID), input.WatchedSeconds, input.IsCompleted)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	view, err := pc.Svc.GetCourseProgress(c.Context(), userID, uint(courseID))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, view)
}

func (pc *ProgressController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	dashboard, err := pc.Svc.GetDashboard(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, dashboard)
}
