package controllers

import (
	"strconv"

	"learnhub/backend/config"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type EnrollmentsController struct {
	Svc *services.EnrollmentService
	Cfg *config.Config
}

func NewEnrollmentsController(svc *services.EnrollmentService, cfg *config.Config) *EnrollmentsController {
	return &EnrollmentsController{Svc: svc, Cfg: cfg}
}

func (ec *EnrollmentsController) Enroll(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	enrollment, err := ec.Svc.Enroll(c.Context(), userID, uint(courseID))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Created(c, enrollment)
}

func (ec *EnrollmentsController) GetEnrollments(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, ec.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	enrollments, err := ec.Svc.ListUserEnrollments(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, enrollments)
}

func (ec *EnrollmentsController) UpdateProgress(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, ec.Cfg); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	enrollmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid enrollment ID")
	}

	var input struct {
		Progress float64 `json:"progress" validate:"gte=0,lte=100"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if errs := utils.ValidateStruct(input); errs != nil {
		return utils.UnprocessableEntity(c, "Invalid progress payload", errs)
	}

	enrollment, err := ec.Svc.UpdateEnrollmentProgress(c.Context(), uint(enrollmentID), input.Progress)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, enrollment)
}
