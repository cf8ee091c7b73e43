package controllers

import (
	"strconv"

	"learnhub/backend/config"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type QuizzesController struct {
	Svc *services.QuizService
	Cfg *config.Config
}

func NewQuizzesController(svc *services.QuizService, cfg *config.Config) *QuizzesController {
	return &QuizzesController{Svc: svc, Cfg: cfg}
}

func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, qc.Cfg); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	quiz, err := qc.Svc.GetQuiz(c.Context(), uint(quizID))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, quiz)
}

// StartAttempt godoc
// @Summary Start a quiz attempt
// @Description Creates the next numbered attempt, subject to the quiz max-attempts policy
// @Tags quizzes
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/{id}/attempts [post]
func (qc *QuizzesController) StartAttempt(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	attempt, err := qc.Svc.StartAttempt(c.Context(), uint(quizID), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Created(c, attempt)
}

func (qc *QuizzesController) SubmitAttempt(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, qc.Cfg); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	attemptID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid attempt ID")
	}

	// An empty answers map is a legal submission and grades to zero.
	var input struct {
		Answers map[uint]uint `json:"answers"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	attempt, err := qc.Svc.SubmitAttempt(c.Context(), uint(attemptID), input.Answers)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, attempt)
}

func (qc *QuizzesController) GetUserAttempts(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, qc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	attempts, err := qc.Svc.GetUserAttempts(c.Context(), userID, uint(quizID))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, attempts)
}
