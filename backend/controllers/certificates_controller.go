package controllers

import (
	"strconv"

	"learnhub/backend/config"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CertificatesController struct {
	Svc *services.CertificateService
	Cfg *config.Config
}

func NewCertificatesController(svc *services.CertificateService, cfg *config.Config) *CertificatesController {
	return &CertificatesController{Svc: svc, Cfg: cfg}
}

func (cc *CertificatesController) IssueCertificate(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	certificate, err := cc.Svc.IssueCertificate(c.Context(), userID, uint(courseID))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, certificate)
}

// VerifyCertificate is public: verification codes are shared with third
// parties.
func (cc *CertificatesController) VerifyCertificate(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return utils.BadRequest(c, "Missing verification code")
	}

	certificate, err := cc.Svc.VerifyCertificate(c.Context(), code)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, certificate)
}
