package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/repository"
	"learnhub/backend/utils"

	"github.com/google/uuid"
)

// CertificateService issues at most one certificate per (user, course),
// only for completed enrollments. PDF rendering and delivery are external.
type CertificateService struct {
	certificates repository.CertificateRepo
	enrollments  repository.EnrollmentRepo
	notifier     Notifier
	log          *utils.Logger
}

func NewCertificateService(
	certificates repository.CertificateRepo,
	enrollments repository.EnrollmentRepo,
	notifier Notifier,
	log *utils.Logger,
) *CertificateService {
	return &CertificateService{
		certificates: certificates,
		enrollments:  enrollments,
		notifier:     notifier,
		log:          log.With("service", "certificate"),
	}
}

func (s *CertificateService) IssueCertificate(ctx context.Context, userID, courseID uint) (*models.Certificate, error) {
	enrollment, err := s.enrollments.FindByUserAndCourse(ctx, nil, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("enrollment for course %d: %w", courseID, ErrNotFound)
	}
	if enrollment.Status != models.EnrollmentCompleted {
		return nil, fmt.Errorf("course %d not completed: %w", courseID, ErrInvalidState)
	}

	existing, err := s.certificates.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	certificate := &models.Certificate{
		CertificateNumber: fmt.Sprintf("CERT-%d-%s", time.Now().UnixMilli(),
			strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])),
		UserID:           userID,
		CourseID:         courseID,
		FinalScore:       enrollment.Progress,
		VerificationCode: uuid.NewString(),
		IsVerified:       true,
		IssuedAt:         time.Now(),
	}
	if err := s.certificates.Create(ctx, certificate); err != nil {
		return nil, err
	}

	s.log.Info("certificate issued", "user_id", userID, "course_id", courseID, "number", certificate.CertificateNumber)
	s.notifier.Notify(userID, models.NotificationCertificateGenerated,
		"Certificate ready",
		fmt.Sprintf("Your certificate %s has been issued", certificate.CertificateNumber),
		map[string]interface{}{"course_id": courseID, "certificate_number": certificate.CertificateNumber})

	return certificate, nil
}

func (s *CertificateService) VerifyCertificate(ctx context.Context, code string) (*models.Certificate, error) {
	certificate, err := s.certificates.FindByVerificationCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if certificate == nil {
		return nil, fmt.Errorf("certificate: %w", ErrNotFound)
	}
	return certificate, nil
}
