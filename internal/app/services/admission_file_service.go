package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/apavel/studygate/internal/app/auth"
	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/app/repositories"
	"github.com/apavel/studygate/internal/pkg/apperrors"
	"github.com/apavel/studygate/internal/pkg/email"
	"github.com/apavel/studygate/internal/pkg/logger"
)

// AdmissionFileService owns the lifecycle of admission files: submission,
// resubmission and staff validation.
type AdmissionFileService interface {
	Submit(ctx context.Context, p auth.Principal) (*models.AdmissionFile, error)
	Resubmit(ctx context.Context, p auth.Principal, id int64) (*models.AdmissionFile, error)
	Validate(ctx context.Context, p auth.Principal, id int64, status models.AdmissionStatus) (*models.AdmissionFile, error)
	GetByID(ctx context.Context, p auth.Principal, id int64) (*models.AdmissionFile, error)
	GetAll(ctx context.Context, p auth.Principal, userID *uuid.UUID, status *models.AdmissionStatus) ([]*models.AdmissionFile, error)
	DeleteByID(ctx context.Context, p auth.Principal, id int64) error
}

type admissionFileServiceImpl struct {
	admissionRepo repositories.AdmissionFileRepository
	userRepo      repositories.UserRepository
	eligibility   *EligibilityChecker
	emailService  email.EmailService
}

// NewAdmissionFileService creates a new AdmissionFileService
func NewAdmissionFileService(
	admissionRepo repositories.AdmissionFileRepository,
	userRepo repositories.UserRepository,
	eligibility *EligibilityChecker,
	emailService email.EmailService,
) AdmissionFileService {
	return &admissionFileServiceImpl{
		admissionRepo: admissionRepo,
		userRepo:      userRepo,
		eligibility:   eligibility,
		emailService:  emailService,
	}
}

// Submit files the caller's admission file for review. The account must not
// already have a file, and must satisfy every submission prerequisite. The
// created file engages the submission lock for the account.
func (s *admissionFileServiceImpl) Submit(ctx context.Context, p auth.Principal) (*models.AdmissionFile, error) {
	exists, err := s.admissionRepo.ExistsByUserID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("error checking admission file: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAdmissionFileExists
	}

	if err := s.checkEligibility(ctx, p.UserID); err != nil {
		return nil, err
	}

	file := &models.AdmissionFile{
		UserID:      p.UserID,
		SubmittedAt: time.Now(),
		Status:      models.AdmissionPending,
	}

	if err := s.admissionRepo.Create(ctx, file); err != nil {
		return nil, err
	}

	logger.Info().Str("userID", p.UserID.String()).Int64("fileID", file.ID).Msg("Admission file submitted")
	return file, nil
}

// Resubmit resets a reviewed file back to pending with a fresh submission
// timestamp. A file already validated by staff cannot be resubmitted.
// Eligibility is re-checked against the owner's current state even though
// the lock held the reviewed records constant; external mutation paths must
// not be able to slip an incomplete file back into review.
func (s *admissionFileServiceImpl) Resubmit(ctx context.Context, p auth.Principal, id int64) (*models.AdmissionFile, error) {
	file, err := s.getOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if file.Status == models.AdmissionValid {
		return nil, apperrors.NewForbiddenError("cannot resubmit a valid admission file")
	}

	if err := s.checkEligibility(ctx, file.UserID); err != nil {
		return nil, err
	}

	file.Status = models.AdmissionPending
	file.SubmittedAt = time.Now()

	if err := s.admissionRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	logger.Info().Str("userID", file.UserID.String()).Int64("fileID", file.ID).Msg("Admission file resubmitted")
	return file, nil
}

// Validate is the staff override transition: it sets the requested status
// unconditionally, whatever the current state, and notifies the student.
func (s *admissionFileServiceImpl) Validate(ctx context.Context, p auth.Principal, id int64, status models.AdmissionStatus) (*models.AdmissionFile, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown admission file status: %s", status))
	}

	file, err := s.getOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	file.Status = status

	if err := s.admissionRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, file)

	logger.Info().Int64("fileID", file.ID).Str("status", string(status)).Msg("Admission file validated")
	return file, nil
}

// GetByID retrieves an admission file. Students only see their own file;
// a foreign file is reported as not found.
func (s *admissionFileServiceImpl) GetByID(ctx context.Context, p auth.Principal, id int64) (*models.AdmissionFile, error) {
	return s.getOwned(ctx, p, id)
}

// GetAll lists admission files for staff, optionally filtered by owner
// and/or status.
func (s *admissionFileServiceImpl) GetAll(ctx context.Context, p auth.Principal, userID *uuid.UUID, status *models.AdmissionStatus) ([]*models.AdmissionFile, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}
	return s.admissionRepo.GetAll(ctx, userID, status)
}

// DeleteByID removes an admission file, releasing the submission lock for
// its owner. There is no status guard: a validated file is deletable.
func (s *admissionFileServiceImpl) DeleteByID(ctx context.Context, p auth.Principal, id int64) error {
	file, err := s.getOwned(ctx, p, id)
	if err != nil {
		return err
	}
	return s.admissionRepo.Delete(ctx, file.ID)
}

// getOwned loads a file and applies the ownership policy. Absence and
// denial render identically.
func (s *admissionFileServiceImpl) getOwned(ctx context.Context, p auth.Principal, id int64) (*models.AdmissionFile, error) {
	file, err := s.admissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting admission file: %w", err)
	}
	if file == nil {
		return nil, apperrors.NewNamedNotFoundError("admission file", id)
	}

	if err := auth.AuthorizeNamed(p, file.UserID, "admission file", id); err != nil {
		return nil, err
	}

	return file, nil
}

// checkEligibility refuses submission while prerequisites are missing,
// naming each missing category in the guidance message.
func (s *admissionFileServiceImpl) checkEligibility(ctx context.Context, userID uuid.UUID) error {
	missing, err := s.eligibility.MissingPrerequisites(ctx, userID)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return apperrors.NewForbiddenError(fmt.Sprintf(
			"you need to provide %s before submitting the admission file",
			strings.Join(missing, ", "),
		))
	}
	return nil
}

// notifyDecision sends a best-effort decision email; failures are logged,
// never surfaced to the administrator.
func (s *admissionFileServiceImpl) notifyDecision(ctx context.Context, file *models.AdmissionFile) {
	owner, err := s.userRepo.GetByID(ctx, file.UserID)
	if err != nil || owner == nil {
		logger.Warn().Err(err).Str("userID", file.UserID.String()).Msg("Could not load file owner for decision notification")
		return
	}

	if err := s.emailService.SendDecisionEmail(owner.Email, string(file.Status)); err != nil {
		logger.Warn().Err(err).Str("email", owner.Email).Msg("Failed to send decision email")
	}
}
