package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/apavel/studygate/internal/app/repositories"
	"github.com/apavel/studygate/internal/pkg/apperrors"
)

// Prerequisite categories reported to a student whose submission is refused.
const (
	PrerequisitePersonalInfo = "personal information"
	PrerequisiteDocuments    = "documents"
	PrerequisiteEnrollment   = "at least one program of study application"
)

// EligibilityChecker is the single source of truth for the two cross-cutting
// admission predicates: submission eligibility and the submission lock. Every
// mutating operation on profiles, documents and enrollments consults it, so
// the rules cannot drift between services.
//
// Both predicates are evaluated against current persisted state on every
// call; nothing is cached.
type EligibilityChecker struct {
	profileRepo    repositories.ProfileRepository
	documentRepo   repositories.DocumentRepository
	enrollmentRepo repositories.EnrollmentRepository
	admissionRepo  repositories.AdmissionFileRepository
}

// NewEligibilityChecker creates a new EligibilityChecker
func NewEligibilityChecker(
	profileRepo repositories.ProfileRepository,
	documentRepo repositories.DocumentRepository,
	enrollmentRepo repositories.EnrollmentRepository,
	admissionRepo repositories.AdmissionFileRepository,
) *EligibilityChecker {
	return &EligibilityChecker{
		profileRepo:    profileRepo,
		documentRepo:   documentRepo,
		enrollmentRepo: enrollmentRepo,
		admissionRepo:  admissionRepo,
	}
}

// MissingPrerequisites returns the prerequisite categories the account still
// lacks for admission file submission: profile present, documents present,
// and at least one enrollment. An empty slice means the account is eligible.
func (c *EligibilityChecker) MissingPrerequisites(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var missing []string

	hasProfile, err := c.profileRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking profile: %w", err)
	}
	if !hasProfile {
		missing = append(missing, PrerequisitePersonalInfo)
	}

	hasDocuments, err := c.documentRepo.ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking documents: %w", err)
	}
	if !hasDocuments {
		missing = append(missing, PrerequisiteDocuments)
	}

	enrollments, err := c.enrollmentRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting enrollments: %w", err)
	}
	if enrollments == 0 {
		missing = append(missing, PrerequisiteEnrollment)
	}

	return missing, nil
}

// CanSubmit reports whether the account currently satisfies every submission
// prerequisite.
func (c *EligibilityChecker) CanSubmit(ctx context.Context, userID uuid.UUID) (bool, error) {
	missing, err := c.MissingPrerequisites(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// IsLocked reports whether the account's records are frozen. The lock is
// engaged by the mere existence of an admission file, whatever its status:
// reviewed materials must not change underneath the reviewer.
func (c *EligibilityChecker) IsLocked(ctx context.Context, userID uuid.UUID) (bool, error) {
	return c.admissionRepo.ExistsByUserID(ctx, userID)
}

// EnsureUnlocked refuses with a conflict when the account's admission file
// has already been submitted.
func (c *EligibilityChecker) EnsureUnlocked(ctx context.Context, userID uuid.UUID) error {
	locked, err := c.IsLocked(ctx, userID)
	if err != nil {
		return fmt.Errorf("error checking submission lock: %w", err)
	}
	if locked {
		return apperrors.ErrAdmissionLocked
	}
	return nil
}
