package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/apavel/studygate/internal/app/auth"
	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/app/repositories"
	"github.com/apavel/studygate/internal/pkg/apperrors"
	"github.com/apavel/studygate/internal/pkg/logger"
)

// Grade bounds for a graded enrollment
const (
	MinGrade = 1
	MaxGrade = 10
)

// EnrollmentService manages applications of students to programs of study.
type EnrollmentService interface {
	Create(ctx context.Context, p auth.Principal, programID uuid.UUID) (*models.Enrollment, error)
	UpdateByID(ctx context.Context, p auth.Principal, id int64, programID uuid.UUID) (*models.Enrollment, error)
	SubmitGrade(ctx context.Context, p auth.Principal, id int64, grade int) (*models.Enrollment, error)
	GetByID(ctx context.Context, p auth.Principal, id int64) (*models.Enrollment, error)
	GetAll(ctx context.Context, p auth.Principal, userID *uuid.UUID, programID *uuid.UUID) ([]*models.Enrollment, error)
	DeleteByID(ctx context.Context, p auth.Principal, id int64) error
}

type enrollmentServiceImpl struct {
	enrollmentRepo repositories.EnrollmentRepository
	userRepo       repositories.UserRepository
	programRepo    repositories.ProgramRepository
	eligibility    *EligibilityChecker
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo repositories.EnrollmentRepository,
	userRepo repositories.UserRepository,
	programRepo repositories.ProgramRepository,
	eligibility *EligibilityChecker,
) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		programRepo:    programRepo,
		eligibility:    eligibility,
	}
}

// Create applies the caller to a program of study. The program is resolved
// first, so an unknown program id fails as not-found before the lock, role
// and uniqueness checks run. Only students may apply, and only once per
// program; neither is possible once the admission file is submitted.
func (s *enrollmentServiceImpl) Create(ctx context.Context, p auth.Principal, programID uuid.UUID) (*models.Enrollment, error) {
	user, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewNamedNotFoundError("user", p.UserID)
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("error getting program of study: %w", err)
	}
	if program == nil {
		return nil, apperrors.NewNamedNotFoundError("program of study", programID)
	}

	if err := s.eligibility.EnsureUnlocked(ctx, user.ID); err != nil {
		return nil, err
	}

	if err := checkStudentRole(user.Role); err != nil {
		return nil, err
	}

	if err := s.checkStudentProgramPair(ctx, user.ID, program.ID); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		UserID:    user.ID,
		ProgramID: program.ID,
		Program:   program,
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	logger.Info().Str("userID", user.ID.String()).Str("programID", program.ID.String()).Msg("Enrollment created")
	return enrollment, nil
}

// UpdateByID changes the program of an existing enrollment. When the program
// actually changes, the uniqueness pair is re-validated against the new
// program under the caller's account; resubmitting the same program skips
// the re-check. The owner's role is re-validated either way.
func (s *enrollmentServiceImpl) UpdateByID(ctx context.Context, p auth.Principal, id int64, programID uuid.UUID) (*models.Enrollment, error) {
	existing, err := s.getOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if err := s.eligibility.EnsureUnlocked(ctx, existing.UserID); err != nil {
		return nil, err
	}

	if programID != existing.ProgramID {
		if err := s.checkStudentProgramPair(ctx, p.UserID, programID); err != nil {
			return nil, err
		}
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("error getting program of study: %w", err)
	}
	if program == nil {
		return nil, apperrors.NewNamedNotFoundError("program of study", programID)
	}

	owner, err := s.userRepo.GetByID(ctx, existing.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewNamedNotFoundError("user", existing.UserID)
	}
	if err := checkStudentRole(owner.Role); err != nil {
		return nil, err
	}

	existing.ProgramID = program.ID
	existing.Program = program

	if err := s.enrollmentRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// SubmitGrade records a grade for an enrollment. Staff only; the grade must
// be between 1 and 10. Grading carries no lock or status guard, so it may
// precede the admission decision.
func (s *enrollmentServiceImpl) SubmitGrade(ctx context.Context, p auth.Principal, id int64, grade int) (*models.Enrollment, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	if grade < MinGrade || grade > MaxGrade {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("grade must be between %d and %d", MinGrade, MaxGrade))
	}

	enrollment, err := s.getOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	enrollment.Grade = &grade

	if err := s.enrollmentRepo.Update(ctx, enrollment); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// GetByID retrieves an enrollment with the ownership policy applied.
func (s *enrollmentServiceImpl) GetByID(ctx context.Context, p auth.Principal, id int64) (*models.Enrollment, error) {
	return s.getOwned(ctx, p, id)
}

// GetAll lists enrollments. A student always receives only their own rows,
// whatever userId filter they request; staff may combine both filters freely.
func (s *enrollmentServiceImpl) GetAll(ctx context.Context, p auth.Principal, userID *uuid.UUID, programID *uuid.UUID) ([]*models.Enrollment, error) {
	if !p.IsAdmin() {
		userID = &p.UserID
	}
	return s.enrollmentRepo.GetAll(ctx, userID, programID)
}

// DeleteByID withdraws an application. Refused once the admission file is
// submitted.
func (s *enrollmentServiceImpl) DeleteByID(ctx context.Context, p auth.Principal, id int64) error {
	enrollment, err := s.getOwned(ctx, p, id)
	if err != nil {
		return err
	}

	if err := s.eligibility.EnsureUnlocked(ctx, enrollment.UserID); err != nil {
		return err
	}

	return s.enrollmentRepo.Delete(ctx, enrollment.ID)
}

// getOwned loads an enrollment and applies the ownership policy.
func (s *enrollmentServiceImpl) getOwned(ctx context.Context, p auth.Principal, id int64) (*models.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, apperrors.NewNamedNotFoundError("student-program pair", id)
	}

	if err := auth.AuthorizeNamed(p, enrollment.UserID, "student-program pair", id); err != nil {
		return nil, err
	}

	return enrollment, nil
}

// checkStudentProgramPair rejects a duplicate (account, program) pair.
func (s *enrollmentServiceImpl) checkStudentProgramPair(ctx context.Context, userID, programID uuid.UUID) error {
	exists, err := s.enrollmentRepo.ExistsByUserAndProgram(ctx, userID, programID)
	if err != nil {
		return fmt.Errorf("error checking enrollment uniqueness: %w", err)
	}
	if exists {
		return apperrors.ErrEnrollmentExists
	}
	return nil
}

// checkStudentRole rejects non-student accounts from applying to programs.
func checkStudentRole(role models.Role) error {
	switch role {
	case models.RoleStudent:
		return nil
	case models.RoleAdmin:
		return apperrors.NewForbiddenError("only students can apply to programs of study")
	default:
		return apperrors.NewForbiddenError(fmt.Sprintf("unknown role: %s", role))
	}
}
