package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/apavel/studygate/internal/app/auth"
	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/app/repositories"
	"github.com/apavel/studygate/internal/pkg/apperrors"
)

// ProgramService manages the catalog of programs of study. The catalog is
// maintained by staff; applicants only read it.
type ProgramService interface {
	Create(ctx context.Context, p auth.Principal, program *models.ProgramOfStudy) (*models.ProgramOfStudy, error)
	UpdateByID(ctx context.Context, p auth.Principal, id uuid.UUID, program *models.ProgramOfStudy) (*models.ProgramOfStudy, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramOfStudy, error)
	GetAll(ctx context.Context, programType string) ([]*models.ProgramOfStudy, error)
	DeleteByID(ctx context.Context, p auth.Principal, id uuid.UUID) error
}

type programServiceImpl struct {
	programRepo repositories.ProgramRepository
}

// NewProgramService creates a new ProgramService
func NewProgramService(programRepo repositories.ProgramRepository) ProgramService {
	return &programServiceImpl{programRepo: programRepo}
}

// Create adds a program to the catalog. The (name, financing type) pair must
// be unique across the catalog.
func (s *programServiceImpl) Create(ctx context.Context, p auth.Principal, program *models.ProgramOfStudy) (*models.ProgramOfStudy, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	if err := validateProgram(program); err != nil {
		return nil, err
	}

	exists, err := s.programRepo.ExistsByNameAndFinancing(ctx, program.Name, program.FinancingType)
	if err != nil {
		return nil, fmt.Errorf("error checking program: %w", err)
	}
	if exists {
		return nil, apperrors.ErrProgramOfStudyExists
	}

	program.ID = uuid.New()

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}

	return program, nil
}

// UpdateByID replaces a catalog entry. When the (name, financing type) pair
// changes it is re-checked for uniqueness.
func (s *programServiceImpl) UpdateByID(ctx context.Context, p auth.Principal, id uuid.UUID, program *models.ProgramOfStudy) (*models.ProgramOfStudy, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateProgram(program); err != nil {
		return nil, err
	}

	if program.Name != existing.Name || program.FinancingType != existing.FinancingType {
		exists, err := s.programRepo.ExistsByNameAndFinancing(ctx, program.Name, program.FinancingType)
		if err != nil {
			return nil, fmt.Errorf("error checking program: %w", err)
		}
		if exists {
			return nil, apperrors.ErrProgramOfStudyExists
		}
	}

	program.ID = existing.ID

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}

	return program, nil
}

// GetByID retrieves a catalog entry.
func (s *programServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramOfStudy, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting program of study: %w", err)
	}
	if program == nil {
		return nil, apperrors.NewNamedNotFoundError("program of study", id)
	}
	return program, nil
}

// GetAll lists the catalog, optionally filtered by program type.
func (s *programServiceImpl) GetAll(ctx context.Context, programType string) ([]*models.ProgramOfStudy, error) {
	if programType != "" && !models.ProgramType(programType).Valid() {
		return nil, apperrors.NewBadRequestError("invalid program type")
	}
	return s.programRepo.GetAll(ctx, programType)
}

// DeleteByID removes a catalog entry.
func (s *programServiceImpl) DeleteByID(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	if err := auth.RequireAdmin(p); err != nil {
		return err
	}

	program, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.programRepo.Delete(ctx, program.ID)
}

// validateProgram checks the well-formedness of catalog attributes.
func validateProgram(program *models.ProgramOfStudy) error {
	if program.Name == "" {
		return apperrors.NewBadRequestError("the program name is required")
	}
	if !program.Type.Valid() {
		return apperrors.NewBadRequestError("invalid program type")
	}
	if !program.FinancingType.Valid() {
		return apperrors.NewBadRequestError("invalid financing type")
	}
	if program.NumberOfYears <= 0 {
		return apperrors.NewBadRequestError("the number of years must be positive")
	}
	if program.NumberOfStudents <= 0 {
		return apperrors.NewBadRequestError("the number of students must be positive")
	}
	return nil
}
