package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/pkg/apperrors"
	"github.com/apavel/studygate/internal/pkg/dberrors"
)

// ProgramRepository handles database operations for programs of study
type ProgramRepository interface {
	Create(ctx context.Context, program *models.ProgramOfStudy) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramOfStudy, error)
	GetAll(ctx context.Context, programType string) ([]*models.ProgramOfStudy, error)
	Update(ctx context.Context, program *models.ProgramOfStudy) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByNameAndFinancing(ctx context.Context, name string, financing models.FinancingType) (bool, error)
}

type programRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) ProgramRepository {
	return &programRepository{db: db}
}

// Create inserts a program of study. The unique index on (name,
// financing_type) rejects duplicate catalog entries.
func (r *programRepository) Create(ctx context.Context, program *models.ProgramOfStudy) error {
	query := `
		INSERT INTO programs_of_study (id, name, type, number_of_years, number_of_students, financing_type)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if program.ID == uuid.Nil {
		program.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		program.ID,
		program.Name,
		program.Type,
		program.NumberOfYears,
		program.NumberOfStudents,
		program.FinancingType,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "programs_of_study_name_financing_type_key") {
			return apperrors.ErrProgramOfStudyExists
		}
		return fmt.Errorf("error creating program of study: %w", err)
	}

	return nil
}

// GetByID retrieves a program of study by id. Returns (nil, nil) when absent.
func (r *programRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProgramOfStudy, error) {
	query := `
		SELECT id, name, type, number_of_years, number_of_students, financing_type
		FROM programs_of_study
		WHERE id = $1
	`

	var program models.ProgramOfStudy
	err := r.db.QueryRow(ctx, query, id).Scan(
		&program.ID,
		&program.Name,
		&program.Type,
		&program.NumberOfYears,
		&program.NumberOfStudents,
		&program.FinancingType,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving program of study: %w", err)
	}

	return &program, nil
}

// GetAll retrieves programs of study, optionally filtered by type.
func (r *programRepository) GetAll(ctx context.Context, programType string) ([]*models.ProgramOfStudy, error) {
	query := `
		SELECT id, name, type, number_of_years, number_of_students, financing_type
		FROM programs_of_study
		WHERE ($1 = '' OR type = $1)
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, programType)
	if err != nil {
		return nil, fmt.Errorf("error listing programs of study: %w", err)
	}
	defer rows.Close()

	var programs []*models.ProgramOfStudy
	for rows.Next() {
		var program models.ProgramOfStudy
		if err := rows.Scan(
			&program.ID,
			&program.Name,
			&program.Type,
			&program.NumberOfYears,
			&program.NumberOfStudents,
			&program.FinancingType,
		); err != nil {
			return nil, err
		}
		programs = append(programs, &program)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

// Update replaces all attributes of a program of study.
func (r *programRepository) Update(ctx context.Context, program *models.ProgramOfStudy) error {
	query := `
		UPDATE programs_of_study
		SET name = $2, type = $3, number_of_years = $4, number_of_students = $5, financing_type = $6
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query,
		program.ID,
		program.Name,
		program.Type,
		program.NumberOfYears,
		program.NumberOfStudents,
		program.FinancingType,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "programs_of_study_name_financing_type_key") {
			return apperrors.ErrProgramOfStudyExists
		}
		return fmt.Errorf("error updating program of study: %w", err)
	}

	return nil
}

// Delete removes a program of study.
func (r *programRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM programs_of_study WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting program of study: %w", err)
	}
	return nil
}

// ExistsByNameAndFinancing checks the catalog uniqueness pair.
func (r *programRepository) ExistsByNameAndFinancing(ctx context.Context, name string, financing models.FinancingType) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM programs_of_study WHERE name = $1 AND financing_type = $2)`
	if err := r.db.QueryRow(ctx, query, name, financing).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking program existence: %w", err)
	}
	return exists, nil
}
