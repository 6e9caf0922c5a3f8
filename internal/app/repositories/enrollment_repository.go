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

// EnrollmentRepository handles database operations for program enrollments
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetAll(ctx context.Context, userID *uuid.UUID, programID *uuid.UUID) ([]*models.Enrollment, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
	ExistsByUserAndProgram(ctx context.Context, userID, programID uuid.UUID) (bool, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type enrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// Create inserts an enrollment. The unique index on (user_id, program_id)
// rejects a second enrollment for the same pair even under concurrency.
func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (user_id, program_id, grade)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		enrollment.UserID,
		enrollment.ProgramID,
		enrollment.Grade,
	).Scan(&enrollment.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_user_id_program_id_key") {
			return apperrors.ErrEnrollmentExists
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByID retrieves an enrollment with its program. Returns (nil, nil) when absent.
func (r *enrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT e.id, e.user_id, e.program_id, e.grade,
		       p.id, p.name, p.type, p.number_of_years, p.number_of_students, p.financing_type
		FROM enrollments e
		JOIN programs_of_study p ON p.id = e.program_id
		WHERE e.id = $1
	`

	var enrollment models.Enrollment
	var program models.ProgramOfStudy
	err := r.db.QueryRow(ctx, query, id).Scan(
		&enrollment.ID,
		&enrollment.UserID,
		&enrollment.ProgramID,
		&enrollment.Grade,
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
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	enrollment.Program = &program
	return &enrollment, nil
}

// GetAll retrieves enrollments filtered by account and/or program. Nil
// filters are unconstrained; both combine with AND semantics.
func (r *enrollmentRepository) GetAll(ctx context.Context, userID *uuid.UUID, programID *uuid.UUID) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.user_id, e.program_id, e.grade,
		       p.id, p.name, p.type, p.number_of_years, p.number_of_students, p.financing_type
		FROM enrollments e
		JOIN programs_of_study p ON p.id = e.program_id
		WHERE ($1::uuid IS NULL OR e.user_id = $1)
		  AND ($2::uuid IS NULL OR e.program_id = $2)
		ORDER BY e.id
	`

	rows, err := r.db.Query(ctx, query, userID, programID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var program models.ProgramOfStudy
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.UserID,
			&enrollment.ProgramID,
			&enrollment.Grade,
			&program.ID,
			&program.Name,
			&program.Type,
			&program.NumberOfYears,
			&program.NumberOfStudents,
			&program.FinancingType,
		); err != nil {
			return nil, err
		}
		enrollment.Program = &program
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// Update persists program and grade changes for an enrollment.
func (r *enrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		UPDATE enrollments
		SET program_id = $2, grade = $3
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, enrollment.ID, enrollment.ProgramID, enrollment.Grade)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_user_id_program_id_key") {
			return apperrors.ErrEnrollmentExists
		}
		return fmt.Errorf("error updating enrollment: %w", err)
	}

	return nil
}

// Delete removes an enrollment.
func (r *enrollmentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	return nil
}

// ExistsByUserAndProgram checks the (account, program) uniqueness pair.
func (r *enrollmentRepository) ExistsByUserAndProgram(ctx context.Context, userID, programID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = $1 AND program_id = $2)`
	if err := r.db.QueryRow(ctx, query, userID, programID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}
	return exists, nil
}

// CountByUserID counts the enrollments of an account.
func (r *enrollmentRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM enrollments WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}
