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

// AdmissionFileRepository handles database operations for admission files
type AdmissionFileRepository interface {
	Create(ctx context.Context, file *models.AdmissionFile) error
	GetByID(ctx context.Context, id int64) (*models.AdmissionFile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AdmissionFile, error)
	GetAll(ctx context.Context, userID *uuid.UUID, status *models.AdmissionStatus) ([]*models.AdmissionFile, error)
	Update(ctx context.Context, file *models.AdmissionFile) error
	Delete(ctx context.Context, id int64) error
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
}

type admissionFileRepository struct {
	db *pgxpool.Pool
}

// NewAdmissionFileRepository creates a new admission file repository
func NewAdmissionFileRepository(db *pgxpool.Pool) AdmissionFileRepository {
	return &admissionFileRepository{db: db}
}

// Create inserts an admission file. The unique index on
// admission_files.user_id guarantees a single file per account; two
// concurrent submissions cannot both succeed.
func (r *admissionFileRepository) Create(ctx context.Context, file *models.AdmissionFile) error {
	query := `
		INSERT INTO admission_files (user_id, submitted_at, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		file.UserID,
		file.SubmittedAt,
		file.Status,
	).Scan(&file.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "admission_files_user_id_key") {
			return apperrors.ErrAdmissionFileExists
		}
		return fmt.Errorf("error creating admission file: %w", err)
	}

	return nil
}

// GetByID retrieves an admission file by id. Returns (nil, nil) when absent.
func (r *admissionFileRepository) GetByID(ctx context.Context, id int64) (*models.AdmissionFile, error) {
	query := `
		SELECT id, user_id, submitted_at, status
		FROM admission_files
		WHERE id = $1
	`

	var file models.AdmissionFile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.UserID,
		&file.SubmittedAt,
		&file.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving admission file: %w", err)
	}

	return &file, nil
}

// GetByUserID retrieves the admission file of an account. Returns (nil, nil) when absent.
func (r *admissionFileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AdmissionFile, error) {
	query := `
		SELECT id, user_id, submitted_at, status
		FROM admission_files
		WHERE user_id = $1
	`

	var file models.AdmissionFile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&file.ID,
		&file.UserID,
		&file.SubmittedAt,
		&file.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving admission file by user: %w", err)
	}

	return &file, nil
}

// GetAll retrieves admission files filtered by account and/or status. Nil
// filters are unconstrained; both combine with AND semantics.
func (r *admissionFileRepository) GetAll(ctx context.Context, userID *uuid.UUID, status *models.AdmissionStatus) ([]*models.AdmissionFile, error) {
	query := `
		SELECT id, user_id, submitted_at, status
		FROM admission_files
		WHERE ($1::uuid IS NULL OR user_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY submitted_at
	`

	rows, err := r.db.Query(ctx, query, userID, status)
	if err != nil {
		return nil, fmt.Errorf("error listing admission files: %w", err)
	}
	defer rows.Close()

	var files []*models.AdmissionFile
	for rows.Next() {
		var file models.AdmissionFile
		if err := rows.Scan(
			&file.ID,
			&file.UserID,
			&file.SubmittedAt,
			&file.Status,
		); err != nil {
			return nil, err
		}
		files = append(files, &file)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return files, nil
}

// Update persists status and submission timestamp changes. The file id and
// owner never change.
func (r *admissionFileRepository) Update(ctx context.Context, file *models.AdmissionFile) error {
	query := `
		UPDATE admission_files
		SET submitted_at = $2, status = $3
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, file.ID, file.SubmittedAt, file.Status)
	if err != nil {
		return fmt.Errorf("error updating admission file: %w", err)
	}

	return nil
}

// Delete removes an admission file, releasing the submission lock.
func (r *admissionFileRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM admission_files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting admission file: %w", err)
	}
	return nil
}

// ExistsByUserID checks whether an account has an admission file. This is
// the submission lock's trigger condition, independent of status.
func (r *admissionFileRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM admission_files WHERE user_id = $1)`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking admission file existence: %w", err)
	}
	return exists, nil
}
