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

// DocumentRepository handles database operations for document sets
type DocumentRepository interface {
	Create(ctx context.Context, docs *models.DocumentSet) error
	GetByID(ctx context.Context, id int64) (*models.DocumentSet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.DocumentSet, error)
	GetAll(ctx context.Context) ([]*models.DocumentSet, error)
	Update(ctx context.Context, docs *models.DocumentSet) error
	Delete(ctx context.Context, id int64) error
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
}

type documentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) DocumentRepository {
	return &documentRepository{db: db}
}

// Create inserts a document set. The unique index on documents.user_id keeps
// a single set per account.
func (r *documentRepository) Create(ctx context.Context, docs *models.DocumentSet) error {
	query := `
		INSERT INTO documents (user_id, identity_card, medical_certificate, diploma)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		docs.UserID,
		docs.IdentityCard,
		docs.MedicalCertificate,
		docs.Diploma,
	).Scan(&docs.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "documents_user_id_key") {
			return apperrors.NewConflictError("documents already exist")
		}
		return fmt.Errorf("error creating documents: %w", err)
	}

	return nil
}

// GetByID retrieves a document set by id. Returns (nil, nil) when absent.
func (r *documentRepository) GetByID(ctx context.Context, id int64) (*models.DocumentSet, error) {
	query := `
		SELECT id, user_id, identity_card, medical_certificate, diploma
		FROM documents
		WHERE id = $1
	`

	var docs models.DocumentSet
	err := r.db.QueryRow(ctx, query, id).Scan(
		&docs.ID,
		&docs.UserID,
		&docs.IdentityCard,
		&docs.MedicalCertificate,
		&docs.Diploma,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving documents: %w", err)
	}

	return &docs, nil
}

// GetByUserID retrieves the document set of an account. Returns (nil, nil) when absent.
func (r *documentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.DocumentSet, error) {
	query := `
		SELECT id, user_id, identity_card, medical_certificate, diploma
		FROM documents
		WHERE user_id = $1
	`

	var docs models.DocumentSet
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&docs.ID,
		&docs.UserID,
		&docs.IdentityCard,
		&docs.MedicalCertificate,
		&docs.Diploma,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving documents by user: %w", err)
	}

	return &docs, nil
}

// GetAll retrieves every document set.
func (r *documentRepository) GetAll(ctx context.Context) ([]*models.DocumentSet, error) {
	query := `
		SELECT id, user_id, identity_card, medical_certificate, diploma
		FROM documents
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing documents: %w", err)
	}
	defer rows.Close()

	var sets []*models.DocumentSet
	for rows.Next() {
		var docs models.DocumentSet
		if err := rows.Scan(
			&docs.ID,
			&docs.UserID,
			&docs.IdentityCard,
			&docs.MedicalCertificate,
			&docs.Diploma,
		); err != nil {
			return nil, err
		}
		sets = append(sets, &docs)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sets, nil
}

// Update replaces all three document references together.
func (r *documentRepository) Update(ctx context.Context, docs *models.DocumentSet) error {
	query := `
		UPDATE documents
		SET identity_card = $2, medical_certificate = $3, diploma = $4
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, docs.ID, docs.IdentityCard, docs.MedicalCertificate, docs.Diploma)
	if err != nil {
		return fmt.Errorf("error updating documents: %w", err)
	}

	return nil
}

// Delete removes a document set.
func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting documents: %w", err)
	}
	return nil
}

// ExistsByUserID checks whether an account has a document set.
func (r *documentRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM documents WHERE user_id = $1)`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking documents existence: %w", err)
	}
	return exists, nil
}
