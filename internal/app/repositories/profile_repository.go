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

// ProfileRepository handles database operations for profiles
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)
}

type profileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *pgxpool.Pool) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, first_name, last_name, national_id, nationality,
	phone_number, birth_date, civil_status, sex,
	country, province, city, street, number, other
`

// Create inserts a profile. The unique index on profiles.user_id keeps a
// single profile per account; a duplicate surfaces as a conflict.
func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, first_name, last_name, national_id, nationality,
			phone_number, birth_date, civil_status, sex,
			country, province, city, street, number, other
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.NationalID,
		profile.Nationality,
		profile.PhoneNumber,
		profile.BirthDate,
		profile.CivilStatus,
		profile.Sex,
		profile.Address.Country,
		profile.Address.Province,
		profile.Address.City,
		profile.Address.Street,
		profile.Address.Number,
		profile.Address.Other,
	).Scan(&profile.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profiles_user_id_key") {
			return apperrors.NewConflictError("user information already exists")
		}
		return fmt.Errorf("error creating profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves the profile of an account. Returns (nil, nil) when absent.
func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	var profile models.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.NationalID,
		&profile.Nationality,
		&profile.PhoneNumber,
		&profile.BirthDate,
		&profile.CivilStatus,
		&profile.Sex,
		&profile.Address.Country,
		&profile.Address.Province,
		&profile.Address.City,
		&profile.Address.Street,
		&profile.Address.Number,
		&profile.Address.Other,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}

	return &profile, nil
}

// Update replaces all profile attributes for the owning account.
func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET first_name = $2, last_name = $3, national_id = $4, nationality = $5,
		    phone_number = $6, birth_date = $7, civil_status = $8, sex = $9,
		    country = $10, province = $11, city = $12, street = $13, number = $14, other = $15
		WHERE user_id = $1
	`

	_, err := r.db.Exec(ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.NationalID,
		profile.Nationality,
		profile.PhoneNumber,
		profile.BirthDate,
		profile.CivilStatus,
		profile.Sex,
		profile.Address.Country,
		profile.Address.Province,
		profile.Address.City,
		profile.Address.Street,
		profile.Address.Number,
		profile.Address.Other,
	)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}

	return nil
}

// DeleteByUserID removes the profile of an account.
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting profile: %w", err)
	}
	return nil
}

// ExistsByUserID checks whether an account has a profile.
func (r *profileRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE user_id = $1)`
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking profile existence: %w", err)
	}
	return exists, nil
}
