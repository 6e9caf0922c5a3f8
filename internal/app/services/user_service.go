package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apavel/studygate/internal/app/auth"
	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/app/repositories"
	"github.com/apavel/studygate/internal/pkg/apperrors"
	pkgAuth "github.com/apavel/studygate/internal/pkg/auth"
	"github.com/apavel/studygate/internal/pkg/logger"
	"github.com/apavel/studygate/internal/pkg/validation"
)

// UserService manages accounts and their personal information.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Update(ctx context.Context, p auth.Principal, id uuid.UUID, email, password string) (*models.User, error)
	GetByID(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.User, error)
	GetAll(ctx context.Context, p auth.Principal, email, nationality string) ([]*models.User, error)
	DeleteByID(ctx context.Context, p auth.Principal, id uuid.UUID) error

	PopulateProfile(ctx context.Context, p auth.Principal, userID uuid.UUID, profile *models.Profile) (*models.Profile, error)
	GetProfile(ctx context.Context, p auth.Principal, userID uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p auth.Principal, userID uuid.UUID, profile *models.Profile) (*models.Profile, error)
	DeleteProfile(ctx context.Context, p auth.Principal, userID uuid.UUID) error
}

type userServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	eligibility *EligibilityChecker
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	eligibility *EligibilityChecker,
) UserService {
	return &userServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		eligibility: eligibility,
	}
}

// Register creates a new student account. The role is always STUDENT;
// administrator accounts are seeded, never registered.
func (s *userServiceImpl) Register(ctx context.Context, email, password string) (*models.User, error) {
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewBadRequestError("invalid email address")
	}
	if !validation.IsValidPassword(password) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("password must be at least %d characters", validation.PasswordMinLength))
	}

	if err := s.checkEmailNotUsed(ctx, email); err != nil {
		return nil, err
	}

	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  hashed,
		Role:      models.RoleStudent,
		CreatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("userID", user.ID.String()).Msg("Account registered")
	return user, nil
}

// Authenticate verifies credentials and returns the matching account.
func (s *userServiceImpl) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}
	if user == nil || !pkgAuth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// Update replaces the email and password of an account. Refused while the
// submission lock is engaged; a changed email is re-checked for uniqueness.
func (s *userServiceImpl) Update(ctx context.Context, p auth.Principal, id uuid.UUID, email, password string) (*models.User, error) {
	user, err := s.getOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if err := s.eligibility.EnsureUnlocked(ctx, user.ID); err != nil {
		return nil, err
	}

	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewBadRequestError("invalid email address")
	}
	if !validation.IsValidPassword(password) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("password must be at least %d characters", validation.PasswordMinLength))
	}

	if email != user.Email {
		if err := s.checkEmailNotUsed(ctx, email); err != nil {
			return nil, err
		}
	}

	hashed, err := pkgAuth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user.Email = email
	user.Password = hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves an account with the ownership policy applied.
func (s *userServiceImpl) GetByID(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.User, error) {
	return s.getOwned(ctx, p, id)
}

// GetAll lists accounts for staff, optionally filtered by email and by the
// nationality on the account's profile.
func (s *userServiceImpl) GetAll(ctx context.Context, p auth.Principal, email, nationality string) ([]*models.User, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}
	return s.userRepo.GetAll(ctx, email, nationality)
}

// DeleteByID removes an account. An account with an admission file cannot be
// deleted; the file lifecycle must release the lock first.
func (s *userServiceImpl) DeleteByID(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	user, err := s.getOwned(ctx, p, id)
	if err != nil {
		return err
	}

	if err := s.eligibility.EnsureUnlocked(ctx, user.ID); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, user.ID)
}

// PopulateProfile attaches personal information to an account that does not
// have any yet.
func (s *userServiceImpl) PopulateProfile(ctx context.Context, p auth.Principal, userID uuid.UUID, profile *models.Profile) (*models.Profile, error) {
	user, err := s.getOwned(ctx, p, userID)
	if err != nil {
		return nil, err
	}

	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	existing, err := s.profileRepo.ExistsByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error checking profile: %w", err)
	}
	if existing {
		return nil, apperrors.NewConflictError("user information already exists")
	}

	profile.UserID = user.ID

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetProfile retrieves the personal information of an account.
func (s *userServiceImpl) GetProfile(ctx context.Context, p auth.Principal, userID uuid.UUID) (*models.Profile, error) {
	if err := auth.AuthorizeNamed(p, userID, "information for the user", userID); err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	if profile == nil {
		return nil, apperrors.NewNamedNotFoundError("information for the user", userID)
	}

	return profile, nil
}

// UpdateProfile replaces the personal information of an account. Refused
// while the submission lock is engaged.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, p auth.Principal, userID uuid.UUID, profile *models.Profile) (*models.Profile, error) {
	existing, err := s.GetProfile(ctx, p, userID)
	if err != nil {
		return nil, err
	}

	if err := s.eligibility.EnsureUnlocked(ctx, userID); err != nil {
		return nil, err
	}

	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	profile.ID = existing.ID
	profile.UserID = userID

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// DeleteProfile removes the personal information of an account. Refused
// while the submission lock is engaged.
func (s *userServiceImpl) DeleteProfile(ctx context.Context, p auth.Principal, userID uuid.UUID) error {
	if _, err := s.GetProfile(ctx, p, userID); err != nil {
		return err
	}

	if err := s.eligibility.EnsureUnlocked(ctx, userID); err != nil {
		return err
	}

	return s.profileRepo.DeleteByUserID(ctx, userID)
}

// getOwned loads an account and applies the ownership policy.
func (s *userServiceImpl) getOwned(ctx context.Context, p auth.Principal, id uuid.UUID) (*models.User, error) {
	if err := auth.Authorize(p, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewNamedNotFoundError("user", id)
	}

	return user, nil
}

// checkEmailNotUsed rejects an email already bound to an account.
func (s *userServiceImpl) checkEmailNotUsed(ctx context.Context, email string) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}
	return nil
}

// validateProfile checks the well-formedness of profile fields.
func validateProfile(profile *models.Profile) error {
	if !validation.IsValidNationalID(profile.NationalID) {
		return apperrors.NewBadRequestError("invalid national identification number")
	}
	if !validation.IsValidPhone(profile.PhoneNumber) {
		return apperrors.NewBadRequestError("invalid phone number")
	}
	return nil
}
