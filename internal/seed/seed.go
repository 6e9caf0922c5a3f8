// Package seed creates default data so a fresh deployment is usable
// immediately: a staff account and a starter program catalog.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/apavel/studygate/internal/app/models"
	appRepos "github.com/apavel/studygate/internal/app/repositories"
	"github.com/apavel/studygate/internal/pkg/apperrors"
)

const (
	defaultAdminEmail    = "admin@studygate.app"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData creates the default admin account and starter programs
// of study if they don't exist. Errors are collected rather than aborting,
// so a partially seeded database still comes up.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	programRepo := appRepos.NewProgramRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (admin account, program catalog)...")
	var finalErr error

	// --- Default admin account --- //
	exists, err := userRepo.ExistsByEmail(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		hashed, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.User{
				ID:        uuid.New(),
				Email:     defaultAdminEmail,
				Password:  string(hashed),
				Role:      appModels.RoleAdmin,
				CreatedAt: time.Now(),
			}
			if err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				lgr.Error().Err(err).Msg("Error creating default admin account")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created. Change the password after first login.")
			}
		}
	}

	// --- Starter program catalog --- //
	programs := []*appModels.ProgramOfStudy{
		{Name: "Computer Science", Type: appModels.ProgramBachelor, NumberOfYears: 3, NumberOfStudents: 120, FinancingType: appModels.FinancingBudget},
		{Name: "Computer Science", Type: appModels.ProgramBachelor, NumberOfYears: 3, NumberOfStudents: 60, FinancingType: appModels.FinancingTuition},
		{Name: "Mathematics", Type: appModels.ProgramBachelor, NumberOfYears: 3, NumberOfStudents: 80, FinancingType: appModels.FinancingBudget},
		{Name: "Applied Computational Intelligence", Type: appModels.ProgramMaster, NumberOfYears: 2, NumberOfStudents: 40, FinancingType: appModels.FinancingBudget},
	}

	for _, program := range programs {
		program.ID = uuid.New()
		err := programRepo.Create(ctx, program)
		if err != nil && !errors.Is(err, apperrors.ErrProgramOfStudyExists) {
			lgr.Error().Err(err).Str("name", program.Name).Msg("Error creating default program of study")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check complete.")
	return finalErr
}
