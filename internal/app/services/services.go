// Package services implements the admission workflow rules: account and
// profile management, document sets, the program catalog, applications, and
// the admission file state machine with its submission lock.
package services

import (
	"github.com/apavel/studygate/internal/app/repositories"
	pkgAuth "github.com/apavel/studygate/internal/pkg/auth"
	"github.com/apavel/studygate/internal/pkg/email"
	"github.com/apavel/studygate/internal/pkg/filestorage"
)

// Services holds all service instances
type Services struct {
	AuthService          AuthService
	UserService          UserService
	DocumentService      DocumentService
	ProgramService       ProgramService
	EnrollmentService    EnrollmentService
	AdmissionFileService AdmissionFileService
}

// NewServices wires the service layer over the repositories and shared
// collaborators. A single EligibilityChecker backs every lock check so the
// submission lock is consistent across services.
func NewServices(
	repos *repositories.Repositories,
	jwtService *pkgAuth.JWTService,
	storage filestorage.FileStorage,
	emailService email.EmailService,
) *Services {
	eligibility := NewEligibilityChecker(
		repos.ProfileRepository,
		repos.DocumentRepository,
		repos.EnrollmentRepository,
		repos.AdmissionFileRepository,
	)

	userService := NewUserService(repos.UserRepository, repos.ProfileRepository, eligibility)

	return &Services{
		AuthService:          NewAuthService(userService, jwtService),
		UserService:          userService,
		DocumentService:      NewDocumentService(repos.DocumentRepository, storage, eligibility),
		ProgramService:       NewProgramService(repos.ProgramRepository),
		EnrollmentService:    NewEnrollmentService(repos.EnrollmentRepository, repos.UserRepository, repos.ProgramRepository, eligibility),
		AdmissionFileService: NewAdmissionFileService(repos.AdmissionFileRepository, repos.UserRepository, eligibility, emailService),
	}
}
