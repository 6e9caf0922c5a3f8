package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/apavel/studygate/internal/app/auth"
	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/pkg/apperrors"
)

type AdmissionFileServiceSuite struct {
	suite.Suite

	ctx context.Context

	userRepo       *fakeUserRepo
	profileRepo    *fakeProfileRepo
	documentRepo   *fakeDocumentRepo
	programRepo    *fakeProgramRepo
	enrollmentRepo *fakeEnrollmentRepo
	admissionRepo  *fakeAdmissionRepo
	email          *fakeEmail

	service AdmissionFileService

	student auth.Principal
	admin   auth.Principal
}

func TestAdmissionFileServiceSuite(t *testing.T) {
	suite.Run(t, new(AdmissionFileServiceSuite))
}

func (s *AdmissionFileServiceSuite) SetupTest() {
	s.ctx = context.Background()

	s.userRepo = newFakeUserRepo()
	s.profileRepo = newFakeProfileRepo()
	s.documentRepo = newFakeDocumentRepo()
	s.programRepo = newFakeProgramRepo()
	s.enrollmentRepo = newFakeEnrollmentRepo()
	s.admissionRepo = newFakeAdmissionRepo()
	s.email = &fakeEmail{}

	eligibility := NewEligibilityChecker(s.profileRepo, s.documentRepo, s.enrollmentRepo, s.admissionRepo)
	s.service = NewAdmissionFileService(s.admissionRepo, s.userRepo, eligibility, s.email)

	s.student = s.seedPrincipal("ana@example.com", models.RoleStudent)
	s.admin = s.seedPrincipal("staff@example.com", models.RoleAdmin)
}

func (s *AdmissionFileServiceSuite) seedPrincipal(email string, role models.Role) auth.Principal {
	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "hashed",
		Role:      role,
		CreatedAt: time.Now(),
	}
	s.Require().NoError(s.userRepo.Create(s.ctx, user))
	return auth.Principal{UserID: user.ID, Email: user.Email, Role: role}
}

// makeEligible gives the account all three submission prerequisites.
func (s *AdmissionFileServiceSuite) makeEligible(userID uuid.UUID) {
	s.Require().NoError(s.profileRepo.Create(s.ctx, &models.Profile{UserID: userID, NationalID: "2980521123456"}))
	s.Require().NoError(s.documentRepo.Create(s.ctx, &models.DocumentSet{
		UserID:       userID,
		IdentityCard: "mem://id", MedicalCertificate: "mem://med", Diploma: "mem://dip",
	}))
	program := &models.ProgramOfStudy{
		Name: "Computer Science", Type: models.ProgramBachelor,
		NumberOfYears: 3, NumberOfStudents: 100, FinancingType: models.FinancingBudget,
	}
	s.Require().NoError(s.programRepo.Create(s.ctx, program))
	s.Require().NoError(s.enrollmentRepo.Create(s.ctx, &models.Enrollment{UserID: userID, ProgramID: program.ID}))
}

func (s *AdmissionFileServiceSuite) TestSubmitCreatesPendingFile() {
	s.makeEligible(s.student.UserID)

	file, err := s.service.Submit(s.ctx, s.student)

	s.Require().NoError(err)
	s.Equal(models.AdmissionPending, file.Status)
	s.Equal(s.student.UserID, file.UserID)
	s.False(file.SubmittedAt.IsZero())
}

func (s *AdmissionFileServiceSuite) TestSubmitTwiceConflicts() {
	s.makeEligible(s.student.UserID)

	_, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	_, err = s.service.Submit(s.ctx, s.student)
	s.Require().ErrorIs(err, apperrors.ErrAdmissionFileExists)
}

func (s *AdmissionFileServiceSuite) TestSubmitWithNoPrerequisitesNamesAllThree() {
	_, err := s.service.Submit(s.ctx, s.student)

	s.Require().ErrorIs(err, apperrors.ErrPermissionDenied)
	s.Contains(err.Error(), PrerequisitePersonalInfo)
	s.Contains(err.Error(), PrerequisiteDocuments)
	s.Contains(err.Error(), PrerequisiteEnrollment)
}

func (s *AdmissionFileServiceSuite) TestSubmitWithPartialPrerequisitesNamesOnlyMissing() {
	s.Require().NoError(s.profileRepo.Create(s.ctx, &models.Profile{UserID: s.student.UserID}))

	_, err := s.service.Submit(s.ctx, s.student)

	s.Require().ErrorIs(err, apperrors.ErrPermissionDenied)
	s.NotContains(err.Error(), PrerequisitePersonalInfo)
	s.Contains(err.Error(), PrerequisiteDocuments)
	s.Contains(err.Error(), PrerequisiteEnrollment)
}

func (s *AdmissionFileServiceSuite) TestResubmitResetsStatusAndTimestamp() {
	s.makeEligible(s.student.UserID)
	file, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	_, err = s.service.Validate(s.ctx, s.admin, file.ID, models.AdmissionInvalid)
	s.Require().NoError(err)

	firstSubmitted := file.SubmittedAt
	time.Sleep(5 * time.Millisecond)

	resubmitted, err := s.service.Resubmit(s.ctx, s.student, file.ID)

	s.Require().NoError(err)
	s.Equal(models.AdmissionPending, resubmitted.Status)
	s.True(resubmitted.SubmittedAt.After(firstSubmitted))
}

func (s *AdmissionFileServiceSuite) TestResubmitValidFileForbidden() {
	s.makeEligible(s.student.UserID)
	file, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	_, err = s.service.Validate(s.ctx, s.admin, file.ID, models.AdmissionValid)
	s.Require().NoError(err)

	_, err = s.service.Resubmit(s.ctx, s.student, file.ID)
	s.Require().ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (s *AdmissionFileServiceSuite) TestValidateRequiresAdmin() {
	s.makeEligible(s.student.UserID)
	file, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	_, err = s.service.Validate(s.ctx, s.student, file.ID, models.AdmissionValid)
	s.Require().ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (s *AdmissionFileServiceSuite) TestValidateRejectsUnknownStatus() {
	s.makeEligible(s.student.UserID)
	file, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	_, err = s.service.Validate(s.ctx, s.admin, file.ID, models.AdmissionStatus("MAYBE"))
	s.Require().ErrorIs(err, apperrors.ErrBadRequest)
}

func (s *AdmissionFileServiceSuite) TestValidateOverridesAnyStatus() {
	s.makeEligible(s.student.UserID)
	file, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	// VALID, then back to PENDING, then INVALID: no transition is refused.
	for _, status := range []models.AdmissionStatus{models.AdmissionValid, models.AdmissionPending, models.AdmissionInvalid} {
		updated, err := s.service.Validate(s.ctx, s.admin, file.ID, status)
		s.Require().NoError(err)
		s.Equal(status, updated.Status)
	}
}

func (s *AdmissionFileServiceSuite) TestValidateNotifiesOwner() {
	s.makeEligible(s.student.UserID)
	file, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	_, err = s.service.Validate(s.ctx, s.admin, file.ID, models.AdmissionValid)
	s.Require().NoError(err)

	s.Equal([]string{"ana@example.com:VALID"}, s.email.sent)
}

func (s *AdmissionFileServiceSuite) TestGetByIDForeignFileReportsNotFound() {
	s.makeEligible(s.student.UserID)
	file, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	other := s.seedPrincipal("bob@example.com", models.RoleStudent)

	_, err = s.service.GetByID(s.ctx, other, file.ID)

	s.Require().ErrorIs(err, apperrors.ErrResourceNotFound)
	s.False(apperrors.Is(err, apperrors.ErrPermissionDenied))
}

func (s *AdmissionFileServiceSuite) TestGetByIDAdminSeesAnyFile() {
	s.makeEligible(s.student.UserID)
	file, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	got, err := s.service.GetByID(s.ctx, s.admin, file.ID)

	s.Require().NoError(err)
	s.Equal(file.ID, got.ID)
}

func (s *AdmissionFileServiceSuite) TestGetAllRequiresAdmin() {
	_, err := s.service.GetAll(s.ctx, s.student, nil, nil)
	s.Require().ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (s *AdmissionFileServiceSuite) TestGetAllFiltersByStatus() {
	s.makeEligible(s.student.UserID)
	file, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	other := s.seedPrincipal("bob@example.com", models.RoleStudent)
	s.makeEligibleFor(other.UserID, "Mathematics")
	otherFile, err := s.service.Submit(s.ctx, other)
	s.Require().NoError(err)

	_, err = s.service.Validate(s.ctx, s.admin, otherFile.ID, models.AdmissionValid)
	s.Require().NoError(err)

	pending := models.AdmissionPending
	files, err := s.service.GetAll(s.ctx, s.admin, nil, &pending)

	s.Require().NoError(err)
	s.Require().Len(files, 1)
	s.Equal(file.ID, files[0].ID)
}

// makeEligibleFor is makeEligible with a distinct program name so two
// accounts can be made eligible in the same test.
func (s *AdmissionFileServiceSuite) makeEligibleFor(userID uuid.UUID, programName string) {
	s.Require().NoError(s.profileRepo.Create(s.ctx, &models.Profile{UserID: userID}))
	s.Require().NoError(s.documentRepo.Create(s.ctx, &models.DocumentSet{UserID: userID}))
	program := &models.ProgramOfStudy{
		Name: programName, Type: models.ProgramMaster,
		NumberOfYears: 2, NumberOfStudents: 50, FinancingType: models.FinancingTuition,
	}
	s.Require().NoError(s.programRepo.Create(s.ctx, program))
	s.Require().NoError(s.enrollmentRepo.Create(s.ctx, &models.Enrollment{UserID: userID, ProgramID: program.ID}))
}

func (s *AdmissionFileServiceSuite) TestDeleteReleasesLock() {
	s.makeEligible(s.student.UserID)
	file, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteByID(s.ctx, s.student, file.ID))

	locked, err := s.admissionRepo.ExistsByUserID(s.ctx, s.student.UserID)
	s.Require().NoError(err)
	s.False(locked)

	// The account can submit again once the file is gone.
	_, err = s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)
}

func (s *AdmissionFileServiceSuite) TestDeleteValidatedFileAllowed() {
	s.makeEligible(s.student.UserID)
	file, err := s.service.Submit(s.ctx, s.student)
	s.Require().NoError(err)

	_, err = s.service.Validate(s.ctx, s.admin, file.ID, models.AdmissionValid)
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteByID(s.ctx, s.student, file.ID))
}
