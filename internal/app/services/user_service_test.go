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

type UserServiceSuite struct {
	suite.Suite

	ctx context.Context

	userRepo      *fakeUserRepo
	profileRepo   *fakeProfileRepo
	admissionRepo *fakeAdmissionRepo

	service UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.ctx = context.Background()

	s.userRepo = newFakeUserRepo()
	s.profileRepo = newFakeProfileRepo()
	s.admissionRepo = newFakeAdmissionRepo()
	s.userRepo.profiles = s.profileRepo

	eligibility := NewEligibilityChecker(s.profileRepo, newFakeDocumentRepo(), newFakeEnrollmentRepo(), s.admissionRepo)
	s.service = NewUserService(s.userRepo, s.profileRepo, eligibility)
}

func (s *UserServiceSuite) register(email string) auth.Principal {
	user, err := s.service.Register(s.ctx, email, "hunter2secret")
	s.Require().NoError(err)
	return auth.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}
}

func (s *UserServiceSuite) admin() auth.Principal {
	user := &models.User{
		ID: uuid.New(), Email: "staff@example.com", Password: "hashed",
		Role: models.RoleAdmin, CreatedAt: time.Now(),
	}
	s.Require().NoError(s.userRepo.Create(s.ctx, user))
	return auth.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}
}

// lock engages the submission lock for the account.
func (s *UserServiceSuite) lock(userID uuid.UUID) {
	s.Require().NoError(s.admissionRepo.Create(s.ctx, &models.AdmissionFile{
		UserID: userID, SubmittedAt: time.Now(), Status: models.AdmissionPending,
	}))
}

func validTestProfile() *models.Profile {
	return &models.Profile{
		FirstName:   "Ana",
		LastName:    "Popescu",
		NationalID:  "2980521123456",
		Nationality: "Romanian",
		PhoneNumber: "+40712345678",
		BirthDate:   time.Date(1998, 5, 21, 0, 0, 0, 0, time.UTC),
		CivilStatus: models.CivilSingle,
		Sex:         models.SexFemale,
		Address: models.Address{
			Country: "Romania", Province: "Cluj", City: "Cluj-Napoca",
			Street: "Strada Universitatii", Number: "7A",
		},
	}
}

func (s *UserServiceSuite) TestRegisterCreatesStudent() {
	user, err := s.service.Register(s.ctx, "ana@example.com", "hunter2secret")

	s.Require().NoError(err)
	s.Equal(models.RoleStudent, user.Role)
	s.NotEqual(uuid.Nil, user.ID)
	s.NotEqual("hunter2secret", user.Password)
	s.False(user.CreatedAt.IsZero())
}

func (s *UserServiceSuite) TestRegisterDuplicateEmailConflicts() {
	s.register("ana@example.com")

	_, err := s.service.Register(s.ctx, "ana@example.com", "hunter2secret")
	s.Require().ErrorIs(err, apperrors.ErrEmailAlreadyExists)
}

func (s *UserServiceSuite) TestRegisterRejectsMalformedInput() {
	_, err := s.service.Register(s.ctx, "not-an-email", "hunter2secret")
	s.Require().ErrorIs(err, apperrors.ErrBadRequest)

	_, err = s.service.Register(s.ctx, "ana@example.com", "short")
	s.Require().ErrorIs(err, apperrors.ErrBadRequest)
}

func (s *UserServiceSuite) TestAuthenticate() {
	s.register("ana@example.com")

	user, err := s.service.Authenticate(s.ctx, "ana@example.com", "hunter2secret")
	s.Require().NoError(err)
	s.Equal("ana@example.com", user.Email)

	_, err = s.service.Authenticate(s.ctx, "ana@example.com", "wrongpassword")
	s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)

	_, err = s.service.Authenticate(s.ctx, "nobody@example.com", "hunter2secret")
	s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *UserServiceSuite) TestUpdateRefusedWhileLocked() {
	p := s.register("ana@example.com")
	s.lock(p.UserID)

	_, err := s.service.Update(s.ctx, p, p.UserID, "new@example.com", "hunter2secret")
	s.Require().ErrorIs(err, apperrors.ErrAdmissionLocked)
}

func (s *UserServiceSuite) TestUpdateChangedEmailMustBeFree() {
	p := s.register("ana@example.com")
	s.register("bob@example.com")

	_, err := s.service.Update(s.ctx, p, p.UserID, "bob@example.com", "hunter2secret")
	s.Require().ErrorIs(err, apperrors.ErrEmailAlreadyExists)

	// Keeping the own email is not a conflict.
	updated, err := s.service.Update(s.ctx, p, p.UserID, "ana@example.com", "newpassword1")
	s.Require().NoError(err)
	s.Equal("ana@example.com", updated.Email)
}

func (s *UserServiceSuite) TestGetByIDForeignAccountReportsNotFound() {
	ana := s.register("ana@example.com")
	bob := s.register("bob@example.com")

	_, err := s.service.GetByID(s.ctx, ana, bob.UserID)

	s.Require().ErrorIs(err, apperrors.ErrResourceNotFound)
	s.False(apperrors.Is(err, apperrors.ErrPermissionDenied))
}

func (s *UserServiceSuite) TestGetAllRequiresAdmin() {
	p := s.register("ana@example.com")

	_, err := s.service.GetAll(s.ctx, p, "", "")
	s.Require().ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (s *UserServiceSuite) TestGetAllFiltersByNationality() {
	ana := s.register("ana@example.com")
	s.register("bob@example.com")
	admin := s.admin()

	profile := validTestProfile()
	_, err := s.service.PopulateProfile(s.ctx, ana, ana.UserID, profile)
	s.Require().NoError(err)

	users, err := s.service.GetAll(s.ctx, admin, "", "Romanian")
	s.Require().NoError(err)
	s.Require().Len(users, 1)
	s.Equal("ana@example.com", users[0].Email)
}

func (s *UserServiceSuite) TestDeleteRefusedWhileLocked() {
	p := s.register("ana@example.com")
	s.lock(p.UserID)

	err := s.service.DeleteByID(s.ctx, p, p.UserID)
	s.Require().ErrorIs(err, apperrors.ErrAdmissionLocked)
}

func (s *UserServiceSuite) TestPopulateProfileOncePerAccount() {
	p := s.register("ana@example.com")

	created, err := s.service.PopulateProfile(s.ctx, p, p.UserID, validTestProfile())
	s.Require().NoError(err)
	s.Equal(p.UserID, created.UserID)

	_, err = s.service.PopulateProfile(s.ctx, p, p.UserID, validTestProfile())
	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *UserServiceSuite) TestPopulateProfileValidatesFields() {
	p := s.register("ana@example.com")

	profile := validTestProfile()
	profile.NationalID = "12345"

	_, err := s.service.PopulateProfile(s.ctx, p, p.UserID, profile)
	s.Require().ErrorIs(err, apperrors.ErrBadRequest)
}

func (s *UserServiceSuite) TestGetProfileAbsentReportsNotFound() {
	p := s.register("ana@example.com")

	_, err := s.service.GetProfile(s.ctx, p, p.UserID)
	s.Require().ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *UserServiceSuite) TestUpdateProfileRefusedWhileLocked() {
	p := s.register("ana@example.com")
	_, err := s.service.PopulateProfile(s.ctx, p, p.UserID, validTestProfile())
	s.Require().NoError(err)

	s.lock(p.UserID)

	_, err = s.service.UpdateProfile(s.ctx, p, p.UserID, validTestProfile())
	s.Require().ErrorIs(err, apperrors.ErrAdmissionLocked)

	err = s.service.DeleteProfile(s.ctx, p, p.UserID)
	s.Require().ErrorIs(err, apperrors.ErrAdmissionLocked)
}

func (s *UserServiceSuite) TestUpdateProfileReplacesFields() {
	p := s.register("ana@example.com")
	created, err := s.service.PopulateProfile(s.ctx, p, p.UserID, validTestProfile())
	s.Require().NoError(err)

	update := validTestProfile()
	update.Address.City = "Bucharest"
	update.CivilStatus = models.CivilMarried

	updated, err := s.service.UpdateProfile(s.ctx, p, p.UserID, update)

	s.Require().NoError(err)
	s.Equal(created.ID, updated.ID)
	s.Equal("Bucharest", updated.Address.City)
	s.Equal(models.CivilMarried, updated.CivilStatus)
}

func (s *UserServiceSuite) TestDeleteProfile() {
	p := s.register("ana@example.com")
	_, err := s.service.PopulateProfile(s.ctx, p, p.UserID, validTestProfile())
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteProfile(s.ctx, p, p.UserID))

	_, err = s.service.GetProfile(s.ctx, p, p.UserID)
	s.Require().ErrorIs(err, apperrors.ErrResourceNotFound)
}

func (s *UserServiceSuite) TestAdminManagesForeignProfile() {
	ana := s.register("ana@example.com")
	admin := s.admin()

	_, err := s.service.PopulateProfile(s.ctx, admin, ana.UserID, validTestProfile())
	s.Require().NoError(err)

	got, err := s.service.GetProfile(s.ctx, admin, ana.UserID)
	s.Require().NoError(err)
	s.Equal(ana.UserID, got.UserID)
}
