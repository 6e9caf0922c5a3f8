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

type DocumentServiceSuite struct {
	suite.Suite

	ctx context.Context

	documentRepo  *fakeDocumentRepo
	admissionRepo *fakeAdmissionRepo
	storage       *fakeStorage

	service DocumentService

	student auth.Principal
	admin   auth.Principal
}

func TestDocumentServiceSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) SetupTest() {
	s.ctx = context.Background()

	s.documentRepo = newFakeDocumentRepo()
	s.admissionRepo = newFakeAdmissionRepo()
	s.storage = newFakeStorage()

	eligibility := NewEligibilityChecker(newFakeProfileRepo(), s.documentRepo, newFakeEnrollmentRepo(), s.admissionRepo)
	s.service = NewDocumentService(s.documentRepo, s.storage, eligibility)

	s.student = auth.Principal{UserID: uuid.New(), Email: "ana@example.com", Role: models.RoleStudent}
	s.admin = auth.Principal{UserID: uuid.New(), Email: "staff@example.com", Role: models.RoleAdmin}
}

func validUpload() DocumentUpload {
	return DocumentUpload{
		IdentityCard:       fileHeader("id.pdf", "application/pdf"),
		MedicalCertificate: fileHeader("medical.png", "image/png"),
		Diploma:            fileHeader("diploma.jpg", "image/jpeg"),
	}
}

func (s *DocumentServiceSuite) lock(userID uuid.UUID) {
	s.Require().NoError(s.admissionRepo.Create(s.ctx, &models.AdmissionFile{
		UserID: userID, SubmittedAt: time.Now(), Status: models.AdmissionPending,
	}))
}

func (s *DocumentServiceSuite) TestCreateStoresAllThree() {
	docs, err := s.service.Create(s.ctx, s.student, validUpload())

	s.Require().NoError(err)
	s.Equal(s.student.UserID, docs.UserID)
	s.NotEmpty(docs.IdentityCard)
	s.NotEmpty(docs.MedicalCertificate)
	s.NotEmpty(docs.Diploma)
	s.Len(s.storage.saved, 3)
}

func (s *DocumentServiceSuite) TestCreateTwiceConflicts() {
	_, err := s.service.Create(s.ctx, s.student, validUpload())
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, s.student, validUpload())
	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *DocumentServiceSuite) TestCreateRejectsMissingOrWrongType() {
	upload := validUpload()
	upload.Diploma = nil
	_, err := s.service.Create(s.ctx, s.student, upload)
	s.Require().ErrorIs(err, apperrors.ErrBadRequest)

	upload = validUpload()
	upload.MedicalCertificate = fileHeader("medical.exe", "application/octet-stream")
	_, err = s.service.Create(s.ctx, s.student, upload)
	s.Require().ErrorIs(err, apperrors.ErrBadRequest)

	// Nothing was stored on either refusal.
	s.Empty(s.storage.saved)
}

func (s *DocumentServiceSuite) TestUpdateRefusedWhileLocked() {
	docs, err := s.service.Create(s.ctx, s.student, validUpload())
	s.Require().NoError(err)

	s.lock(s.student.UserID)

	_, err = s.service.Update(s.ctx, s.student, docs.ID, validUpload())
	s.Require().ErrorIs(err, apperrors.ErrAdmissionLocked)
}

func (s *DocumentServiceSuite) TestUpdateReplacesStoredFiles() {
	docs, err := s.service.Create(s.ctx, s.student, validUpload())
	s.Require().NoError(err)
	oldRefs := []string{docs.IdentityCard, docs.MedicalCertificate, docs.Diploma}

	updated, err := s.service.Update(s.ctx, s.student, docs.ID, validUpload())

	s.Require().NoError(err)
	s.NotEqual(oldRefs[0], updated.IdentityCard)
	// The replaced objects are gone, only the new three remain.
	s.Len(s.storage.saved, 3)
	for _, ref := range oldRefs {
		s.Contains(s.storage.deleted, ref)
	}
}

func (s *DocumentServiceSuite) TestGetByIDForeignSetReportsNotFound() {
	docs, err := s.service.Create(s.ctx, s.student, validUpload())
	s.Require().NoError(err)

	other := auth.Principal{UserID: uuid.New(), Email: "bob@example.com", Role: models.RoleStudent}

	_, err = s.service.GetByID(s.ctx, other, docs.ID)

	s.Require().ErrorIs(err, apperrors.ErrResourceNotFound)
	s.False(apperrors.Is(err, apperrors.ErrPermissionDenied))
}

func (s *DocumentServiceSuite) TestGetByUserIDAdminSeesAny() {
	_, err := s.service.Create(s.ctx, s.student, validUpload())
	s.Require().NoError(err)

	docs, err := s.service.GetByUserID(s.ctx, s.admin, s.student.UserID)
	s.Require().NoError(err)
	s.Equal(s.student.UserID, docs.UserID)
}

func (s *DocumentServiceSuite) TestGetAllRequiresAdmin() {
	_, err := s.service.GetAll(s.ctx, s.student)
	s.Require().ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (s *DocumentServiceSuite) TestDeleteRefusedWhileLocked() {
	docs, err := s.service.Create(s.ctx, s.student, validUpload())
	s.Require().NoError(err)

	s.lock(s.student.UserID)

	err = s.service.DeleteByID(s.ctx, s.student, docs.ID)
	s.Require().ErrorIs(err, apperrors.ErrAdmissionLocked)
}

func (s *DocumentServiceSuite) TestDeleteRemovesStoredFiles() {
	docs, err := s.service.Create(s.ctx, s.student, validUpload())
	s.Require().NoError(err)

	s.Require().NoError(s.service.DeleteByID(s.ctx, s.student, docs.ID))

	s.Empty(s.storage.saved)

	_, err = s.service.GetByID(s.ctx, s.student, docs.ID)
	s.Require().ErrorIs(err, apperrors.ErrResourceNotFound)
}
