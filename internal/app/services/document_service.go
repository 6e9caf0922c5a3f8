package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/apavel/studygate/internal/app/auth"
	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/app/repositories"
	"github.com/apavel/studygate/internal/pkg/apperrors"
	"github.com/apavel/studygate/internal/pkg/filestorage"
	"github.com/apavel/studygate/internal/pkg/logger"
	"github.com/apavel/studygate/internal/pkg/validation"
)

// DocumentUpload carries the three required admission documents as uploaded
// by the applicant. All three must be present together.
type DocumentUpload struct {
	IdentityCard       *multipart.FileHeader
	MedicalCertificate *multipart.FileHeader
	Diploma            *multipart.FileHeader
}

// DocumentService manages the admission document sets.
type DocumentService interface {
	Create(ctx context.Context, p auth.Principal, upload DocumentUpload) (*models.DocumentSet, error)
	Update(ctx context.Context, p auth.Principal, id int64, upload DocumentUpload) (*models.DocumentSet, error)
	GetByID(ctx context.Context, p auth.Principal, id int64) (*models.DocumentSet, error)
	GetByUserID(ctx context.Context, p auth.Principal, userID uuid.UUID) (*models.DocumentSet, error)
	GetAll(ctx context.Context, p auth.Principal) ([]*models.DocumentSet, error)
	DeleteByID(ctx context.Context, p auth.Principal, id int64) error
}

type documentServiceImpl struct {
	documentRepo repositories.DocumentRepository
	storage      filestorage.FileStorage
	eligibility  *EligibilityChecker
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo repositories.DocumentRepository,
	storage filestorage.FileStorage,
	eligibility *EligibilityChecker,
) DocumentService {
	return &documentServiceImpl{
		documentRepo: documentRepo,
		storage:      storage,
		eligibility:  eligibility,
	}
}

// Create stores the three admission documents for the calling account. An
// account holds at most one document set.
func (s *documentServiceImpl) Create(ctx context.Context, p auth.Principal, upload DocumentUpload) (*models.DocumentSet, error) {
	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	exists, err := s.documentRepo.ExistsByUserID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("error checking documents: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("documents already exist")
	}

	refs, err := s.storeUpload(upload, p.UserID)
	if err != nil {
		return nil, err
	}

	docs := &models.DocumentSet{
		UserID:             p.UserID,
		IdentityCard:       refs[0],
		MedicalCertificate: refs[1],
		Diploma:            refs[2],
	}

	if err := s.documentRepo.Create(ctx, docs); err != nil {
		s.cleanupDir(p.UserID)
		return nil, err
	}

	return docs, nil
}

// Update replaces all three documents of an existing set. Refused while the
// submission lock is engaged. The previously stored files are removed after
// the replacement is persisted.
func (s *documentServiceImpl) Update(ctx context.Context, p auth.Principal, id int64, upload DocumentUpload) (*models.DocumentSet, error) {
	docs, err := s.getOwned(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if err := s.eligibility.EnsureUnlocked(ctx, docs.UserID); err != nil {
		return nil, err
	}

	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	refs, err := s.storeUpload(upload, docs.UserID)
	if err != nil {
		return nil, err
	}

	oldRefs := []string{docs.IdentityCard, docs.MedicalCertificate, docs.Diploma}

	docs.IdentityCard = refs[0]
	docs.MedicalCertificate = refs[1]
	docs.Diploma = refs[2]

	if err := s.documentRepo.Update(ctx, docs); err != nil {
		s.deleteRefs(refs)
		return nil, err
	}

	s.deleteRefs(oldRefs)
	return docs, nil
}

// GetByID retrieves a document set with the ownership policy applied.
func (s *documentServiceImpl) GetByID(ctx context.Context, p auth.Principal, id int64) (*models.DocumentSet, error) {
	return s.getOwned(ctx, p, id)
}

// GetByUserID retrieves the document set of an account.
func (s *documentServiceImpl) GetByUserID(ctx context.Context, p auth.Principal, userID uuid.UUID) (*models.DocumentSet, error) {
	if err := auth.AuthorizeNamed(p, userID, "documents for the user", userID); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting documents: %w", err)
	}
	if docs == nil {
		return nil, apperrors.NewNamedNotFoundError("documents for the user", userID)
	}

	return docs, nil
}

// GetAll lists every document set for staff.
func (s *documentServiceImpl) GetAll(ctx context.Context, p auth.Principal) ([]*models.DocumentSet, error) {
	if err := auth.RequireAdmin(p); err != nil {
		return nil, err
	}
	return s.documentRepo.GetAll(ctx)
}

// DeleteByID removes a document set and its stored files. Refused while the
// submission lock is engaged.
func (s *documentServiceImpl) DeleteByID(ctx context.Context, p auth.Principal, id int64) error {
	docs, err := s.getOwned(ctx, p, id)
	if err != nil {
		return err
	}

	if err := s.eligibility.EnsureUnlocked(ctx, docs.UserID); err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, docs.ID); err != nil {
		return err
	}

	s.deleteRefs([]string{docs.IdentityCard, docs.MedicalCertificate, docs.Diploma})
	return nil
}

// getOwned loads a document set and applies the ownership policy.
func (s *documentServiceImpl) getOwned(ctx context.Context, p auth.Principal, id int64) (*models.DocumentSet, error) {
	docs, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting documents: %w", err)
	}
	if docs == nil {
		return nil, apperrors.NewNamedNotFoundError("documents", id)
	}

	if err := auth.AuthorizeNamed(p, docs.UserID, "documents", id); err != nil {
		return nil, err
	}

	return docs, nil
}

// storeUpload saves the three documents under the account's subdirectory and
// returns their references in fixed order: identity card, medical
// certificate, diploma. On partial failure the subdirectory is cleaned up.
func (s *documentServiceImpl) storeUpload(upload DocumentUpload, userID uuid.UUID) ([]string, error) {
	subPath := userID.String()
	refs := make([]string, 0, 3)

	for _, fh := range []*multipart.FileHeader{upload.IdentityCard, upload.MedicalCertificate, upload.Diploma} {
		ref, err := s.storage.SaveFile(fh, subPath)
		if err != nil {
			s.deleteRefs(refs)
			return nil, apperrors.NewInternalError(fmt.Errorf("error storing document: %w", err))
		}
		refs = append(refs, ref)
	}

	return refs, nil
}

// deleteRefs best-effort removes stored objects; failures are logged only.
func (s *documentServiceImpl) deleteRefs(refs []string) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := s.storage.DeleteFile(ref); err != nil {
			logger.Warn().Err(err).Str("ref", ref).Msg("Failed to delete stored document")
		}
	}
}

// cleanupDir best-effort removes the account's document subdirectory.
func (s *documentServiceImpl) cleanupDir(userID uuid.UUID) {
	if err := s.storage.DeleteDir(userID.String()); err != nil {
		logger.Warn().Err(err).Str("userID", userID.String()).Msg("Failed to clean up document directory")
	}
}

// validateUpload checks presence and content type of all three documents.
func validateUpload(upload DocumentUpload) error {
	files := map[string]*multipart.FileHeader{
		"identity card":       upload.IdentityCard,
		"medical certificate": upload.MedicalCertificate,
		"diploma":             upload.Diploma,
	}

	for name, fh := range files {
		if fh == nil {
			return apperrors.NewBadRequestError(fmt.Sprintf("the %s is required", name))
		}
		if !validation.IsAllowedDocumentType(fh.Header.Get("Content-Type")) {
			return apperrors.NewBadRequestError(fmt.Sprintf("the %s must be a PDF or an image", name))
		}
	}

	return nil
}
