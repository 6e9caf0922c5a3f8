package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/pkg/apperrors"
)

// In-memory repository fakes backing the service tests. They enforce the
// same uniqueness rules the database constraints do so conflict paths stay
// testable without a live PostgreSQL.

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	profiles *fakeProfileRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetAll(ctx context.Context, email, nationality string) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		if email != "" && u.Email != email {
			continue
		}
		if nationality != "" {
			if r.profiles == nil {
				continue
			}
			p := r.profiles.byUser(u.ID)
			if p == nil || p.Nationality != nationality {
				continue
			}
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[uuid.UUID]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (r *fakeProfileRepo) byUser(userID uuid.UUID) *models.Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profiles[userID]
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; ok {
		return apperrors.NewConflictError("user information already exists")
	}
	r.nextID++
	profile.ID = r.nextID
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, userID)
	return nil
}

func (r *fakeProfileRepo) ExistsByUserID(_ context.Context, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.profiles[userID]
	return ok, nil
}

type fakeDocumentRepo struct {
	mu     sync.Mutex
	nextID int64
	sets   map[int64]*models.DocumentSet
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{sets: make(map[int64]*models.DocumentSet)}
}

func (r *fakeDocumentRepo) Create(_ context.Context, docs *models.DocumentSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.sets {
		if d.UserID == docs.UserID {
			return apperrors.NewConflictError("documents already exist")
		}
	}
	r.nextID++
	docs.ID = r.nextID
	cp := *docs
	r.sets[docs.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) GetByID(_ context.Context, id int64) (*models.DocumentSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.sets[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeDocumentRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.DocumentSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.sets {
		if d.UserID == userID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) GetAll(_ context.Context) ([]*models.DocumentSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.DocumentSet
	for _, d := range r.sets {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, docs *models.DocumentSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *docs
	r.sets[docs.ID] = &cp
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, id)
	return nil
}

func (r *fakeDocumentRepo) ExistsByUserID(_ context.Context, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.sets {
		if d.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeProgramRepo struct {
	mu       sync.Mutex
	programs map[uuid.UUID]*models.ProgramOfStudy
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[uuid.UUID]*models.ProgramOfStudy)}
}

func (r *fakeProgramRepo) Create(_ context.Context, program *models.ProgramOfStudy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.programs {
		if p.Name == program.Name && p.FinancingType == program.FinancingType {
			return apperrors.ErrProgramOfStudyExists
		}
	}
	if program.ID == uuid.Nil {
		program.ID = uuid.New()
	}
	cp := *program
	r.programs[program.ID] = &cp
	return nil
}

func (r *fakeProgramRepo) GetByID(_ context.Context, id uuid.UUID) (*models.ProgramOfStudy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.programs[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProgramRepo) GetAll(_ context.Context, programType string) ([]*models.ProgramOfStudy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ProgramOfStudy
	for _, p := range r.programs {
		if programType != "" && string(p.Type) != programType {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeProgramRepo) Update(_ context.Context, program *models.ProgramOfStudy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.programs {
		if id != program.ID && p.Name == program.Name && p.FinancingType == program.FinancingType {
			return apperrors.ErrProgramOfStudyExists
		}
	}
	cp := *program
	r.programs[program.ID] = &cp
	return nil
}

func (r *fakeProgramRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.programs, id)
	return nil
}

func (r *fakeProgramRepo) ExistsByNameAndFinancing(_ context.Context, name string, financing models.FinancingType) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.programs {
		if p.Name == name && p.FinancingType == financing {
			return true, nil
		}
	}
	return false, nil
}

type fakeEnrollmentRepo struct {
	mu          sync.Mutex
	nextID      int64
	enrollments map[int64]*models.Enrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: make(map[int64]*models.Enrollment)}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.enrollments {
		if e.UserID == enrollment.UserID && e.ProgramID == enrollment.ProgramID {
			return apperrors.ErrEnrollmentExists
		}
	}
	r.nextID++
	enrollment.ID = r.nextID
	cp := *enrollment
	r.enrollments[enrollment.ID] = &cp
	return nil
}

func (r *fakeEnrollmentRepo) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.enrollments[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeEnrollmentRepo) GetAll(_ context.Context, userID *uuid.UUID, programID *uuid.UUID) ([]*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Enrollment
	for _, e := range r.enrollments {
		if userID != nil && e.UserID != *userID {
			continue
		}
		if programID != nil && e.ProgramID != *programID {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEnrollmentRepo) Update(_ context.Context, enrollment *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *enrollment
	r.enrollments[enrollment.ID] = &cp
	return nil
}

func (r *fakeEnrollmentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.enrollments, id)
	return nil
}

func (r *fakeEnrollmentRepo) ExistsByUserAndProgram(_ context.Context, userID, programID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.enrollments {
		if e.UserID == userID && e.ProgramID == programID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEnrollmentRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.enrollments {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

type fakeAdmissionRepo struct {
	mu     sync.Mutex
	nextID int64
	files  map[int64]*models.AdmissionFile
}

func newFakeAdmissionRepo() *fakeAdmissionRepo {
	return &fakeAdmissionRepo{files: make(map[int64]*models.AdmissionFile)}
}

func (r *fakeAdmissionRepo) Create(_ context.Context, file *models.AdmissionFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.UserID == file.UserID {
			return apperrors.ErrAdmissionFileExists
		}
	}
	r.nextID++
	file.ID = r.nextID
	cp := *file
	r.files[file.ID] = &cp
	return nil
}

func (r *fakeAdmissionRepo) GetByID(_ context.Context, id int64) (*models.AdmissionFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.files[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeAdmissionRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.AdmissionFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.UserID == userID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAdmissionRepo) GetAll(_ context.Context, userID *uuid.UUID, status *models.AdmissionStatus) ([]*models.AdmissionFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.AdmissionFile
	for _, f := range r.files {
		if userID != nil && f.UserID != *userID {
			continue
		}
		if status != nil && f.Status != *status {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAdmissionRepo) Update(_ context.Context, file *models.AdmissionFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *file
	r.files[file.ID] = &cp
	return nil
}

func (r *fakeAdmissionRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, id)
	return nil
}

func (r *fakeAdmissionRepo) ExistsByUserID(_ context.Context, userID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// fakeStorage records saved and deleted references in memory.
type fakeStorage struct {
	mu      sync.Mutex
	nextRef int
	saved   map[string]bool
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string]bool)}
}

func (s *fakeStorage) SaveFile(fh *multipart.FileHeader, subPath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRef++
	ref := fmt.Sprintf("mem://%s/%d-%s", subPath, s.nextRef, fh.Filename)
	s.saved[ref] = true
	return ref, nil
}

func (s *fakeStorage) DeleteFile(fileRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, fileRef)
	s.deleted = append(s.deleted, fileRef)
	return nil
}

func (s *fakeStorage) DeleteDir(subPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := "mem://" + subPath + "/"
	for ref := range s.saved {
		if len(ref) >= len(prefix) && ref[:len(prefix)] == prefix {
			delete(s.saved, ref)
			s.deleted = append(s.deleted, ref)
		}
	}
	return nil
}

// fakeEmail records decision notifications.
type fakeEmail struct {
	mu   sync.Mutex
	sent []string // "email:decision"
}

func (e *fakeEmail) SendDecisionEmail(toEmail, decision string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sent = append(e.sent, toEmail+":"+decision)
	return nil
}

// fileHeader builds a multipart header the way gin hands uploads to the
// services, with only the fields the services read.
func fileHeader(name, contentType string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}
