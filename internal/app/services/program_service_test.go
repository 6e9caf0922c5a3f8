package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/apavel/studygate/internal/app/auth"
	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/pkg/apperrors"
)

type ProgramServiceSuite struct {
	suite.Suite

	ctx context.Context

	programRepo *fakeProgramRepo
	service     ProgramService

	student auth.Principal
	admin   auth.Principal
}

func TestProgramServiceSuite(t *testing.T) {
	suite.Run(t, new(ProgramServiceSuite))
}

func (s *ProgramServiceSuite) SetupTest() {
	s.ctx = context.Background()

	s.programRepo = newFakeProgramRepo()
	s.service = NewProgramService(s.programRepo)

	s.student = auth.Principal{UserID: uuid.New(), Email: "ana@example.com", Role: models.RoleStudent}
	s.admin = auth.Principal{UserID: uuid.New(), Email: "staff@example.com", Role: models.RoleAdmin}
}

func newProgram(name string, financing models.FinancingType) *models.ProgramOfStudy {
	return &models.ProgramOfStudy{
		Name: name, Type: models.ProgramBachelor,
		NumberOfYears: 3, NumberOfStudents: 100, FinancingType: financing,
	}
}

func (s *ProgramServiceSuite) TestCreateRequiresAdmin() {
	_, err := s.service.Create(s.ctx, s.student, newProgram("Computer Science", models.FinancingBudget))
	s.Require().ErrorIs(err, apperrors.ErrPermissionDenied)
}

func (s *ProgramServiceSuite) TestCreateAssignsID() {
	program, err := s.service.Create(s.ctx, s.admin, newProgram("Computer Science", models.FinancingBudget))

	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, program.ID)
}

func (s *ProgramServiceSuite) TestCreateDuplicatePairConflicts() {
	_, err := s.service.Create(s.ctx, s.admin, newProgram("Computer Science", models.FinancingBudget))
	s.Require().NoError(err)

	_, err = s.service.Create(s.ctx, s.admin, newProgram("Computer Science", models.FinancingBudget))
	s.Require().ErrorIs(err, apperrors.ErrProgramOfStudyExists)

	// Same name under a different financing type is a distinct entry.
	_, err = s.service.Create(s.ctx, s.admin, newProgram("Computer Science", models.FinancingTuition))
	s.Require().NoError(err)
}

func (s *ProgramServiceSuite) TestCreateValidatesAttributes() {
	program := newProgram("", models.FinancingBudget)
	_, err := s.service.Create(s.ctx, s.admin, program)
	s.Require().ErrorIs(err, apperrors.ErrBadRequest)

	program = newProgram("Computer Science", models.FinancingBudget)
	program.NumberOfYears = 0
	_, err = s.service.Create(s.ctx, s.admin, program)
	s.Require().ErrorIs(err, apperrors.ErrBadRequest)

	program = newProgram("Computer Science", models.FinancingType("SPONSOR"))
	_, err = s.service.Create(s.ctx, s.admin, program)
	s.Require().ErrorIs(err, apperrors.ErrBadRequest)
}

func (s *ProgramServiceSuite) TestUpdateChangedPairMustBeFree() {
	_, err := s.service.Create(s.ctx, s.admin, newProgram("Computer Science", models.FinancingBudget))
	s.Require().NoError(err)
	math, err := s.service.Create(s.ctx, s.admin, newProgram("Mathematics", models.FinancingBudget))
	s.Require().NoError(err)

	_, err = s.service.UpdateByID(s.ctx, s.admin, math.ID, newProgram("Computer Science", models.FinancingBudget))
	s.Require().ErrorIs(err, apperrors.ErrProgramOfStudyExists)

	// Keeping the own pair while changing other attributes is fine.
	update := newProgram("Mathematics", models.FinancingBudget)
	update.NumberOfStudents = 42
	updated, err := s.service.UpdateByID(s.ctx, s.admin, math.ID, update)
	s.Require().NoError(err)
	s.Equal(42, updated.NumberOfStudents)
}

func (s *ProgramServiceSuite) TestGetAllOpenToEveryone() {
	_, err := s.service.Create(s.ctx, s.admin, newProgram("Computer Science", models.FinancingBudget))
	s.Require().NoError(err)

	master := newProgram("Data Science", models.FinancingBudget)
	master.Type = models.ProgramMaster
	_, err = s.service.Create(s.ctx, s.admin, master)
	s.Require().NoError(err)

	all, err := s.service.GetAll(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 2)

	masters, err := s.service.GetAll(s.ctx, string(models.ProgramMaster))
	s.Require().NoError(err)
	s.Require().Len(masters, 1)
	s.Equal("Data Science", masters[0].Name)

	_, err = s.service.GetAll(s.ctx, "EVENING")
	s.Require().ErrorIs(err, apperrors.ErrBadRequest)
}

func (s *ProgramServiceSuite) TestDeleteRequiresAdmin() {
	program, err := s.service.Create(s.ctx, s.admin, newProgram("Computer Science", models.FinancingBudget))
	s.Require().NoError(err)

	err = s.service.DeleteByID(s.ctx, s.student, program.ID)
	s.Require().ErrorIs(err, apperrors.ErrPermissionDenied)

	s.Require().NoError(s.service.DeleteByID(s.ctx, s.admin, program.ID))

	_, err = s.service.GetByID(s.ctx, program.ID)
	s.Require().ErrorIs(err, apperrors.ErrResourceNotFound)
}
