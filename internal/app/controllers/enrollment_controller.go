package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/apavel/studygate/internal/app/models/dto"
	"github.com/apavel/studygate/internal/app/services"
	"github.com/apavel/studygate/internal/middleware"
)

// EnrollmentController handles program application operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// CreateEnrollment applies the caller to a program of study
// @Summary Apply to a program of study
// @Description Creates an application of the calling student to a program. One application per (student, program) pair; refused once the admission file is submitted.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.EnrollmentRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment}
// @Failure 403 {object} dto.ErrorResponse "Only students can apply"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Application already exists or admission file submitted"
// @Security BearerAuth
// @Router /enrollments [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.EnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enrollment, err := c.enrollmentService.Create(ctx.Request.Context(), principal, req.ProgramID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("enrollmentID", enrollment.ID).Msg("Enrollment created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(enrollment))
}

// GetAllEnrollments lists applications
// @Summary List applications
// @Description Lists applications. Students always receive only their own rows; staff may filter by account and program.
// @Tags enrollments
// @Produce json
// @Param userId query string false "Filter by account id (staff only)"
// @Param programId query string false "Filter by program id"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment}
// @Security BearerAuth
// @Router /enrollments [get]
func (c *EnrollmentController) GetAllEnrollments(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var userID, programID *uuid.UUID
	if raw := ctx.Query("userId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid userId parameter").WithField("userId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		userID = &parsed
	}
	if raw := ctx.Query("programId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid programId parameter").WithField("programId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		programID = &parsed
	}

	enrollments, err := c.enrollmentService.GetAll(ctx.Request.Context(), principal, userID, programID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollments))
}

// GetEnrollmentByID retrieves an application
// @Summary Get application by id
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment}
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Security BearerAuth
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollmentByID(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.GetByID(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment))
}

// UpdateEnrollment changes the program of an application
// @Summary Change the program of an application
// @Description Moves the application to another program. Refused once the admission file is submitted.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param request body dto.EnrollmentRequest true "New program"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment}
// @Failure 404 {object} dto.ErrorResponse "Application or program not found"
// @Failure 409 {object} dto.ErrorResponse "Application already exists or admission file submitted"
// @Security BearerAuth
// @Router /enrollments/{id} [put]
func (c *EnrollmentController) UpdateEnrollment(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.EnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enrollment, err := c.enrollmentService.UpdateByID(ctx.Request.Context(), principal, id, req.ProgramID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment))
}

// SubmitGrade records a grade on an application
// @Summary Submit grade
// @Description Records a grade between 1 and 10 on an application. Staff only.
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param request body dto.GradeRequest true "Grade"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment}
// @Failure 400 {object} dto.ErrorResponse "Grade out of bounds"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Security BearerAuth
// @Router /enrollments/{id}/grade [put]
func (c *EnrollmentController) SubmitGrade(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	enrollment, err := c.enrollmentService.SubmitGrade(ctx.Request.Context(), principal, id, req.Grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(enrollment))
}

// DeleteEnrollment withdraws an application
// @Summary Withdraw application
// @Description Withdraws an application. Refused once the admission file is submitted.
// @Tags enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Admission file submitted"
// @Security BearerAuth
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.enrollmentService.DeleteByID(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Enrollment deleted successfully"}))
}
