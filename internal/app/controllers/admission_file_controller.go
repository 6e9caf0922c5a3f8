package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/apavel/studygate/internal/app/models"
	"github.com/apavel/studygate/internal/app/models/dto"
	"github.com/apavel/studygate/internal/app/services"
	"github.com/apavel/studygate/internal/middleware"
)

// AdmissionFileController handles admission file lifecycle operations
type AdmissionFileController struct {
	admissionService services.AdmissionFileService
	logger           zerolog.Logger
}

// NewAdmissionFileController creates a new AdmissionFileController
func NewAdmissionFileController(admissionService services.AdmissionFileService, logger zerolog.Logger) *AdmissionFileController {
	return &AdmissionFileController{
		admissionService: admissionService,
		logger:           logger,
	}
}

// SubmitAdmissionFile files the caller's admission file
// @Summary Submit admission file
// @Description Submits the calling account's admission file for review. Requires personal information, documents and at least one application; freezes those records until the file is removed.
// @Tags admission-files
// @Produce json
// @Success 201 {object} dto.APIResponse{data=models.AdmissionFile}
// @Failure 403 {object} dto.ErrorResponse "Submission prerequisites missing"
// @Failure 409 {object} dto.ErrorResponse "Admission file already exists"
// @Security BearerAuth
// @Router /admission-files [post]
func (c *AdmissionFileController) SubmitAdmissionFile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	file, err := c.admissionService.Submit(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("fileID", file.ID).Msg("Admission file submitted")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(file))
}

// ResubmitAdmissionFile resets a reviewed file back to pending
// @Summary Resubmit admission file
// @Description Resets a pending or rejected file back to pending with a fresh submission timestamp. A validated file cannot be resubmitted.
// @Tags admission-files
// @Produce json
// @Param id path int true "Admission file ID"
// @Success 200 {object} dto.APIResponse{data=models.AdmissionFile}
// @Failure 403 {object} dto.ErrorResponse "File already validated"
// @Failure 404 {object} dto.ErrorResponse "Admission file not found"
// @Security BearerAuth
// @Router /admission-files/{id}/resubmit [put]
func (c *AdmissionFileController) ResubmitAdmissionFile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := c.admissionService.Resubmit(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(file))
}

// ValidateAdmissionFile records the staff decision on a file
// @Summary Validate admission file
// @Description Sets the file status, whatever its current state, and emails the decision to the student. Staff only.
// @Tags admission-files
// @Accept json
// @Produce json
// @Param id path int true "Admission file ID"
// @Param request body dto.ValidateAdmissionRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=models.AdmissionFile}
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Admission file not found"
// @Security BearerAuth
// @Router /admission-files/{id}/validate [put]
func (c *AdmissionFileController) ValidateAdmissionFile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ValidateAdmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	file, err := c.admissionService.Validate(ctx.Request.Context(), principal, id, models.AdmissionStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("fileID", file.ID).Str("status", req.Status).Msg("Admission file decision recorded")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(file))
}

// GetAdmissionFileByID retrieves an admission file
// @Summary Get admission file by id
// @Tags admission-files
// @Produce json
// @Param id path int true "Admission file ID"
// @Success 200 {object} dto.APIResponse{data=models.AdmissionFile}
// @Failure 404 {object} dto.ErrorResponse "Admission file not found"
// @Security BearerAuth
// @Router /admission-files/{id} [get]
func (c *AdmissionFileController) GetAdmissionFileByID(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := c.admissionService.GetByID(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(file))
}

// GetAllAdmissionFiles lists admission files
// @Summary List admission files
// @Description Lists admission files for staff, optionally filtered by account and status.
// @Tags admission-files
// @Produce json
// @Param userId query string false "Filter by account id"
// @Param status query string false "Filter by status" Enums(PENDING, VALID, INVALID)
// @Success 200 {object} dto.APIResponse{data=[]models.AdmissionFile}
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Security BearerAuth
// @Router /admission-files [get]
func (c *AdmissionFileController) GetAllAdmissionFiles(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var userID *uuid.UUID
	if raw := ctx.Query("userId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid userId parameter").WithField("userId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		userID = &parsed
	}

	var status *models.AdmissionStatus
	if raw := ctx.Query("status"); raw != "" {
		parsed := models.AdmissionStatus(raw)
		if !parsed.Valid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid status parameter").WithField("status")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		status = &parsed
	}

	files, err := c.admissionService.GetAll(ctx.Request.Context(), principal, userID, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(files))
}

// DeleteAdmissionFile removes an admission file
// @Summary Delete admission file
// @Description Removes an admission file, releasing the freeze on the owner's records.
// @Tags admission-files
// @Produce json
// @Param id path int true "Admission file ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Admission file not found"
// @Security BearerAuth
// @Router /admission-files/{id} [delete]
func (c *AdmissionFileController) DeleteAdmissionFile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.admissionService.DeleteByID(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Admission file deleted successfully"}))
}
