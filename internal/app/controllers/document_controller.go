package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/apavel/studygate/internal/app/models/dto"
	"github.com/apavel/studygate/internal/app/services"
	"github.com/apavel/studygate/internal/middleware"
)

// DocumentController handles admission document operations
type DocumentController struct {
	documentService services.DocumentService
	logger          zerolog.Logger
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService services.DocumentService, logger zerolog.Logger) *DocumentController {
	return &DocumentController{
		documentService: documentService,
		logger:          logger,
	}
}

// bindUpload reads the three document parts from the multipart form. A
// missing part stays nil; the service reports which one is required.
func bindUpload(ctx *gin.Context) services.DocumentUpload {
	formFile := func(name string) *multipart.FileHeader {
		fh, err := ctx.FormFile(name)
		if err != nil {
			return nil
		}
		return fh
	}

	return services.DocumentUpload{
		IdentityCard:       formFile("identityCard"),
		MedicalCertificate: formFile("medicalCertificate"),
		Diploma:            formFile("diploma"),
	}
}

// CreateDocuments uploads the admission documents
// @Summary Upload admission documents
// @Description Stores the identity card, medical certificate and diploma for the calling account. All three are required, as PDF or image files.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param identityCard formData file true "Identity card (PDF or image)"
// @Param medicalCertificate formData file true "Medical certificate (PDF or image)"
// @Param diploma formData file true "Diploma (PDF or image)"
// @Success 201 {object} dto.APIResponse{data=models.DocumentSet}
// @Failure 400 {object} dto.ErrorResponse "Missing document or unsupported content type"
// @Failure 409 {object} dto.ErrorResponse "Documents already exist"
// @Security BearerAuth
// @Router /documents [post]
func (c *DocumentController) CreateDocuments(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	docs, err := c.documentService.Create(ctx.Request.Context(), principal, bindUpload(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("userID", principal.UserID.String()).Msg("Documents uploaded")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(docs))
}

// UpdateDocuments replaces the admission documents
// @Summary Replace admission documents
// @Description Replaces all three documents of a set. Refused once the admission file is submitted.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Document set ID"
// @Param identityCard formData file true "Identity card (PDF or image)"
// @Param medicalCertificate formData file true "Medical certificate (PDF or image)"
// @Param diploma formData file true "Diploma (PDF or image)"
// @Success 200 {object} dto.APIResponse{data=models.DocumentSet}
// @Failure 404 {object} dto.ErrorResponse "Documents not found"
// @Failure 409 {object} dto.ErrorResponse "Admission file submitted"
// @Security BearerAuth
// @Router /documents/{id} [put]
func (c *DocumentController) UpdateDocuments(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	docs, err := c.documentService.Update(ctx.Request.Context(), principal, id, bindUpload(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(docs))
}

// GetDocumentsByID retrieves a document set
// @Summary Get documents by id
// @Tags documents
// @Produce json
// @Param id path int true "Document set ID"
// @Success 200 {object} dto.APIResponse{data=models.DocumentSet}
// @Failure 404 {object} dto.ErrorResponse "Documents not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (c *DocumentController) GetDocumentsByID(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	docs, err := c.documentService.GetByID(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(docs))
}

// GetAllDocuments lists every document set
// @Summary List document sets
// @Description Lists every uploaded document set. Staff only.
// @Tags documents
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.DocumentSet}
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Security BearerAuth
// @Router /documents [get]
func (c *DocumentController) GetAllDocuments(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	sets, err := c.documentService.GetAll(ctx.Request.Context(), principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sets))
}

// DeleteDocuments removes a document set
// @Summary Delete documents
// @Description Removes a document set and its stored files. Refused once the admission file is submitted.
// @Tags documents
// @Produce json
// @Param id path int true "Document set ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Documents not found"
// @Failure 409 {object} dto.ErrorResponse "Admission file submitted"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (c *DocumentController) DeleteDocuments(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.documentService.DeleteByID(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Documents deleted successfully"}))
}
