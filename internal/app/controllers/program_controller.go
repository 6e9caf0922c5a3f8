package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/apavel/studygate/internal/app/models/dto"
	"github.com/apavel/studygate/internal/app/services"
	"github.com/apavel/studygate/internal/middleware"
)

// ProgramController handles program of study catalog operations
type ProgramController struct {
	programService services.ProgramService
	logger         zerolog.Logger
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService services.ProgramService, logger zerolog.Logger) *ProgramController {
	return &ProgramController{
		programService: programService,
		logger:         logger,
	}
}

// CreateProgram adds a catalog entry
// @Summary Create program of study
// @Description Adds an entry to the catalog. Staff only. The (name, financing type) pair must be unique.
// @Tags programs
// @Accept json
// @Produce json
// @Param request body dto.ProgramRequest true "Program of study"
// @Success 201 {object} dto.APIResponse{data=models.ProgramOfStudy}
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 409 {object} dto.ErrorResponse "Program already exists"
// @Security BearerAuth
// @Router /programs-of-study [post]
func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	var req dto.ProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	program, err := c.programService.Create(ctx.Request.Context(), principal, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("programID", program.ID.String()).Str("name", program.Name).Msg("Program of study created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(program))
}

// GetAllPrograms lists the catalog
// @Summary List programs of study
// @Description Lists the catalog, optionally filtered by program type. Open to every authenticated account.
// @Tags programs
// @Produce json
// @Param type query string false "Filter by program type" Enums(BACHELOR, MASTER, DOCTORATE)
// @Success 200 {object} dto.APIResponse{data=[]models.ProgramOfStudy}
// @Security BearerAuth
// @Router /programs-of-study [get]
func (c *ProgramController) GetAllPrograms(ctx *gin.Context) {
	programs, err := c.programService.GetAll(ctx.Request.Context(), ctx.Query("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(programs))
}

// GetProgramByID retrieves a catalog entry
// @Summary Get program of study by id
// @Tags programs
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} dto.APIResponse{data=models.ProgramOfStudy}
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Security BearerAuth
// @Router /programs-of-study/{id} [get]
func (c *ProgramController) GetProgramByID(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	program, err := c.programService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(program))
}

// UpdateProgram replaces a catalog entry
// @Summary Update program of study
// @Description Replaces a catalog entry. Staff only.
// @Tags programs
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Param request body dto.ProgramRequest true "Program of study"
// @Success 200 {object} dto.APIResponse{data=models.ProgramOfStudy}
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Program already exists"
// @Security BearerAuth
// @Router /programs-of-study/{id} [put]
func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	program, err := c.programService.UpdateByID(ctx.Request.Context(), principal, id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(program))
}

// DeleteProgram removes a catalog entry
// @Summary Delete program of study
// @Description Removes a catalog entry. Staff only.
// @Tags programs
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Security BearerAuth
// @Router /programs-of-study/{id} [delete]
func (c *ProgramController) DeleteProgram(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.programService.DeleteByID(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Program of study deleted successfully"}))
}
