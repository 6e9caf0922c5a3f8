package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/apavel/studygate/internal/app/models/dto"
	"github.com/apavel/studygate/internal/app/services"
	"github.com/apavel/studygate/internal/middleware"
)

// UserController handles account and profile operations
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetAllUsers lists accounts
// @Summary List accounts
// @Description Lists accounts for staff, optionally filtered by email and by profile nationality
// @Tags users
// @Produce json
// @Param email query string false "Filter by exact email"
// @Param nationality query string false "Filter by profile nationality"
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse}
// @Failure 403 {object} dto.ErrorResponse "Administrator role required"
// @Security BearerAuth
// @Router /users [get]
func (c *UserController) GetAllUsers(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	users, err := c.userService.GetAll(ctx.Request.Context(), principal, ctx.Query("email"), ctx.Query("nationality"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(responses))
}

// GetUserByID retrieves an account
// @Summary Get account by id
// @Tags users
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (c *UserController) GetUserByID(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetByID(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user)))
}

// UpdateUser replaces account credentials
// @Summary Update account credentials
// @Description Replaces the email and password of an account. Refused once the admission file is submitted.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body dto.UpdateUserRequest true "New credentials"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists or admission file submitted"
// @Security BearerAuth
// @Router /users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.userService.Update(ctx.Request.Context(), principal, id, req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewUserResponse(user)))
}

// DeleteUser removes an account
// @Summary Delete account
// @Description Removes an account and everything it owns. Refused once the admission file is submitted.
// @Tags users
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Admission file submitted"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteByID(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("userID", id.String()).Msg("Account deleted")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "User deleted successfully"}))
}

// PopulateProfile attaches personal information to an account
// @Summary Create personal information
// @Description Attaches personal information to an account that has none yet
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body dto.ProfileRequest true "Personal information"
// @Success 201 {object} dto.APIResponse{data=models.Profile}
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Personal information already exists"
// @Security BearerAuth
// @Router /users/{id}/information [post]
func (c *UserController) PopulateProfile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.userService.PopulateProfile(ctx.Request.Context(), principal, id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(profile))
}

// GetProfile retrieves the personal information of an account
// @Summary Get personal information
// @Tags users
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.APIResponse{data=models.Profile}
// @Failure 404 {object} dto.ErrorResponse "Personal information not found"
// @Security BearerAuth
// @Router /users/{id}/information [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.userService.GetProfile(ctx.Request.Context(), principal, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// UpdateProfile replaces the personal information of an account
// @Summary Update personal information
// @Description Replaces personal information. Refused once the admission file is submitted.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body dto.ProfileRequest true "Personal information"
// @Success 200 {object} dto.APIResponse{data=models.Profile}
// @Failure 404 {object} dto.ErrorResponse "Personal information not found"
// @Failure 409 {object} dto.ErrorResponse "Admission file submitted"
// @Security BearerAuth
// @Router /users/{id}/information [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	profile, err := c.userService.UpdateProfile(ctx.Request.Context(), principal, id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// DeleteProfile removes the personal information of an account
// @Summary Delete personal information
// @Description Removes personal information. Refused once the admission file is submitted.
// @Tags users
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Personal information not found"
// @Failure 409 {object} dto.ErrorResponse "Admission file submitted"
// @Security BearerAuth
// @Router /users/{id}/information [delete]
func (c *UserController) DeleteProfile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteProfile(ctx.Request.Context(), principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "User information deleted successfully"}))
}
