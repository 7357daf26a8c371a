package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/services"
	"github.com/mindforge/mindforge-api/internal/middleware"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
)

// UserController handles user queries
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile returns the caller's own user
// @Summary Get my profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope{data=models.User}
// @Failure 401 {object} dto.Envelope "Authentication required"
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	user, err := c.userService.GetByID(ctx.Request.Context(), principal.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(user))
}

// ListUsers returns a page of users
// @Summary List users
// @Description Admin only. Optionally filtered by role.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter" Enums(STUDENT, PARENT, FACILITATOR, ADMIN)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.Envelope{data=object{users=[]models.User}}
// @Failure 403 {object} dto.Envelope "Admins only"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var filter dto.UserFilterRequest
	if !middleware.BindQuery(ctx, &filter) {
		return
	}
	page := helpers.ParsePagination(ctx)

	users, total, err := c.userService.List(ctx.Request.Context(), filter.Role, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, helpers.NewPaginatedResponse(users, total, page.Page, page.Limit, "users"))
}

// GetUser returns one user by id
// @Summary Get user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" Format(uuid)
// @Success 200 {object} dto.Envelope{data=models.User}
// @Failure 404 {object} dto.Envelope "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := uuidParam(ctx, "id")
	if !ok {
		return
	}
	user, err := c.userService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(user))
}
