package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/app/services"
	"github.com/mindforge/mindforge-api/internal/middleware"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a student, parent or facilitator account together with its role profile and returns an access token. Students may name a parent account by email.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.Envelope{data=dto.AuthResponse} "User registered"
// @Failure 400 {object} dto.Envelope "Validation failed or email already registered"
// @Failure 503 {object} dto.Envelope "Storage unavailable"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.SuccessWithMessage(resp, "User registered successfully"))
}

// Login handles user login
// @Summary Log in
// @Description Exchanges email and password for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Envelope{data=dto.AuthResponse} "Logged in"
// @Failure 400 {object} dto.Envelope "Validation failed"
// @Failure 401 {object} dto.Envelope "Invalid email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessWithMessage(resp, "Login successful"))
}

// Me returns the authenticated user
// @Summary Current user
// @Description Returns the caller with their role profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Envelope{data=models.User}
// @Failure 401 {object} dto.Envelope "Authentication required"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}

	user, err := c.authService.Me(ctx.Request.Context(), principal.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.Success(user))
}
