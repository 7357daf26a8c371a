package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/mindforge/mindforge-api/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "roleType"
)

// Auth messages
const (
	MsgAuthRequired     = "Authentication required"
	MsgInvalidToken     = "Invalid or malformed token"
	MsgTokenExpired     = "Token has expired"
	MsgInsufficientRole = "You don't have sufficient permissions for this operation"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// tokenFrom reads the bearer token from the Authorization header. With allowQuery set it
// falls back to the token query parameter, which browsers need for WebSocket upgrades.
func tokenFrom(c *gin.Context, allowQuery bool) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		return auth.ExtractBearerToken(strings.Trim(header, "\"'"))
	}
	if allowQuery {
		if token := strings.TrimSpace(c.Query("token")); token != "" {
			return token, nil
		}
	}
	return "", apperrors.Unauthenticated(MsgAuthRequired)
}

// JWTAuth validates the access token from the Authorization header and stores the caller in the gin context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return m.authenticate(false)
}

// JWTAuthQuery is JWTAuth that also accepts ?token=. Only mount it on WebSocket upgrade routes.
func (m *AuthMiddleware) JWTAuthQuery() gin.HandlerFunc {
	return m.authenticate(true)
}

func (m *AuthMiddleware) authenticate(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := tokenFrom(c, allowQuery)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidFormat) {
				err = apperrors.Unauthenticated(MsgInvalidToken)
			}
			abortWithError(c, err)
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortWithError(c, apperrors.Unauthenticated(MsgTokenExpired))
				return
			}
			abortWithError(c, apperrors.Unauthenticated(MsgInvalidToken))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RoleRequired lets the request through only when the caller holds one of roles
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			abortWithError(c, apperrors.Unauthenticated(MsgAuthRequired))
			return
		}
		if !principal.Is(roles...) {
			abortWithError(c, apperrors.Forbidden(MsgInsufficientRole))
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the caller stored by JWTAuth
func PrincipalFrom(c *gin.Context) (models.Principal, bool) {
	userID, ok := c.Value(ContextUserID).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return models.Principal{}, false
	}
	role, _ := c.Value(ContextRole).(models.RoleType)
	email, _ := c.Value(ContextEmail).(string)
	return models.Principal{UserID: userID, Email: email, Role: role}, true
}
