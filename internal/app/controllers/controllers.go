package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/middleware"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
)

// currentPrincipal returns the authenticated caller or writes a 401
func currentPrincipal(ctx *gin.Context) (models.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.Unauthenticated(middleware.MsgAuthRequired))
	}
	return principal, ok
}

// uuidParam parses a path parameter as a UUID or writes a 400
func uuidParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.Validation("Invalid "+name,
			apperrors.FieldError{Field: name, Message: name + " must be a valid UUID"}))
		return uuid.Nil, false
	}
	return id, true
}
