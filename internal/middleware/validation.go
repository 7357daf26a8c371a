package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/mindforge/mindforge-api/internal/pkg/validation"
)

// BindJSON binds and validates the request body into obj.
// On failure it writes a 400 envelope listing the offending fields and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleAPIError(c, validation.BindingError(err))
		return false
	}
	return true
}

// BindQuery binds and validates query string parameters into obj
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		HandleAPIError(c, validation.BindingError(err))
		return false
	}
	return true
}
