package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"unauthenticated", Unauthenticated("no token"), http.StatusUnauthorized},
		{"wrapped unauthenticated", fmt.Errorf("login: %w", Unauthenticated("Invalid email or password")), http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"conflict is a client error", Conflict("Already enrolled in this bootcamp"), http.StatusBadRequest},
		{"wrapped conflict", fmt.Errorf("enroll: %w", Conflict("dup")), http.StatusBadRequest},
		{"unavailable", ServiceUnavailable("db down", errors.New("dial tcp")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestIsOperational(t *testing.T) {
	assert.True(t, IsOperational(Forbidden("x")))
	assert.True(t, IsOperational(Unauthenticated("Invalid email or password")))
	assert.False(t, IsOperational(ErrUnauthenticated))
	assert.False(t, IsOperational(errors.New("nil pointer")))
	assert.False(t, IsOperational(ServiceUnavailable("db", errors.New("refused"))))
}

func TestMessageAndFields(t *testing.T) {
	err := Validation("Invalid request", FieldError{Field: "title", Message: "title is required"})
	assert.Equal(t, "Invalid request", Message(err))
	assert.Equal(t, []FieldError{{Field: "title", Message: "title is required"}}, Fields(err))

	assert.Equal(t, "Something went wrong", Message(errors.New("pq: secret detail")))
	assert.Nil(t, Fields(errors.New("plain")))
}
