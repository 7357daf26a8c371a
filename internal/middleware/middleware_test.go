package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/mindforge/mindforge-api/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jwtService(exp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: "middleware-secret", AccessTokenExp: exp})
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Envelope {
	t.Helper()
	var env dto.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func protectedRouter(m *AuthMiddleware, roles ...models.RoleType) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{m.JWTAuth()}
	if len(roles) > 0 {
		handlers = append(handlers, m.RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "role": p.Role})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestJWTAuth(t *testing.T) {
	svc := jwtService(time.Hour)
	user := &models.User{ID: uuid.New(), Email: "f@mf.dev", RoleType: models.RoleFacilitator}
	token, _, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	r := protectedRouter(NewAuthMiddleware(svc))

	cases := []struct {
		name    string
		header  string
		query   string
		status  int
		message string
	}{
		{name: "bearer header", header: "Bearer " + token, status: http.StatusOK},
		{name: "query token rejected", query: "?token=" + token, status: http.StatusUnauthorized, message: MsgAuthRequired},
		{name: "missing", status: http.StatusUnauthorized, message: MsgAuthRequired},
		{name: "no bearer prefix", header: token, status: http.StatusUnauthorized, message: MsgInvalidToken},
		{name: "garbage", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized, message: MsgInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.message != "" {
				env := decode(t, w)
				assert.Equal(t, dto.StatusFail, env.Status)
				assert.Equal(t, tc.message, env.Message)
			}
		})
	}
}

func TestJWTAuthQuery(t *testing.T) {
	svc := jwtService(time.Hour)
	token, _, err := svc.GenerateAccessToken(&models.User{ID: uuid.New(), RoleType: models.RoleStudent})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/ws", NewAuthMiddleware(svc).JWTAuthQuery(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token=garbage", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, MsgInvalidToken, decode(t, w).Message)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpired(t *testing.T) {
	expired, _, err := jwtService(-time.Minute).GenerateAccessToken(&models.User{ID: uuid.New(), RoleType: models.RoleStudent})
	require.NoError(t, err)

	r := protectedRouter(NewAuthMiddleware(jwtService(time.Hour)))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, MsgTokenExpired, decode(t, w).Message)
}

func TestRoleRequired(t *testing.T) {
	svc := jwtService(time.Hour)
	r := protectedRouter(NewAuthMiddleware(svc), models.RoleFacilitator, models.RoleAdmin)

	for role, status := range map[models.RoleType]int{
		models.RoleAdmin:   http.StatusOK,
		models.RoleStudent: http.StatusForbidden,
		models.RoleParent:  http.StatusForbidden,
	} {
		token, _, err := svc.GenerateAccessToken(&models.User{ID: uuid.New(), RoleType: role})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, role)
	}
}

func TestHandleAPIError(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		state   string
		message string
	}{
		{apperrors.Validation("Validation failed", apperrors.FieldError{Field: "title", Message: "title is a required field"}), 400, dto.StatusFail, "Validation failed"},
		{apperrors.Unauthenticated("Authentication required"), 401, dto.StatusFail, "Authentication required"},
		{apperrors.Forbidden("nope"), 403, dto.StatusFail, "nope"},
		{apperrors.NotFound("Bootcamp not found"), 404, dto.StatusFail, "Bootcamp not found"},
		{apperrors.Conflict("Bootcamp is full"), 400, dto.StatusFail, "Bootcamp is full"},
		{apperrors.ServiceUnavailable("Service temporarily unavailable", errors.New("dial tcp")), 503, dto.StatusError, "Service temporarily unavailable"},
		{errors.New("boom"), 500, dto.StatusError, "Something went wrong"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		HandleAPIError(c, tc.err)

		assert.Equal(t, tc.status, w.Code)
		env := decode(t, w)
		assert.Equal(t, tc.state, env.Status)
		assert.Equal(t, tc.message, env.Message)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", nil)
	HandleAPIError(c, apperrors.Validation("Validation failed", apperrors.FieldError{Field: "day", Message: "day must be 1 or greater"}))
	env := decode(t, w)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "day", env.Errors[0].Field)
}

func TestBindJSONReportsFields(t *testing.T) {
	type body struct {
		Title string `json:"title" binding:"required"`
	}
	r := gin.New()
	r.POST("/things", func(c *gin.Context) {
		var b body
		if !BindJSON(c, &b) {
			return
		}
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/things", http.NoBody))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Validation failed", env.Message)
	assert.NotEmpty(t, env.Errors)
}

func TestRecoveryAndRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zerolog.Nop()), Recovery(zerolog.Nop()))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, dto.StatusError, decode(t, w).Status)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.mindforge.dev"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.mindforge.dev")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.mindforge.dev", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
