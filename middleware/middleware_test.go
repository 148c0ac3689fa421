package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"propshare/constants"
	apperrors "propshare/errors"
	"propshare/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens *services.TokenManager, roles ...int) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Recovery(zap.NewNop()), RequestLogger(zap.NewNop()), ErrorHandler())
	r.GET("/me", AuthMiddleware(tokens, roles...), func(c *gin.Context) {
		userID, role, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role, "admin": IsAdmin(c)})
	})
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(apperrors.Conflict(apperrors.ErrCodeConflict, "conflict"))
	})
	r.GET("/unknown", func(c *gin.Context) { _ = c.Error(errors.New("x")) })
	return r
}

func do(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := services.NewTokenManager("secret", time.Hour)
	owner, err := tokens.GenerateToken(services.UserInfo{UserId: 5, Role: constants.RoleOwner})
	require.NoError(t, err)
	admin, err := tokens.GenerateToken(services.UserInfo{UserId: 1, Role: constants.RoleAdmin})
	require.NoError(t, err)

	r := newRouter(tokens)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "garbage").Code)

	w := do(r, "/me", owner)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":5,"role":2,"admin":false}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	w = do(r, "/me?token="+admin, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":1,"role":1,"admin":true}`, w.Body.String())

	adminOnly := newRouter(tokens, constants.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, do(adminOnly, "/me", owner).Code)
	assert.Equal(t, http.StatusOK, do(adminOnly, "/me", admin).Code)
}

func TestRoleMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		c.Set(ContextUserRole, constants.RoleStaff)
		c.Next()
	}, RoleMiddleware(constants.RoleAdmin, constants.RoleStaff), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/anon", RoleMiddleware(constants.RoleAdmin), func(c *gin.Context) {})

	assert.Equal(t, http.StatusNoContent, do(r, "/x", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/anon", "").Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newRouter(services.NewTokenManager("secret", time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(HeaderRequestID))
}

func TestRecoveryAndErrorHandler(t *testing.T) {
	r := newRouter(services.NewTokenManager("secret", time.Hour))

	assert.Equal(t, http.StatusInternalServerError, do(r, "/boom", "").Code)

	w := do(r, "/fail", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"CONFLICT"`)

	assert.Equal(t, http.StatusInternalServerError, do(r, "/unknown", "").Code)
}
