package access

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voduybaokhanh/shop-service/internal/apperror"
	"github.com/voduybaokhanh/shop-service/internal/middleware"
	"github.com/voduybaokhanh/shop-service/internal/testutil"
	"github.com/voduybaokhanh/shop-service/pkg/jwtutil"
)

func TestAuthorize(t *testing.T) {
	owner := Caller{Email: "a@x.com", Role: RoleCustomer}
	other := Caller{Email: "b@x.com", Role: RoleCustomer}
	admin := Caller{Email: "root@x.com", Role: RoleAdmin}

	assert.NoError(t, Authorize(owner, "A@x.com"))
	assert.NoError(t, Authorize(admin, "a@x.com"))
	assert.True(t, apperror.IsKind(Authorize(other, "a@x.com"), apperror.ForbiddenKind))
	assert.True(t, apperror.IsKind(Authorize(Caller{}, "a@x.com"), apperror.AuthKind))
	assert.True(t, apperror.IsKind(Authorize(owner, ""), apperror.ForbiddenKind))
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(Caller{Email: "root@x.com", Role: RoleAdmin}))
	assert.True(t, apperror.IsKind(RequireAdmin(Caller{Email: "a@x.com", Role: RoleCustomer}), apperror.ForbiddenKind))
	assert.True(t, apperror.IsKind(RequireAdmin(Caller{}), apperror.AuthKind))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens, err := jwtutil.New(jwtutil.Config{SigningKey: "secret", TTL: time.Hour})
	require.NoError(t, err)

	log := testutil.Logger()
	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	router.GET("/me", Middleware(tokens, nil, log), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": FromContext(c).Email})
	})

	token, _, err := tokens.GenerateToken("a@x.com", RoleCustomer)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

type roleTable map[string]string

func (r roleTable) CurrentRole(_ context.Context, email string) (string, error) {
	role, ok := r[email]
	if !ok {
		return "", apperror.NotFound(errors.New("account not found"))
	}
	return role, nil
}

func TestMiddlewareReadsCurrentRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens, err := jwtutil.New(jwtutil.Config{SigningKey: "secret", TTL: time.Hour})
	require.NoError(t, err)

	roles := roleTable{"root@x.com": RoleAdmin}
	log := testutil.Logger()
	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	router.GET("/admin", Middleware(tokens, roles, log), func(c *gin.Context) {
		if err := RequireAdmin(FromContext(c)); err != nil {
			c.Error(err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	token, _, err := tokens.GenerateToken("root@x.com", RoleAdmin)
	require.NoError(t, err)
	call := func() int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call())

	roles["root@x.com"] = RoleCustomer
	assert.Equal(t, http.StatusForbidden, call())

	delete(roles, "root@x.com")
	assert.Equal(t, http.StatusUnauthorized, call())
}
