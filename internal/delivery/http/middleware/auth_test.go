package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/heartlinkapp/heartlink-backend/internal/domain"
)

func roleTestContext(t *testing.T, role interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/admin/users/x", nil)
	if role != nil {
		c.Set("admin_role", role)
	}
	return c, w
}

func TestRequireRoleAdmitsMatchingRole(t *testing.T) {
	m := NewAuthMiddleware(nil)
	c, _ := roleTestContext(t, domain.AdminRoleSuper)

	m.RequireRole(domain.AdminRoleSuper)(c)

	assert.False(t, c.IsAborted())
}

func TestRequireRoleRejectsLesserRole(t *testing.T) {
	m := NewAuthMiddleware(nil)
	c, w := roleTestContext(t, domain.AdminRoleModerator)

	m.RequireRole(domain.AdminRoleSuper)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	m := NewAuthMiddleware(nil)
	c, w := roleTestContext(t, nil)

	m.RequireRole(domain.AdminRoleSuper)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}
