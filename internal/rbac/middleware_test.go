package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"click2dial/internal/auth"
)

func serve(t *testing.T, tenantID, role string, allowed ...string) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	handlers := []gin.HandlerFunc{func(c *gin.Context) {
		ctx := auth.WithIdentity(c.Request.Context(), "u", tenantID, role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}}
	handlers = append(handlers, Chain(allowed...)...)
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/x", handlers...)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w.Code
}

func TestRequireAnyRole_SuperAdminBypasses(t *testing.T) {
	if code := serve(t, "t", RoleSuperAdmin, RoleOwner); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireAnyRole_AgentCannotAdminister(t *testing.T) {
	if code := serve(t, "t", RoleAgent, RoleOwner); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestRequireAnyRole_AllowedRolePasses(t *testing.T) {
	if code := serve(t, "t", RoleAnalyst, RoleOwner, RoleAnalyst); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestRequireTenant(t *testing.T) {
	if code := serve(t, "", RoleOwner, RoleOwner); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestIsKnown(t *testing.T) {
	if !IsKnown(RoleAgent) || IsKnown("network_operator") {
		t.Fatalf("unexpected role set")
	}
}
