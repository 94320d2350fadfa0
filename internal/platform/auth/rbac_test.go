package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithRoles(c echo.Context, roles []string) {
	ctx := context.WithValue(c.Request().Context(), UserRolesKey, roles)
	c.SetRequest(c.Request().WithContext(ctx))
}

func invokeWithRoles(t *testing.T, roles []string, required ...string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	contextWithRoles(c, roles)

	h := RequireRole(required...)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return h(c)
}

func TestRequireRole_Allows(t *testing.T) {
	if err := invokeWithRoles(t, []string{RoleReceptionist}, RoleReceptionist); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequireRole_AdminBypassesAll(t *testing.T) {
	if err := invokeWithRoles(t, []string{RoleAdmin}, RoleDoctor); err != nil {
		t.Fatalf("expected admin to pass doctor check, got %v", err)
	}
}

func TestRequireRole_Denies(t *testing.T) {
	err := invokeWithRoles(t, []string{RoleReceptionist}, RoleDoctor)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", he.Code)
	}
}

func TestRequireRole_NoRoles(t *testing.T) {
	err := invokeWithRoles(t, nil, RoleDoctor)
	if err == nil {
		t.Fatal("expected error for request without roles")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleDoctor, RoleReceptionist} {
		if !ValidRole(role) {
			t.Errorf("expected %s to be valid", role)
		}
	}
	if ValidRole("janitor") {
		t.Error("expected janitor to be invalid")
	}
}
