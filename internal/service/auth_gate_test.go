package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/tutoring-service/internal/auth"
	"github.com/spec-kit/tutoring-service/internal/domain"
)

// newGateApp mounts the real gate, backed by the real auth service, in front
// of probe routes so revocation, token kind and live account state are all
// exercised through the same path production requests take.
func newGateApp(svc *AuthService) *fiber.App {
	gate := auth.NewMiddleware(svc, []string{"/health/"}, zap.NewNop())

	app := fiber.New()
	app.Use(gate.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(principal)
	})
	app.Get("/admin", auth.RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func getWithToken(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestGateHonorsLogoutRevocation(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "user@example.com", "secret", domain.UserStatusActive, domain.RoleTeacher)
	svc := newTestAuthService(t, users)
	app := newGateApp(svc)

	pair, err := svc.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if resp := getWithToken(t, app, "/whoami", pair.AccessToken); resp.StatusCode != http.StatusOK {
		t.Fatalf("pre-logout status = %d, want 200", resp.StatusCode)
	}

	svc.Logout(pair.AccessToken, pair.RefreshToken)

	if resp := getWithToken(t, app, "/whoami", pair.AccessToken); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("post-logout status = %d, want 401", resp.StatusCode)
	}
}

func TestGateRejectsRefreshTokenOnProtectedRoute(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "user@example.com", "secret", domain.UserStatusActive, domain.RoleTeacher)
	svc := newTestAuthService(t, users)
	app := newGateApp(svc)

	pair, err := svc.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if resp := getWithToken(t, app, "/whoami", pair.RefreshToken); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("refresh-token status = %d, want 401", resp.StatusCode)
	}
}

func TestGateDeactivatedAccountLosesAccess(t *testing.T) {
	users := newFakeUserRepo()
	user := seedUser(t, users, "user@example.com", "secret", domain.UserStatusActive, domain.RoleTeacher)
	svc := newTestAuthService(t, users)
	app := newGateApp(svc)

	pair, err := svc.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user.Status = domain.UserStatusInactive

	if resp := getWithToken(t, app, "/whoami", pair.AccessToken); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("deactivated status = %d, want 401", resp.StatusCode)
	}
}

func TestGateResolvesLiveRolesNotTokenRoles(t *testing.T) {
	users := newFakeUserRepo()
	user := seedUser(t, users, "user@example.com", "secret", domain.UserStatusActive, domain.RoleAdmin)
	svc := newTestAuthService(t, users)
	app := newGateApp(svc)

	// Token minted while the account still held ADMIN.
	pair, err := svc.Login(context.Background(), "user@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	user.Roles = []string{domain.RoleTeacher}

	if resp := getWithToken(t, app, "/admin", pair.AccessToken); resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403 after role revocation", resp.StatusCode)
	}
}
