package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/ecommerce-service/pkg/util"
)

func newFilterApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()
	app := fiber.New()
	filter := NewFilter(tm, zap.NewNop())
	app.Use(filter.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(principal.Username)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestFilterAbsentTokenIsAnonymous(t *testing.T) {
	tm := newTestManager(t, "test-secret", time.Hour)
	app := newFilterApp(t, tm)

	status, body := doRequest(t, app, "")
	if status != http.StatusOK || body != "anonymous" {
		t.Fatalf("absent token: status=%d body=%q, want 200 anonymous", status, body)
	}

	// a non-bearer scheme is also "no token", not an error
	status, body = doRequest(t, app, "Basic dXNlcjpwYXNz")
	if status != http.StatusOK || body != "anonymous" {
		t.Fatalf("basic auth: status=%d body=%q, want 200 anonymous", status, body)
	}
}

func TestFilterValidTokenSetsPrincipal(t *testing.T) {
	tm := newTestManager(t, "test-secret", time.Hour)
	app := newFilterApp(t, tm)

	token, err := tm.Issue("alice", []string{"ROLE_UserRole"}, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	status, body := doRequest(t, app, token)
	if status != http.StatusOK || body != "alice" {
		t.Fatalf("valid token: status=%d body=%q, want 200 alice", status, body)
	}
}

func TestFilterExpiredTokenRejected(t *testing.T) {
	tm := newTestManager(t, "test-secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	token, err := tm.Issue("alice", []string{"ROLE_UserRole"}, issued)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	app := newFilterApp(t, tm)

	status, body := doRequest(t, app, token)
	if status != http.StatusForbidden {
		t.Fatalf("expired token: status=%d, want 403", status)
	}
	if body != "token expired" {
		t.Fatalf("expired token body = %q, want %q", body, "token expired")
	}
}

func TestFilterGarbageTokenRejected(t *testing.T) {
	tm := newTestManager(t, "test-secret", time.Hour)
	app := newFilterApp(t, tm)

	status, body := doRequest(t, app, "Bearer not.a.token")
	if status != http.StatusForbidden {
		t.Fatalf("garbage token: status=%d, want 403", status)
	}
	if body != "token malformed" {
		t.Fatalf("garbage token body = %q, want %q", body, "token malformed")
	}
}

func TestFilterEmptyAuthoritiesIsAnonymous(t *testing.T) {
	tm := newTestManager(t, "test-secret", time.Hour)
	token, err := tm.Issue("alice", nil, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	app := newFilterApp(t, tm)

	status, body := doRequest(t, app, token)
	if status != http.StatusOK || body != "anonymous" {
		t.Fatalf("no-authority token: status=%d body=%q, want 200 anonymous", status, body)
	}
}

func TestFilterAndPolicyEndToEnd(t *testing.T) {
	tm := newTestManager(t, "test-secret", time.Hour)
	filter := NewFilter(tm, zap.NewNop())
	policy := NewPolicy(
		PermitMethod("GET", "/product/**"),
		Require(AdminRole, "/product/**"),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Code})
		},
	})
	app.Use(filter.Handle)
	app.Use(policy.Middleware(zap.NewNop()))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/product/:id", ok)
	app.Put("/product/:id", ok)
	app.Get("/cart", ok)

	userToken, err := tm.Issue("alice", []string{"ROLE_UserRole"}, time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	run := func(method, path, header string) int {
		req := httptest.NewRequest(method, path, nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()
		return resp.StatusCode
	}

	if got := run(http.MethodGet, "/product/7", ""); got != http.StatusOK {
		t.Errorf("anonymous GET /product/7 = %d, want 200", got)
	}
	if got := run(http.MethodGet, "/cart", ""); got != http.StatusUnauthorized {
		t.Errorf("anonymous GET /cart = %d, want 401", got)
	}
	if got := run(http.MethodGet, "/cart", userToken); got != http.StatusOK {
		t.Errorf("user GET /cart = %d, want 200", got)
	}
	if got := run(http.MethodPut, "/product/7", userToken); got != http.StatusForbidden {
		t.Errorf("user PUT /product/7 = %d, want 403", got)
	}
}
