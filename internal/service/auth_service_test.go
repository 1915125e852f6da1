package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spec-kit/ecommerce-service/internal/auth"
	"github.com/spec-kit/ecommerce-service/internal/config"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeRoleRepo) {
	t.Helper()
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			BcryptCost: 4,
		},
	}
	users := newFakeUserRepo()
	roles := newFakeRoleRepo()
	svc, err := NewAuthService(cfg, AuthDependencies{UserRepo: users, RoleRepo: roles})
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc, users, roles
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	_, err := NewAuthService(config.Config{}, AuthDependencies{
		UserRepo: newFakeUserRepo(),
		RoleRepo: newFakeRoleRepo(),
	})
	if !errors.Is(err, auth.ErrEmptySigningSecret) {
		t.Fatalf("error = %v, want ErrEmptySigningSecret", err)
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "Alice", "Smith", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0].Name != auth.UserRole {
		t.Fatalf("roles = %v, want default user role", user.Roles)
	}
	if user.PasswordHash == "Sup3r$ecret" {
		t.Fatal("password stored in clear")
	}

	got, token, err := svc.Authenticate(ctx, "alice", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("username = %q, want alice", got.Username)
	}
	if !strings.HasPrefix(token, auth.BearerPrefix) {
		t.Errorf("token missing bearer prefix: %q", token)
	}

	claims, err := svc.TokenManager().Decode(strings.TrimPrefix(token, auth.BearerPrefix))
	if err != nil {
		t.Fatalf("Decode issued token: %v", err)
	}
	if len(claims.Authorities) != 1 || claims.Authorities[0] != "ROLE_UserRole" {
		t.Errorf("authorities = %v, want [ROLE_UserRole]", claims.Authorities)
	}
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, _, err := svc.Authenticate(context.Background(), "nobody", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "Alice", "Smith", "Sup3r$ecret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, _, err := svc.Authenticate(ctx, "alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "Alice", "Smith", "Sup3r$ecret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, "alice", "Other", "Person", "An0ther$ecret")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("error = %v, want ErrUsernameTaken", err)
	}
}

func TestLoadPrincipalNotFound(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.LoadPrincipal(context.Background(), "ghost")
	if !errors.Is(err, ErrPrincipalNotFound) {
		t.Fatalf("error = %v, want ErrPrincipalNotFound", err)
	}
}

func TestCreateRole(t *testing.T) {
	svc, _, roles := newTestAuthService(t)

	role, err := svc.CreateRole(context.Background(), "AdminRole", "store administrator")
	if err != nil {
		t.Fatalf("CreateRole: %v", err)
	}
	if role.Name != "AdminRole" {
		t.Errorf("name = %q, want AdminRole", role.Name)
	}
	if _, ok := roles.roles["AdminRole"]; !ok {
		t.Error("role not persisted")
	}
}
