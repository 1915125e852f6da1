package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ecommerce-service/internal/auth"
	"github.com/spec-kit/ecommerce-service/internal/config"
	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/repository"
)

// Authentication failures surfaced to the login handler. Bad password and
// unknown user collapse into ErrInvalidCredentials on the wire so the
// endpoint does not leak which usernames exist.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrUsernameTaken      = errors.New("username already registered")
)

// AuthService coordinates registration and the login handshake. Stored
// credentials are consulted exactly once per login; every later request is
// judged from its token alone.
type AuthService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	RoleRepo repository.RoleRepository
}

// NewAuthService builds the service. Fails when the signing secret is empty.
func NewAuthService(cfg config.Config, deps AuthDependencies) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		tokenMgr:   tokenMgr,
		bcryptCost: cfg.Auth.BcryptCost,
	}, nil
}

// LoadPrincipal bridges a username to its persisted credentials and roles.
// Used only during the login handshake, never on the per-request path.
func (s *AuthService) LoadPrincipal(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err == pgx.ErrNoRows {
		return nil, ErrPrincipalNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the password and issues a signed bearer token
// carrying the user's normalized authorities.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.LoadPrincipal(ctx, username)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokenMgr.Issue(user.Username, auth.GrantedAuthorities(user.Roles), time.Now())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Register creates a new user account with the default user role.
func (s *AuthService) Register(ctx context.Context, username, firstName, lastName, password string) (*domain.User, error) {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Roles:        []domain.Role{{Name: auth.UserRole}},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateRole registers a new role name.
func (s *AuthService) CreateRole(ctx context.Context, name, description string) (*domain.Role, error) {
	role := &domain.Role{Name: name, Description: description}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
