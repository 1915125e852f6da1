package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ecommerce-service/internal/api/dto"
	"github.com/spec-kit/ecommerce-service/internal/domain"
	"github.com/spec-kit/ecommerce-service/internal/service"
	apperrors "github.com/spec-kit/ecommerce-service/pkg/util"
)

// AuthHandler manages login, registration and role endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Authenticate POST /authenticate.
func (h *AuthHandler) Authenticate(c *fiber.Ctx) error {
	var req dto.AuthenticateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, err := h.service.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("invalid username or password")
		}
		return err
	}
	return c.JSON(dto.AuthenticateResponse{
		User:  userResponse(user),
		Token: token,
	})
}

// Register POST /registerNewUser.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Context(), req.Username, req.FirstName, req.LastName, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			return apperrors.NewConflict("username already taken", nil)
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

// CreateRole POST /createNewRole.
func (h *AuthHandler) CreateRole(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	role, err := h.service.CreateRole(c.Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"roleName":        role.Name,
		"roleDescription": role.Description,
	})
}

func userResponse(user *domain.User) dto.UserResponse {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}
	return dto.UserResponse{
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     roles,
	}
}
