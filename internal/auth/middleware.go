package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for one request. It is
// built from validated token claims only; storage is never consulted on
// the per-request path.
type Principal struct {
	Username    string
	Authorities []string
}

// HasAuthority reports whether the principal carries the given authority.
func (p *Principal) HasAuthority(authority string) bool {
	if p == nil {
		return false
	}
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

// Filter validates bearer tokens and populates the request-scoped security
// context. It holds no per-request state of its own; the principal lives in
// the request's Locals and is discarded with the request.
type Filter struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewFilter constructs the authorization filter.
func NewFilter(tokens *TokenManager, logger *zap.Logger) *Filter {
	return &Filter{tokens: tokens, logger: logger}
}

// Handle runs once per request, before the access policy. An absent token
// leaves the request anonymous and continues; a decode failure aborts the
// request with 403 and a short diagnostic. A signed token without
// authorities must not silently grant access, so it is degraded to
// anonymous as well.
func (f *Filter) Handle(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !TokenPresent(header) {
		f.logger.Warn("no bearer token on request", zap.String("path", c.Path()))
		c.Locals(principalKey, nil)
		return c.Next()
	}

	claims, err := f.tokens.Decode(strings.TrimPrefix(header, BearerPrefix))
	if err != nil {
		c.Locals(principalKey, nil)
		f.logger.Error("token rejected",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusForbidden).SendString(decodeFailureReason(err))
	}

	if len(claims.Authorities) == 0 {
		f.logger.Warn("token carries no authorities, treating caller as anonymous",
			zap.String("subject", claims.Subject))
		c.Locals(principalKey, nil)
		return c.Next()
	}

	c.Locals(principalKey, &Principal{
		Username:    claims.Subject,
		Authorities: claims.Authorities,
	})
	f.logger.Info("request authenticated",
		zap.String("subject", claims.Subject),
		zap.Strings("authorities", claims.Authorities),
	)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}

func decodeFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrExpiredToken):
		return "token expired"
	case errors.Is(err, ErrUnsupportedToken):
		return "token unsupported"
	default:
		return "token malformed"
	}
}
