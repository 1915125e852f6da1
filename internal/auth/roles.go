package auth

import (
	"strings"

	"github.com/spec-kit/ecommerce-service/internal/domain"
)

// RolePrefix is prepended to stored role names before they are embedded in
// a token's authorities claim.
const RolePrefix = "ROLE_"

// Well-known role names as stored in the roles table.
const (
	AdminRole = "AdminRole"
	UserRole  = "UserRole"
)

// NormalizeRole returns the authority string for a stored role name.
func NormalizeRole(name string) string {
	if strings.HasPrefix(name, RolePrefix) {
		return name
	}
	return RolePrefix + name
}

// GrantedAuthorities maps stored roles onto normalized authority strings,
// preserving order.
func GrantedAuthorities(roles []domain.Role) []string {
	authorities := make([]string, 0, len(roles))
	for _, role := range roles {
		authorities = append(authorities, NormalizeRole(role.Name))
	}
	return authorities
}
