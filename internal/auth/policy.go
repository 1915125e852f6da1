package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/ecommerce-service/pkg/util"
)

// Decision is the outcome of evaluating the access policy for one request.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Rule binds a path pattern (and optionally a method) to an access
// requirement. Patterns support an exact path, "*" for a single segment,
// and a trailing "/**" for the whole subtree including the bare parent.
type Rule struct {
	Pattern string
	Method  string // empty matches any method
	Public  bool
	Role    string // required authority; empty with Public=false means any authenticated caller
}

// Permit declares a public rule for any method.
func Permit(pattern string) Rule {
	return Rule{Pattern: pattern, Public: true}
}

// PermitMethod declares a public rule for one HTTP method.
func PermitMethod(method, pattern string) Rule {
	return Rule{Pattern: pattern, Method: method, Public: true}
}

// Require declares a rule granting access only to callers holding the role.
// The stored role name is normalized with the ROLE_ prefix.
func Require(role, pattern string) Rule {
	return Rule{Pattern: pattern, Role: NormalizeRole(role)}
}

// Authenticated declares a rule admitting any authenticated caller.
func Authenticated(pattern string) Rule {
	return Rule{Pattern: pattern}
}

// Policy is an ordered rule table evaluated top-down, first match wins.
// Rules for a specific sub-path MUST be declared before the general rule
// for the parent path or the general rule will shadow them: matching is by
// declaration order, not by longest prefix or specificity. The table is
// immutable after startup and safe for concurrent reads.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from rules in declaration order.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Authorize evaluates the table for a request. An unmatched path falls
// through to the catch-all: any authenticated caller is allowed, anonymous
// callers are denied.
func (p *Policy) Authorize(path, method string, principal *Principal) Decision {
	for _, rule := range p.rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if !matchPattern(rule.Pattern, path) {
			continue
		}
		return rule.decide(principal)
	}
	if principal == nil {
		return DenyUnauthenticated
	}
	return Allow
}

func (r Rule) decide(principal *Principal) Decision {
	if r.Public {
		return Allow
	}
	if principal == nil {
		return DenyUnauthenticated
	}
	if r.Role == "" || principal.HasAuthority(r.Role) {
		return Allow
	}
	return DenyForbidden
}

// Middleware enforces the policy once per request, after the authorization
// filter has populated (or cleared) the security context.
func (p *Policy) Middleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		switch p.Authorize(c.Path(), c.Method(), principal) {
		case Allow:
			return c.Next()
		case DenyUnauthenticated:
			logger.Warn("anonymous caller denied",
				zap.String("path", c.Path()), zap.String("method", c.Method()))
			return apperrors.NewUnauthorized("authentication required")
		default:
			logger.Warn("caller lacks required role",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("subject", principal.Username),
			)
			return apperrors.NewForbidden("insufficient role")
		}
	}
}

// matchPattern matches a request path against a rule pattern. "/a/**"
// matches "/a" and everything below it; "*" matches exactly one segment.
func matchPattern(pattern, path string) bool {
	if pattern == path {
		return true
	}

	subtree := false
	if strings.HasSuffix(pattern, "/**") {
		subtree = true
		pattern = strings.TrimSuffix(pattern, "/**")
		if pattern == "" {
			return true
		}
	}

	patSegs := splitPath(pattern)
	pathSegs := splitPath(path)

	if subtree {
		if len(pathSegs) < len(patSegs) {
			return false
		}
		pathSegs = pathSegs[:len(patSegs)]
	} else if len(pathSegs) != len(patSegs) {
		return false
	}

	for i, seg := range patSegs {
		if seg == "*" {
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
