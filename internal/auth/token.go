package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// BearerPrefix is the exact literal expected in the Authorization header.
const BearerPrefix = "Bearer "

// tokenID is the opaque jti embedded in every issued token. Tokens are
// never revoked before expiry, so the id is informational only.
const tokenID = "E-commerce"

// Token decode failures, one sentinel per fault kind. A signature mismatch
// is reported as ErrMalformedToken: it cannot be distinguished
// cryptographically from tampering.
var (
	ErrExpiredToken     = errors.New("auth: token expired")
	ErrMalformedToken   = errors.New("auth: token malformed")
	ErrUnsupportedToken = errors.New("auth: token unsupported")
)

// TokenManager issues and validates signed bearer tokens. It is stateless:
// no session table, no revocation list. Authority changes made after
// issuance take effect only when the token expires.
type TokenManager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewTokenManager derives the signing key and builds a manager.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	key, err := DeriveKey([]byte(secret))
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{key: key, ttl: ttl, now: time.Now}, nil
}

// Claims describes the JWT payload.
type Claims struct {
	Authorities []string `json:"authorities,omitempty"`
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the authenticated principal. The
// authorities list is embedded exactly as supplied; the issuer does not
// re-derive roles from storage. The result carries the "Bearer " prefix for
// direct use in an Authorization header.
func (tm *TokenManager) Issue(username string, authorities []string, now time.Time) (string, error) {
	claims := &Claims{
		Authorities: authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(tm.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return BearerPrefix + signed, nil
}

// TokenPresent reports whether the Authorization header value carries a
// bearer token. A missing header, wrong scheme or empty value means "no
// token", never an error.
func TokenPresent(header string) bool {
	return strings.HasPrefix(header, BearerPrefix)
}

// Decode parses the compact JWS (without the "Bearer " prefix), verifies
// its signature and expiry, and returns the claims. Failures map onto the
// sentinel taxonomy above; there is nothing to retry.
func (tm *TokenManager) Decode(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS512 {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return tm.key, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		return nil, classifyDecodeError(err)
	}
	if !parsed.Valid {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

func classifyDecodeError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		// keyfunc rejections, e.g. a tampered algorithm header
		return ErrUnsupportedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrMalformedToken
	default:
		return ErrMalformedToken
	}
}
