package auth

import "errors"

// ErrEmptySigningSecret reports that no signing secret was configured.
var ErrEmptySigningSecret = errors.New("auth: signing secret is empty")

// DeriveKey produces HMAC-SHA-512 key material from the raw shared secret.
// Deterministic and side-effect free; the returned slice is a private copy.
func DeriveKey(secret []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySigningSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return key, nil
}
