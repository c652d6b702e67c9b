package authservice

import (
	"errors"
	"time"
)

const (
	// CredentialTTL is the absolute lifetime of a credential, measured
	// from issuance. Expiry is not sliding.
	CredentialTTL = 24 * time.Hour

	ModeSession = "session"
	ModeToken   = "token"
)

var (
	ErrInvalidCredentials = errors.New("invalid authentication credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Identity is the authenticated admin. Exactly one exists per deployment.
type Identity struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Gate issues, verifies, and revokes the admin credential. The credential
// string travels in a cookie; its shape depends on the implementation
// (opaque session id or self-verifying signed token).
type Gate interface {
	Login(username, password, ip string) (string, error)
	Verify(credential string) (*Identity, bool)
	Logout(credential string)
}

// Config is the out-of-band admin identity, read once at process start.
// Secret is either a bcrypt hash or, for backward compatibility, the raw
// password.
type Config struct {
	Username   string
	Secret     string
	SigningKey []byte
	Mode       string
}
