package authservice

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/velvetkeys/inkpost/internal/common"
)

// New builds the configured credential gate. The session variant keeps
// per-credential state in the cache; the token variant is stateless.
func New(cfg Config, c *common.Cache, logger *slog.Logger) (Gate, error) {
	if cfg.Username == "" || cfg.Secret == "" {
		return nil, errors.New("admin username and password must be configured")
	}

	if !IsHashedSecret(cfg.Secret) {
		logger.Warn("admin password is not a bcrypt hash; falling back to raw string comparison, which is insecure")
	}

	base := gate{
		cfg:     cfg,
		limiter: newLoginLimiter(maxLoginAttempts, attemptWindow),
	}

	switch cfg.Mode {
	case ModeSession, "":
		return &sessionGate{gate: base, sessions: c}, nil
	case ModeToken:
		if len(cfg.SigningKey) == 0 {
			return nil, errors.New("token mode requires a signing secret")
		}
		return newTokenGate(base), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

// gate holds the credential-independent half of the contract: the single
// configured identity, the throttle, and the password check.
type gate struct {
	cfg     Config
	limiter *loginLimiter
}

// authenticate runs the throttle and the identity check. Wrong username and
// wrong password collapse to the same error so the response leaks nothing.
func (g *gate) authenticate(username, password, ip string) error {
	if !g.limiter.check(ip) {
		return ErrTooManyAttempts
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(g.cfg.Username), []byte(username)) == 1

	passwordOK, err := verifySecret(g.cfg.Secret, password)
	if err != nil {
		return err
	}

	if !usernameOK || !passwordOK {
		g.limiter.record(ip)
		return ErrInvalidCredentials
	}

	return nil
}
