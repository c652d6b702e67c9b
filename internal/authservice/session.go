package authservice

import (
	"crypto/rand"
	"encoding/base32"

	"github.com/velvetkeys/inkpost/internal/common"
)

// sessionGate keeps credential state server side: an opaque random id in
// the cookie, keyed to the identity in the cache with a 24 hour absolute
// TTL. Logout revokes immediately.
type sessionGate struct {
	gate
	sessions *common.Cache
}

func newSessionID() (string, error) {
	randomBytes := make([]byte, 16)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes), nil
}

func (g *sessionGate) Login(username, password, ip string) (string, error) {
	if err := g.authenticate(username, password, ip); err != nil {
		return "", err
	}

	id, err := newSessionID()
	if err != nil {
		return "", err
	}

	g.sessions.Set(common.CacheKeySession(id), Identity{Username: username, IsAdmin: true}, CredentialTTL)

	return id, nil
}

func (g *sessionGate) Verify(credential string) (*Identity, bool) {
	if credential == "" {
		return nil, false
	}

	value, ok := g.sessions.Get(common.CacheKeySession(credential))
	if !ok {
		return nil, false
	}

	identity, ok := value.(Identity)
	if !ok {
		return nil, false
	}

	return &identity, true
}

func (g *sessionGate) Logout(credential string) {
	if credential == "" {
		return
	}
	g.sessions.Delete(common.CacheKeySession(credential))
}
