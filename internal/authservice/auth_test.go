package authservice

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/velvetkeys/inkpost/internal/common"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGate(t *testing.T, mode string) Gate {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r_secret!"), bcrypt.MinCost)
	require.NoError(t, err)

	gate, err := New(Config{
		Username:   "admin",
		Secret:     string(hash),
		SigningKey: []byte("test-signing-key"),
		Mode:       mode,
	}, common.NewCache(0, 0), testLogger())
	require.NoError(t, err)

	return gate
}

func TestVerifySecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r_secret!"), bcrypt.MinCost)
	require.NoError(t, err)

	testCases := []struct {
		name       string
		configured string
		supplied   string
		want       bool
	}{
		{name: "hashed match", configured: string(hash), supplied: "Sup3r_secret!", want: true},
		{name: "hashed mismatch", configured: string(hash), supplied: "wrong", want: false},
		{name: "raw match", configured: "plaintext", supplied: "plaintext", want: true},
		{name: "raw mismatch", configured: "plaintext", supplied: "other", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := verifySecret(tc.configured, tc.supplied)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestIsHashedSecret(t *testing.T) {
	assert.True(t, IsHashedSecret("$2a$12$abcdefg"))
	assert.True(t, IsHashedSecret("$2b$10$abcdefg"))
	assert.False(t, IsHashedSecret("plaintext"))
	assert.False(t, IsHashedSecret(""))
}

func TestSessionGateLifecycle(t *testing.T) {
	gate := newTestGate(t, ModeSession)

	credential, err := gate.Login("admin", "Sup3r_secret!", "1.2.3.4")
	require.NoError(t, err)
	require.NotEmpty(t, credential)

	identity, ok := gate.Verify(credential)
	require.True(t, ok)
	assert.Equal(t, "admin", identity.Username)
	assert.True(t, identity.IsAdmin)

	gate.Logout(credential)

	_, ok = gate.Verify(credential)
	assert.False(t, ok)
}

func TestLoginFailures(t *testing.T) {
	gate := newTestGate(t, ModeSession)

	_, err := gate.Login("admin", "wrong", "1.2.3.4")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown username yields the same error as a wrong password
	_, err = gate.Login("nobody", "Sup3r_secret!", "1.2.3.4")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginThrottle(t *testing.T) {
	gate := newTestGate(t, ModeSession)

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := gate.Login("admin", "wrong", "9.9.9.9")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// the sixth attempt is throttled even with the correct password
	_, err := gate.Login("admin", "Sup3r_secret!", "9.9.9.9")
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	// a different address is unaffected
	_, err = gate.Login("admin", "Sup3r_secret!", "8.8.8.8")
	assert.NoError(t, err)
}

func TestTokenGateLifecycle(t *testing.T) {
	gate := newTestGate(t, ModeToken)

	credential, err := gate.Login("admin", "Sup3r_secret!", "1.2.3.4")
	require.NoError(t, err)

	identity, ok := gate.Verify(credential)
	require.True(t, ok)
	assert.Equal(t, "admin", identity.Username)

	// logout is a client-side no-op in token mode; the token stays valid
	gate.Logout(credential)
	_, ok = gate.Verify(credential)
	assert.True(t, ok)
}

func TestTokenGateRejectsGarbage(t *testing.T) {
	gate := newTestGate(t, ModeToken)

	testCases := []struct {
		name       string
		credential string
	}{
		{name: "empty", credential: ""},
		{name: "not a token", credential: "garbage"},
		{name: "wrong signature", credential: "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJzdWIiOiJhZG1pbiJ9.invalid"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := gate.Verify(tc.credential)
			assert.False(t, ok)
		})
	}
}

func TestTokenGateExpiry(t *testing.T) {
	g := newTestGate(t, ModeToken).(*tokenGate)

	issued := time.Now()
	g.now = func() time.Time { return issued }

	credential, err := g.Login("admin", "Sup3r_secret!", "1.2.3.4")
	require.NoError(t, err)

	_, ok := g.Verify(credential)
	require.True(t, ok)

	// just inside the 24 hour ceiling
	g.now = func() time.Time { return issued.Add(CredentialTTL - time.Minute) }
	_, ok = g.Verify(credential)
	assert.True(t, ok)

	// past the ceiling: expiry is absolute, not sliding
	g.now = func() time.Time { return issued.Add(CredentialTTL + time.Minute) }
	_, ok = g.Verify(credential)
	assert.False(t, ok)
}

func TestNewGateConfig(t *testing.T) {
	_, err := New(Config{}, common.NewCache(0, 0), testLogger())
	assert.Error(t, err)

	_, err = New(Config{Username: "admin", Secret: "pw", Mode: ModeToken}, common.NewCache(0, 0), testLogger())
	assert.Error(t, err)

	_, err = New(Config{Username: "admin", Secret: "pw", Mode: "bogus"}, common.NewCache(0, 0), testLogger())
	assert.Error(t, err)
}
