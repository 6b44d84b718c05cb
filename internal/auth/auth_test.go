package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgramapp/foodgram-server/internal/domain"
)

// fastParams keeps hashing quick in tests.
var fastParams = PasswordParams{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPasswordWithParams("s3cret-pass", fastParams)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret-pass"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPasswordWithParams("same", fastParams)
	require.NoError(t, err)
	b, err := HashPasswordWithParams("same", fastParams)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_Rejects(t *testing.T) {
	_, err := HashPasswordWithParams("", fastParams)
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = HashPasswordWithParams(strings.Repeat("x", MaxPasswordLength+1), fastParams)
	assert.Error(t, err)
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	key, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key, keyLength)

	info, err := os.Stat(filepath.Join(dir, KeyFilename))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key, again, "key must be stable across restarts")
}

func TestLoadOrGenerateKey_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyFilename), []byte("abc"), 0o600))

	_, err := LoadOrGenerateKey(dir)
	assert.Error(t, err)
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	key := make([]byte, keyLength)
	for i := range key {
		key[i] = byte(i)
	}
	svc, err := NewTokenService(key, time.Hour)
	require.NoError(t, err)
	return svc
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)
	user := &domain.User{ID: "usr-1", Email: "anna@example.com"}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "v4.local."))

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "anna@example.com", claims.Email)
	assert.Equal(t, "usr-1", claims.Subject)
	assert.NotEmpty(t, claims.TokenID)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc := newTestTokenService(t)
	token, err := svc.GenerateAccessToken(&domain.User{ID: "usr-1"})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.VerifyAccessToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	token, err := newTestTokenService(t).GenerateAccessToken(&domain.User{ID: "usr-1"})
	require.NoError(t, err)

	other, err := NewTokenService(make([]byte, keyLength), time.Hour)
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = other.VerifyAccessToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenService_BadKey(t *testing.T) {
	_, err := NewTokenService([]byte("short"), time.Hour)
	assert.Error(t, err)
}
