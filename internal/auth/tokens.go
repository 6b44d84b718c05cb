package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"

	"github.com/foodgramapp/foodgram-server/internal/domain"
)

const (
	tokenIssuer   = "foodgram-server"
	tokenAudience = "foodgram-client"
)

// ErrInvalidToken is returned for any token that fails to decrypt or
// violates a claim rule (audience, issuer, expiry).
var ErrInvalidToken = errors.New("invalid token")

// TokenService mints and verifies PASETO v4.local bearer tokens.
type TokenService struct {
	key      paseto.V4SymmetricKey
	lifetime time.Duration
	now      func() time.Time
}

// NewTokenService creates a token service from a 32-byte symmetric key.
func NewTokenService(key []byte, lifetime time.Duration) (*TokenService, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("PASETO v4 key must be %d bytes, got %d", keyLength, len(key))
	}
	if lifetime <= 0 {
		return nil, errors.New("token lifetime must be positive")
	}

	k, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("create PASETO symmetric key: %w", err)
	}

	return &TokenService{key: k, lifetime: lifetime, now: time.Now}, nil
}

// GenerateAccessToken returns an encrypted token identifying user.
func (s *TokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := s.now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(user.ID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.lifetime))
	token.SetJti(uuid.NewString())

	if err := token.Set("user_id", user.ID); err != nil {
		return "", fmt.Errorf("set user_id claim: %w", err)
	}
	if err := token.Set("email", user.Email); err != nil {
		return "", fmt.Errorf("set email claim: %w", err)
	}

	return token.V4Encrypt(s.key, nil), nil
}

// VerifyAccessToken decrypts tokenString and checks its claims.
// Every failure wraps ErrInvalidToken.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.ValidAt(s.now()))

	token, err := parser.ParseV4Local(s.key, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	var claims AccessClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("%w: parse claims: %w", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}

	return &claims, nil
}

// Lifetime returns how long minted tokens stay valid.
func (s *TokenService) Lifetime() time.Duration {
	return s.lifetime
}
