package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig configures the token manager.
type TokenConfig struct {
	// Secret is the HS256 signing secret. Required.
	Secret string

	// Issuer is stamped on issued tokens and enforced on validation
	// when non-empty.
	Issuer string

	// TTL bounds the lifetime of issued tokens.
	// Default: 1 hour.
	TTL time.Duration
}

// Claims are the validated contents of an access token.
type Claims struct {
	Subject   string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenManager issues and validates HS256 access tokens.
type TokenManager struct {
	config TokenConfig
	now    func() time.Time
}

// NewTokenManager creates a token manager.
// Returns ErrMissingSecret if no signing secret is configured.
func NewTokenManager(config TokenConfig) (*TokenManager, error) {
	if config.Secret == "" {
		return nil, ErrMissingSecret
	}
	if config.TTL <= 0 {
		config.TTL = time.Hour
	}

	return &TokenManager{
		config: config,
		now:    time.Now,
	}, nil
}

// Issue creates a signed token for the given subject and role.
func (m *TokenManager) Issue(subject, role string) (string, error) {
	now := m.now()

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(m.config.TTL).Unix(),
	}
	if m.config.Issuer != "" {
		claims["iss"] = m.config.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.config.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning its claims.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, func(_ *jwt.Token) (any, error) {
		return []byte(m.config.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if m.config.Issuer != "" {
		if iss, _ := mapClaims["iss"].(string); iss != m.config.Issuer {
			return nil, ErrInvalidToken
		}
	}

	claims := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return claims, nil
}
