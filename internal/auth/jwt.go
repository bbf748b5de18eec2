// Package auth issues and validates the JWT bearer tokens that gate
// the solve API: every caller is a Role-tagged principal (submitter or
// admin), not a full user account, since the service has no notion of
// profiles, sessions, or email verification.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role tags what a principal may do against the solve API.
type Role string

const (
	RoleSubmitter Role = "submitter"
	RoleAdmin     Role = "admin"
)

// Claims is the JWT payload issued for a principal.
type Claims struct {
	Subject string `json:"sub"`
	Role    Role   `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and validates HMAC-signed JWTs.
type Service struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewService builds a Service with the given signing secret and token
// lifetime; a zero ttl defaults to 24h, mirroring the access-token
// lifetime conventions this style of service typically uses.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{secret: []byte(secret), tokenTTL: ttl}
}

// Issue mints a signed token for subject/role.
func (s *Service) Issue(subject string, role Role) (token string, expiresAt int64, err error) {
	now := time.Now()
	exp := now.Add(s.tokenTTL)

	claims := Claims{
		Subject: subject,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, exp.Unix(), nil
}

// Validate parses and verifies token, returning its claims.
func (s *Service) Validate(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("auth: unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("auth: invalid token")
	}
	return claims, nil
}
