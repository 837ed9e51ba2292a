package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret       = errors.New("token verification is not configured")
	ErrMissingSubject = errors.New("token has no subject")
)

// TokenVerifier resolves HS256 bearer tokens to a subject. It backs the local
// server, where no API Gateway authorizer sits in front of the handler.
type TokenVerifier struct {
	secret []byte
	issuer string
}

// NewTokenVerifier creates a verifier. An empty issuer skips the issuer check.
func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// Subject validates the token and returns its `sub` claim
func (v *TokenVerifier) Subject(tokenString string) (string, error) {
	if len(v.secret) == 0 {
		return "", ErrNoSecret
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}

// Issue signs a token for subject valid for ttl. Used by local tooling and tests.
func (v *TokenVerifier) Issue(subject string, ttl time.Duration) (string, error) {
	if len(v.secret) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    v.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
