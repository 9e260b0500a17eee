// Package auth issues and verifies the signed access/refresh tokens and
// hashes stored passwords. Token verification is stateless: it needs only
// the token and the secret of its kind.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind selects the secret and lifetime used for a token.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Claims carries the subject (user ID) in the registered "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

type keyConfig struct {
	secret   []byte
	validity time.Duration
}

// Signer mints and verifies HS256 tokens, one secret per TokenKind.
type Signer struct {
	keys map[TokenKind]keyConfig
	now  func() time.Time
}

// SignerOption customises a Signer.
type SignerOption func(*Signer)

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) { s.now = now }
}

// NewSigner builds a Signer. The two secrets must be non-empty and distinct,
// and both validities positive.
func NewSigner(accessSecret, refreshSecret []byte, accessValidity, refreshValidity time.Duration, opts ...SignerOption) (*Signer, error) {
	if len(accessSecret) == 0 || len(refreshSecret) == 0 {
		return nil, errors.New("token secrets must not be empty")
	}
	if string(accessSecret) == string(refreshSecret) {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if accessValidity <= 0 || refreshValidity <= 0 {
		return nil, errors.New("token validity must be positive")
	}

	s := &Signer{
		keys: map[TokenKind]keyConfig{
			AccessToken:  {secret: accessSecret, validity: accessValidity},
			RefreshToken: {secret: refreshSecret, validity: refreshValidity},
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IssueAccess returns a short-lived access token for subjectID.
func (s *Signer) IssueAccess(subjectID string) (string, error) {
	return s.issue(subjectID, AccessToken)
}

// IssueRefresh returns a long-lived refresh token for subjectID.
func (s *Signer) IssueRefresh(subjectID string) (string, error) {
	return s.issue(subjectID, RefreshToken)
}

func (s *Signer) issue(subjectID string, kind TokenKind) (string, error) {
	key, ok := s.keys[kind]
	if !ok {
		return "", fmt.Errorf("unknown token kind %q", kind)
	}
	if subjectID == "" {
		return "", errors.New("empty subject")
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(key.validity)),
		},
	})

	return token.SignedString(key.secret)
}

// Verify checks the token's signature against the secret of kind and its
// expiry, and returns the embedded subject.
//
// It returns common.ErrTokenExpired once the expiry has passed and
// common.ErrMalformedToken for anything else that does not validate,
// including a token sealed with the other kind's secret.
func (s *Signer) Verify(tokenString string, kind TokenKind) (string, error) {
	key, ok := s.keys[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown token kind %q", common.ErrMalformedToken, kind)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return key.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}
	if !token.Valid {
		return "", common.ErrMalformedToken
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", common.ErrMalformedToken)
	}

	return claims.Subject, nil
}
