package jwtauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adk-labs/platform/internal/errs"
)

const Issuer = "adk-platform"

var (
	ErrSigningToken = errors.New("failed to sign access token")
	ErrInvalidToken = errors.New("invalid access token")
)

// UserClaims is the payload of an access token. The tenant claim binds
// the token to exactly one tenant; it is checked against the request
// tenant on every authenticated call.
type UserClaims struct {
	TenantID string `json:"tenant"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 access tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

func (s *Signer) TTL() time.Duration { return s.ttl }

// Sign mints an access token for the subject scoped to tenantID.
func (s *Signer) Sign(tenantID, subject, email, role string, now time.Time) (string, error) {
	claims := UserClaims{
		TenantID: tenantID,
		Email:    email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errs.Wrap(ErrSigningToken, err)
	}

	return signed, nil
}

// Verify parses the token, checks the signature, expiry and issuer, and
// returns the claim set. Any failure collapses into ErrInvalidToken.
func (s *Signer) Verify(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}

	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(_ *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, errs.Wrap(ErrInvalidToken, err)
	}

	return claims, nil
}
