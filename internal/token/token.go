// Package token issues and verifies signed bearer tokens carrying identity claims.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/akuzmin/notehub/internal/errs"
)

// Claims are the identity facts carried by a verified token.
type Claims struct {
	UserID   uuid.UUID
	FullName string
}

type jwtClaims struct {
	FullName string `json:"name"`
	jwt.RegisteredClaims
}

// Issuer creates and validates HS256 tokens with a fixed validity window.
// The signing key and TTL are process-wide configuration, immutable after startup.
type Issuer struct {
	signKey []byte
	ttl     time.Duration
}

// NewIssuer constructs an Issuer with the given signing key and token TTL.
func NewIssuer(signKey []byte, ttl time.Duration) *Issuer {
	return &Issuer{signKey: signKey, ttl: ttl}
}

// TTL returns the configured validity window.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue creates a signed token embedding the identity claims and an absolute expiry.
func (i *Issuer) Issue(userID uuid.UUID, fullName string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(i.ttl)
	cl := jwtClaims{
		FullName: fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	signed, err := tok.SignedString(i.signKey)
	return signed, exp, err
}

// Verify validates signature and expiry and returns the embedded claims.
// Expired-but-well-signed tokens fail with ErrTokenExpired, everything else
// with ErrTokenInvalid.
func (i *Issuer) Verify(raw string) (Claims, error) {
	var cl jwtClaims
	_, err := jwt.ParseWithClaims(raw, &cl, func(*jwt.Token) (any, error) {
		return i.signKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, errs.ErrTokenExpired
		}
		return Claims{}, errs.ErrTokenInvalid
	}
	userID, err := uuid.FromString(cl.Subject)
	if err != nil {
		return Claims{}, errs.ErrTokenInvalid
	}
	return Claims{UserID: userID, FullName: cl.FullName}, nil
}
