package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies access and refresh tokens. The two token
// kinds use distinct secrets so a refresh token can never pass as an
// access token (and vice versa).
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (i *Issuer) IssueAccess(userID uint) (string, error) {
	return i.sign(userID, i.accessSecret, i.accessTTL)
}

func (i *Issuer) IssueRefresh(userID uint) (string, error) {
	return i.sign(userID, i.refreshSecret, i.refreshTTL)
}

func (i *Issuer) sign(userID uint, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Verify decodes an access token. It returns ErrInvalidToken for any
// bad signature, wrong algorithm, or expired token; it never panics.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	return parse(tokenStr, i.accessSecret)
}

// VerifyRefresh decodes a refresh token.
func (i *Issuer) VerifyRefresh(tokenStr string) (*Claims, error) {
	return parse(tokenStr, i.refreshSecret)
}

func parse(tokenStr string, secret []byte) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
