package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidShareToken = errors.New("invalid share token")

// ShareTokenIssuer mints and verifies signed tokens that grant read-only
// access to one week's report without a session. Tokens are HMAC-signed
// JWTs carrying the week's Sunday date, so no server-side state is needed
// and links keep working across restarts.
type ShareTokenIssuer struct {
	secret []byte
}

// NewShareTokenIssuer creates a share token issuer with the given secret
func NewShareTokenIssuer(secret string) *ShareTokenIssuer {
	return &ShareTokenIssuer{secret: []byte(secret)}
}

type shareClaims struct {
	WeekDate string `json:"week_date"`
	jwt.RegisteredClaims
}

// Issue creates a token granting read-only access to the week starting at
// the given Sunday date, valid for the given duration.
func (i *ShareTokenIssuer) Issue(weekDate string, validity time.Duration) (string, error) {
	now := time.Now()
	claims := shareClaims{
		WeekDate: weekDate,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "report-share",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

// Verify checks a token and returns the week date it grants access to
func (i *ShareTokenIssuer) Verify(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	claims := &shareClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidShareToken
	}
	if claims.WeekDate == "" {
		return "", ErrInvalidShareToken
	}
	return claims.WeekDate, nil
}
