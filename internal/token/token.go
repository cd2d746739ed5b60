/**
 * @description
 * Credential token issuance and verification. Tokens are stateless HS256 JWTs
 * binding an account id, email, and role for a fixed seven-day window. Validity
 * is a pure function of the token bytes and the signing secret; no store lookup
 * happens at verification time, so a token stays valid for its full window even
 * if the account is later suspended or frozen.
 *
 * @dependencies
 * - github.com/golang-jwt/jwt/v5: JWT signing and parsing.
 */

package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the fixed credential lifetime.
const TTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for any absent, malformed, expired, or
// badly-signed token. Callers must not distinguish the causes.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the assertions carried by a credential token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies credential tokens with a shared secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer creates an Issuer for the given signing secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), now: time.Now}
}

// NewIssuerAt is NewIssuer with an injectable clock, used by tests to pin the
// expiry boundary.
func NewIssuerAt(secret string, now func() time.Time) *Issuer {
	return &Issuer{secret: []byte(secret), now: now}
}

// Issue mints a token bound to the given identity, expiring TTL from now.
func (i *Issuer) Issue(userID, email, role string) (string, error) {
	issuedAt := i.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses and validates a token, returning its claims. All failure modes
// collapse into ErrInvalidToken.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// DerivedRole resolves the effective role of a set of claims. Tokens minted by
// this service carry an explicit role claim; tokens from older deployments do
// not, and for those the role falls back to the email-based derivation used at
// registration time.
func DerivedRole(c *Claims, roleForEmail func(string) string) string {
	if c.Role != "" {
		return c.Role
	}
	return roleForEmail(c.Email)
}
