package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// TokenManager signs and verifies bearer credentials. The secret is
// process-wide, loaded once at startup, and never rotated at runtime.
type TokenManager struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{Secret: []byte(secret), TTL: ttl}
}

// Issue signs the given identity claim with HS256 and a fixed absolute
// expiry. Claim fields are carried through verbatim; only iat and exp
// are set here. There is no refresh and no revocation: a token stays
// valid for its full lifetime regardless of later account changes.
func (m *TokenManager) Issue(identity map[string]any) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.TTL)
	claims := jwt.MapClaims{}
	for k, v := range identity {
		claims[k] = v
	}
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(exp)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	return s, exp, err
}

// Verify checks signature and expiry and returns the decoded claim set.
// Every failure maps to ErrTokenExpired or ErrTokenInvalid; callers never
// see library internals.
func (m *TokenManager) Verify(tokenStr string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ClaimEmail extracts the identity email from a verified claim set.
func ClaimEmail(claims jwt.MapClaims) string {
	if v, ok := claims["email"].(string); ok {
		return v
	}
	return ""
}
