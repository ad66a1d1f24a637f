package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the session-token payload. Subject carries the user id,
// ID (jti) identifies the token for denylisting.
type Claims struct {
	Phone string `json:"phone"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	jwtlib.RegisteredClaims
}

// Create signs a session token for the given subject.
func Create(subject, phone, role, name, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Phone: phone,
		Role:  role,
		Name:  name,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Validate checks signature and expiry and returns the decoded claims.
// It performs no I/O.
func Validate(tokenString, secret string) (*Claims, error) {
	var claims Claims
	token, err := jwtlib.ParseWithClaims(tokenString, &claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return &claims, nil
}
