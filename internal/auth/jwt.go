package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the only role tokens are issued for.
const RoleAdmin = "admin"

// Tokens signs and validates admin JWTs ("passports").
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

// NewTokens creates a signer. The secret comes from JWT_SECRET.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// GenerateToken creates a new JWT for the given admin username.
func (t *Tokens) GenerateToken(subject string) (string, error) {
	// 1. Create the claims: who the token is for, what it allows, and when it expires.
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": RoleAdmin,
		"exp":  now.Add(t.ttl).Unix(),
		"iat":  now.Unix(),
	}

	// 2. Sign it with HS256 and our secret key.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateToken parses and validates a token string.
// It returns the subject if the token is valid.
func (t *Tokens) ValidateToken(tokenString string) (string, error) {
	// 1. Parse the token, insisting on the HMAC family we sign with.
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		return "", err // Expired, malformed or badly signed
	}

	// 2. Check the claims.
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if role, _ := claims["role"].(string); role != RoleAdmin {
		return "", errors.New("invalid role claim")
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", errors.New("invalid subject claim")
	}
	return subject, nil
}
