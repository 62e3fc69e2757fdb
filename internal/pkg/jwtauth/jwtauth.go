package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/whiskeys_catalog/internal/whiskeys/domain/models"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.StandardClaims
	UserID   int64  `json:"user_id"` //nolint:tagliatelle
	Username string `json:"username"`
}

// GetToken signs a token for u. The returned claims carry the token id
// the session store is keyed by.
func GetToken(u models.User, ttl time.Duration, secret string) (string, Claims, error) {
	now := time.Now()

	claims := Claims{
		StandardClaims: jwt.StandardClaims{ //nolint:exhaustruct
			Id:        uuid.NewString(),
			Subject:   u.Username,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		UserID:   u.ID,
		Username: u.Username,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", Claims{}, fmt.Errorf("signed string error: %w", err)
	}

	return token, claims, nil
}

func ValidateToken(tokenString, secret string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"]) //nolint:goerr113
		}

		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Id == "" {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
