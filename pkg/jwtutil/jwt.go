package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSigningKey = errors.New("jwt signing key not provided")
	ErrInvalidToken      = errors.New("invalid token")
)

type Config struct {
	SigningKey string
	TTL        time.Duration
	Issuer     string
}

// Claims carries the account identity. Subject mirrors Email.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type JWTUtil struct {
	config Config
	now    func() time.Time
}

func New(config Config) (*JWTUtil, error) {
	if config.SigningKey == "" {
		return nil, ErrMissingSigningKey
	}
	if config.TTL <= 0 {
		config.TTL = 24 * time.Hour
	}
	return &JWTUtil{config: config, now: time.Now}, nil
}

// GenerateToken signs an HS256 token for the account and returns it with its expiry.
func (j *JWTUtil) GenerateToken(email, role string) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.config.TTL)

	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    j.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.config.SigningKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (j *JWTUtil) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
