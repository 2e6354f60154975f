package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var ErrMissingBearerToken = fiber.Map{"msg": "Missing Authorization Header"}
var ErrInvalidBearerToken = fiber.Map{"msg": "Invalid bearer token provided."}

var errInvalidToken = errors.New("invalid token")

const identityLocal = "identity"

// TokenIssuer signs and verifies HS256 identity tokens. The identity (the
// user's email) travels in the subject claim.
type TokenIssuer struct {
	secret  []byte
	timeout time.Duration
}

func NewTokenIssuer(jwtConfig JwtConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:  []byte(jwtConfig.Secret),
		timeout: time.Duration(jwtConfig.Timeout) * time.Second,
	}
}

func (t *TokenIssuer) IssueToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.timeout)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) ValidateToken(providedToken string) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(providedToken, &claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return "", errInvalidToken
	}

	if !token.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return "", errInvalidToken
	}

	return claims.Subject, nil
}

// JwtRequired rejects the request before any handler runs unless it carries a
// valid bearer token. The identity is stored in the request locals.
func (t *TokenIssuer) JwtRequired(c *fiber.Ctx) error {
	authorizationHeader := c.Get("Authorization")

	if !strings.HasPrefix(authorizationHeader, "Bearer ") {
		return c.Status(http.StatusUnauthorized).
			JSON(ErrMissingBearerToken)
	}

	authorizationHeader = strings.TrimPrefix(authorizationHeader, "Bearer ")
	email, err := t.ValidateToken(authorizationHeader)

	if err != nil {
		return c.Status(http.StatusUnauthorized).
			JSON(ErrInvalidBearerToken)
	}

	c.Locals(identityLocal, email)
	return c.Next()
}

func identity(c *fiber.Ctx) string {
	email, _ := c.Locals(identityLocal).(string)
	return email
}
