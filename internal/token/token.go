// Package token reads and writes the session cookie and decodes its JWT
// payload. Decoding is unverified (base64 of the middle segment only): it is
// a UX convenience for showing the user's name and gating navigation. Every
// real authorization decision is re-validated by the backend API, which
// receives the bearer token on each request.
package token

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
)

// CookieName is the session cookie holding the bearer token.
const CookieName = "token"

// MaxAge is the session cookie lifetime (7 days), matching the backend's
// token expiry window.
const MaxAge = 7 * 24 * time.Hour

// Claims is the decoded token payload the frontend cares about.
type Claims struct {
	UserID    string
	Role      string
	ExpiresAt int64
}

// Expired reports whether the claims are past their expiry. A missing exp
// claim counts as expired, so a stripped-down token can never pass a gate.
func (c *Claims) Expired() bool {
	return c.ExpiresAt == 0 || c.ExpiresAt < time.Now().Unix()
}

// FromRequest returns the bearer token from the session cookie. A missing
// cookie means "not authenticated"; callers must treat the false return as
// absence, never as an error.
func FromRequest(c *fiber.Ctx) (string, bool) {
	v := c.Cookies(CookieName)
	if v == "" {
		return "", false
	}
	return v, true
}

// Set writes the session cookie. HTTP-only and SameSite=Strict always;
// Secure only in production so local development over plain HTTP works.
func Set(c *fiber.Ctx, tokenString string, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(MaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// Clear deletes the session cookie by setting a negative max-age.
func Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// Decode extracts the payload claims without verifying the signature.
func Decode(tokenString string) (*Claims, error) {
	parsed, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to decode token payload: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type in token")
	}

	claims := &Claims{}
	if id, ok := mapClaims["id"].(string); ok {
		claims.UserID = id
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}
	// JSON numbers decode as float64.
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = int64(exp)
	}
	return claims, nil
}

// IsExpired classifies a token. Any decode failure counts as expired, so a
// malformed token can never pass the gate.
func IsExpired(tokenString string) bool {
	claims, err := Decode(tokenString)
	if err != nil {
		return true
	}
	return claims.Expired()
}
