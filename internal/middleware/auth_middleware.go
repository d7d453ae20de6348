package middleware

import (
	"agusstore/internal/models"
	"agusstore/internal/token"

	"github.com/gofiber/fiber/v2"
)

// Context keys set for downstream handlers.
const (
	LocalToken  = "token"
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// RequireUser gates /user/* routes: a present, unexpired session cookie is
// required, otherwise the request is redirected to the login page. The
// token payload is decoded without signature verification; the backend API
// re-validates the bearer token on every data request, so this gate is a
// UX convenience, not a security boundary.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, ok := token.FromRequest(c)
		if !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}
		claims, err := token.Decode(tok)
		if err != nil || claims.Expired() {
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals(LocalToken, tok)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RequireAdmin gates /dashboard/* routes: same session requirements as
// RequireUser, plus the decoded role must be ADMIN. A logged-in non-admin
// lands on the unauthorized page rather than the login page.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, ok := token.FromRequest(c)
		if !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}
		claims, err := token.Decode(tok)
		if err != nil || claims.Expired() {
			return c.Redirect("/login", fiber.StatusFound)
		}
		if claims.Role != models.RoleAdmin {
			return c.Redirect("/unauthorized", fiber.StatusFound)
		}

		c.Locals(LocalToken, tok)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}
