package handlers

import (
	"log"

	"agusstore/internal/backend"
	"agusstore/internal/token"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler proxies credentials to the backend auth endpoints and manages
// the session cookie. No password ever stays in this process.
type AuthHandler struct {
	api          backend.AuthAPI
	validate     *validator.Validate
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie should be true in
// production so the session cookie is HTTPS-only.
func NewAuthHandler(api backend.AuthAPI, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		api:          api,
		validate:     validator.New(),
		secureCookie: secureCookie,
	}
}

// RegisterRoutes registers the public auth routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.HandleLogin)
	router.Post("/register", h.HandleRegister)
	router.Post("/logout", h.HandleLogout)
	router.Get("/login", h.HandleLoginPage)
	router.Get("/unauthorized", h.HandleUnauthorizedPage)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleLogin authenticates against the backend and sets the session
// cookie with the issued bearer token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	tok, user, err := h.api.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Email, err)
		return respondError(c, err, "Authentication failed")
	}

	token.Set(c, tok, h.secureCookie)
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister forwards a new account registration to the backend.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.api.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		log.Printf("Registration failed for %s: %v", req.Email, err)
		return respondError(c, err, "Could not register user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	token.Clear(c)
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// HandleLoginPage is the landing target for gate redirects.
func (h *AuthHandler) HandleLoginPage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Silakan login untuk melanjutkan",
	})
}

// HandleUnauthorizedPage is the landing target for admin-gate redirects.
func (h *AuthHandler) HandleUnauthorizedPage(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"message": "Anda tidak memiliki akses ke halaman ini",
	})
}
