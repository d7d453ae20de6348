package handlers

import (
	"errors"

	"agusstore/internal/backend"
	"agusstore/internal/middleware"
	"agusstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// session pulls the token and user id the auth middleware stashed in the
// request context.
func session(c *fiber.Ctx) (tok string, userID string) {
	tok, _ = c.Locals(middleware.LocalToken).(string)
	userID, _ = c.Locals(middleware.LocalUserID).(string)
	return tok, userID
}

// respondError maps service-layer failures onto HTTP responses. Backend
// rejections keep their status and verbatim message; precondition and
// in-flight failures are the caller's bug or impatience, not the backend's.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, backend.ErrNoToken) {
		return c.Redirect("/login", fiber.StatusFound)
	}
	if errors.Is(err, services.ErrPrecondition) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fallback,
			"error":   err.Error(),
		})
	}
	if errors.Is(err, services.ErrStepInFlight) || errors.Is(err, services.ErrItemBusy) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": fallback,
			"error":   err.Error(),
		})
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(fiber.Map{
			"message": fallback,
			"error":   apiErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
		"error":   err.Error(),
	})
}

// respondValidationError renders field-level validation failures the same
// way across all forms.
func respondValidationError(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = "Field '" + e.Field() + "' failed on the '" + e.Tag() + "' tag"
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
