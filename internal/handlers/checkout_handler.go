package handlers

import (
	"log"

	"agusstore/internal/backend"
	"agusstore/internal/models"
	"agusstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler drives the multi-step checkout flow over HTTP. The flow
// state lives in the checkout manager, one session per user; each route
// triggers one step operation and returns the refreshed session state.
type CheckoutHandler struct {
	manager  *services.CheckoutManager
	cartAPI  backend.CartAPI
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(manager *services.CheckoutManager, cartAPI backend.CartAPI) *CheckoutHandler {
	return &CheckoutHandler{
		manager:  manager,
		cartAPI:  cartAPI,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes on an auth-gated group.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	co := router.Group("/checkout")
	co.Get("/", h.HandleGetCheckout)
	co.Post("/address", h.HandleSelectAddress)
	co.Post("/address/new", h.HandleCreateAddress)
	co.Post("/discount", h.HandleValidateDiscount)
	co.Post("/shipping", h.HandleSelectShipping)
	co.Post("/order", h.HandleCreateOrder)
	co.Post("/shipment", h.HandleCreateShipment)
	co.Post("/payment", h.HandleCreatePayment)
}

func (h *CheckoutHandler) sessionFor(c *fiber.Ctx) *services.CheckoutService {
	tok, userID := session(c)
	return h.manager.Session(tok, userID)
}

// HandleGetCheckout is the flow entry: it loads addresses and shipping
// options, seeds the session with the current cart, and renders the state.
func (h *CheckoutHandler) HandleGetCheckout(c *fiber.Ctx) error {
	tok, userID := session(c)
	sess := h.sessionFor(c)

	if err := sess.LoadAddresses(c.Context()); err != nil {
		log.Printf("Error loading addresses for checkout: %v", err)
		return respondError(c, err, "Could not load addresses")
	}
	if err := sess.LoadShippingOptions(c.Context()); err != nil {
		log.Printf("Error loading shipping options: %v", err)
		return respondError(c, err, "Could not load shipping options")
	}

	items, err := h.cartAPI.CartItems(c.Context(), tok, userID)
	if err != nil {
		log.Printf("Error loading cart for checkout: %v", err)
		return respondError(c, err, "Could not load cart")
	}
	sess.SetCartItems(items)

	return c.JSON(sess.State())
}

// SelectAddressRequest picks one saved address.
type SelectAddressRequest struct {
	AddressID string `json:"addressId" validate:"required"`
}

// HandleSelectAddress records the chosen address (step 1 -> 2).
func (h *CheckoutHandler) HandleSelectAddress(c *fiber.Ctx) error {
	var req SelectAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	sess := h.sessionFor(c)
	if err := sess.SelectAddress(req.AddressID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not select address",
			"error":   err.Error(),
		})
	}
	return c.JSON(sess.State())
}

// HandleCreateAddress creates and immediately selects a new address
// mid-flow without restarting the step sequence.
func (h *CheckoutHandler) HandleCreateAddress(c *fiber.Ctx) error {
	var addr models.Address
	if err := c.BodyParser(&addr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(addr); err != nil {
		return respondValidationError(c, err)
	}

	sess := h.sessionFor(c)
	created, err := sess.CreateNewAddress(c.Context(), addr)
	if err != nil {
		log.Printf("Error creating address: %v", err)
		return respondError(c, err, "Could not create address")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"address": created,
		"state":   sess.State(),
	})
}

// DiscountRequest carries the discount code to validate. An empty code is
// allowed and simply clears the discount.
type DiscountRequest struct {
	Code string `json:"code"`
}

// HandleValidateDiscount resolves the code against the current subtotal.
func (h *CheckoutHandler) HandleValidateDiscount(c *fiber.Ctx) error {
	var req DiscountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	sess := h.sessionFor(c)
	if err := sess.ValidateDiscountCode(c.Context(), req.Code); err != nil {
		log.Printf("Discount validation failed for code %q: %v", req.Code, err)
		return respondError(c, err, "Kode diskon tidak dapat digunakan")
	}
	return c.JSON(sess.State())
}

// SelectShippingRequest picks a courier/service pair.
type SelectShippingRequest struct {
	Courier string `json:"courier" validate:"required"`
	Service string `json:"service"`
}

// HandleSelectShipping records the courier for the shipment step.
func (h *CheckoutHandler) HandleSelectShipping(c *fiber.Ctx) error {
	var req SelectShippingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	sess := h.sessionFor(c)
	sess.SelectShipping(req.Courier, req.Service)
	return c.JSON(sess.State())
}

// HandleCreateOrder submits the order (step -> 3).
func (h *CheckoutHandler) HandleCreateOrder(c *fiber.Ctx) error {
	sess := h.sessionFor(c)
	order, err := sess.CreateOrder(c.Context())
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return respondError(c, err, "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"order": order,
		"state": sess.State(),
	})
}

// HandleCreateShipment creates the shipment (step -> 4).
func (h *CheckoutHandler) HandleCreateShipment(c *fiber.Ctx) error {
	sess := h.sessionFor(c)
	shipment, err := sess.CreateShipment(c.Context())
	if err != nil {
		log.Printf("Error creating shipment: %v", err)
		return respondError(c, err, "Could not create shipment")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"shipment": shipment,
		"state":    sess.State(),
	})
}

// HandleCreatePayment opens the payment session and issues a full redirect
// to the external gateway. The flow's lifecycle ends here; the payment
// result is observed later on the transaction result page.
func (h *CheckoutHandler) HandleCreatePayment(c *fiber.Ctx) error {
	_, userID := session(c)
	sess := h.sessionFor(c)

	redirectURL, err := sess.CreatePayment(c.Context())
	if err != nil {
		log.Printf("Error creating payment session: %v", err)
		return respondError(c, err, "Could not create payment session")
	}

	// The browser leaves for the gateway; the next checkout starts fresh.
	h.manager.Reset(userID)
	return c.Redirect(redirectURL, fiber.StatusFound)
}
