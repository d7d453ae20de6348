package handlers

import (
	"log"

	"agusstore/internal/backend"
	"agusstore/internal/models"
	"agusstore/internal/token"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AccountHandler serves the authenticated user's own pages: order and
// shipping history, wishlist, addresses, profile, notifications, and the
// transaction result page the payment gateway redirects back to.
type AccountHandler struct {
	api      backend.AccountAPI
	checkout backend.CheckoutAPI // address book shares the checkout endpoints
	validate *validator.Validate
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(api backend.AccountAPI, checkout backend.CheckoutAPI) *AccountHandler {
	return &AccountHandler{
		api:      api,
		checkout: checkout,
		validate: validator.New(),
	}
}

// RegisterRoutes registers account routes on an auth-gated group.
func (h *AccountHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/orders", h.HandleOrderHistory)
	router.Get("/shippings", h.HandleShippingHistory)
	router.Get("/profile", h.HandleProfile)
	router.Get("/notifications", h.HandleNotifications)
	router.Get("/addresses", h.HandleListAddresses)
	router.Post("/addresses", h.HandleCreateAddress)

	wishlist := router.Group("/wishlist")
	wishlist.Get("/", h.HandleWishlist)
	wishlist.Post("/", h.HandleAddWishlistItem)
	wishlist.Delete("/:id", h.HandleRemoveWishlistItem)
}

// RegisterPublicRoutes registers the transaction result page, which the
// payment gateway redirects to with query parameters.
func (h *AccountHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/transaction/result", h.HandleTransactionResult)
}

// HandleOrderHistory lists the user's orders.
func (h *AccountHandler) HandleOrderHistory(c *fiber.Ctx) error {
	tok, userID := session(c)
	orders, err := h.api.Orders(c.Context(), tok, userID)
	if err != nil {
		log.Printf("Error loading order history: %v", err)
		return respondError(c, err, "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleShippingHistory lists the user's shipments.
func (h *AccountHandler) HandleShippingHistory(c *fiber.Ctx) error {
	tok, userID := session(c)
	shipments, err := h.api.Shipments(c.Context(), tok, userID)
	if err != nil {
		log.Printf("Error loading shipping history: %v", err)
		return respondError(c, err, "Could not retrieve shipments")
	}
	return c.JSON(shipments)
}

// HandleProfile shows the user's account record.
func (h *AccountHandler) HandleProfile(c *fiber.Ctx) error {
	tok, userID := session(c)
	user, err := h.api.Profile(c.Context(), tok, userID)
	if err != nil {
		log.Printf("Error loading profile: %v", err)
		return respondError(c, err, "Could not retrieve profile")
	}
	return c.JSON(user)
}

// HandleNotifications lists broadcast notifications.
func (h *AccountHandler) HandleNotifications(c *fiber.Ctx) error {
	tok, _ := session(c)
	ns, err := h.api.Notifications(c.Context(), tok)
	if err != nil {
		log.Printf("Error loading notifications: %v", err)
		return respondError(c, err, "Could not retrieve notifications")
	}
	return c.JSON(ns)
}

// HandleListAddresses lists the user's saved addresses.
func (h *AccountHandler) HandleListAddresses(c *fiber.Ctx) error {
	tok, userID := session(c)
	addrs, err := h.checkout.Addresses(c.Context(), tok, userID)
	if err != nil {
		log.Printf("Error loading addresses: %v", err)
		return respondError(c, err, "Could not retrieve addresses")
	}
	return c.JSON(addrs)
}

// HandleCreateAddress saves a new address from the account page.
func (h *AccountHandler) HandleCreateAddress(c *fiber.Ctx) error {
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

	tok, userID := session(c)
	addr.UserID = userID
	created, err := h.checkout.CreateAddress(c.Context(), tok, addr)
	if err != nil {
		log.Printf("Error creating address: %v", err)
		return respondError(c, err, "Could not create address")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleWishlist lists the user's saved products.
func (h *AccountHandler) HandleWishlist(c *fiber.Ctx) error {
	tok, userID := session(c)
	items, err := h.api.Wishlist(c.Context(), tok, userID)
	if err != nil {
		log.Printf("Error loading wishlist: %v", err)
		return respondError(c, err, "Could not retrieve wishlist")
	}
	return c.JSON(items)
}

// WishlistRequest represents the request body for saving a product.
type WishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// HandleAddWishlistItem saves a product to the wishlist.
func (h *AccountHandler) HandleAddWishlistItem(c *fiber.Ctx) error {
	var req WishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	tok, _ := session(c)
	item, err := h.api.AddWishlistItem(c.Context(), tok, req.ProductID)
	if err != nil {
		log.Printf("Error adding wishlist item: %v", err)
		return respondError(c, err, "Could not add to wishlist")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleRemoveWishlistItem deletes a wishlist entry.
func (h *AccountHandler) HandleRemoveWishlistItem(c *fiber.Ctx) error {
	tok, _ := session(c)
	if err := h.api.RemoveWishlistItem(c.Context(), tok, c.Params("id")); err != nil {
		log.Printf("Error removing wishlist item: %v", err)
		return respondError(c, err, "Could not remove from wishlist")
	}
	return c.JSON(fiber.Map{
		"message": "Removed from wishlist",
	})
}

// HandleTransactionResult reads the gateway's redirect query parameters
// and, when a session is present, enriches them with the backend's payment
// status snapshot. This page, not the checkout flow, observes the payment
// outcome.
func (h *AccountHandler) HandleTransactionResult(c *fiber.Ctx) error {
	orderID := c.Query("order_id")
	status := c.Query("transaction_status")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "order_id query parameter is required",
		})
	}

	result := fiber.Map{
		"orderId": orderID,
		"status":  status,
	}

	if tok, ok := token.FromRequest(c); ok && !token.IsExpired(tok) {
		tx, err := h.api.Transaction(c.Context(), tok, orderID)
		if err != nil {
			// The query parameters alone still make a usable result page.
			log.Printf("Error fetching transaction snapshot for order %s: %v", orderID, err)
		} else {
			result["transaction"] = tx
		}
	}

	return c.JSON(result)
}
