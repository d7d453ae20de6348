package handlers

import (
	"log"

	"agusstore/internal/backend"
	"agusstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler serves the cart page and its mutations. Every request builds
// a fresh cart mirror from the backend, applies the optimistic mutation
// through the cart service, and returns the resulting state.
type CartHandler struct {
	api backend.CartAPI
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(api backend.CartAPI) *CartHandler {
	return &CartHandler{api: api}
}

// RegisterRoutes registers the cart routes on an auth-gated group.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:id", h.HandleDeleteItem)
}

func (h *CartHandler) cartFor(c *fiber.Ctx) (*services.CartService, error) {
	tok, userID := session(c)
	svc := services.NewCartService(h.api, tok, userID)
	if err := svc.Fetch(c.Context()); err != nil {
		return nil, err
	}
	return svc, nil
}

func cartResponse(svc *services.CartService) fiber.Map {
	return fiber.Map{
		"items":    svc.Items(),
		"subtotal": svc.Subtotal(),
	}
}

// HandleGetCart loads the user's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	svc, err := h.cartFor(c)
	if err != nil {
		log.Printf("Error loading cart: %v", err)
		return respondError(c, err, "Could not retrieve cart")
	}
	return c.JSON(cartResponse(svc))
}

// AddItemRequest represents the request body for adding a cart item.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// HandleAddItem puts a product into the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "productId is required",
		})
	}

	svc, err := h.cartFor(c)
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	if err := svc.AddItem(c.Context(), req.ProductID, req.Quantity); err != nil {
		log.Printf("Error adding cart item: %v", err)
		return respondError(c, err, "Could not add item to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(cartResponse(svc))
}

// UpdateQuantityRequest carries the direction of a quantity change.
type UpdateQuantityRequest struct {
	Action string `json:"action"` // "increase" or "decrease"
}

// HandleUpdateQuantity applies a +1/-1 change. A decrement from quantity 1
// removes the item instead.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	itemID := c.Params("id")
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Action != services.QuantityIncrease && req.Action != services.QuantityDecrease {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "action must be 'increase' or 'decrease'",
		})
	}

	svc, err := h.cartFor(c)
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	if err := svc.UpdateQuantity(c.Context(), itemID, req.Action); err != nil {
		log.Printf("Error updating cart item %s: %v", itemID, err)
		return respondError(c, err, "Could not update cart item")
	}
	return c.JSON(cartResponse(svc))
}

// HandleDeleteItem removes a cart item.
func (h *CartHandler) HandleDeleteItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	svc, err := h.cartFor(c)
	if err != nil {
		return respondError(c, err, "Could not retrieve cart")
	}
	if err := svc.DeleteItem(c.Context(), itemID); err != nil {
		log.Printf("Error deleting cart item %s: %v", itemID, err)
		return respondError(c, err, "Could not delete cart item")
	}
	return c.JSON(cartResponse(svc))
}
