package handlers

import (
	"log"

	"agusstore/internal/backend"
	"agusstore/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler is the dashboard's form-to-API glue: categories, products,
// discounts, shipments, users, and notifications. Nothing here decides
// anything; every mutation is forwarded to the backend, which enforces
// authorization again on its side.
type AdminHandler struct {
	api      backend.AdminAPI
	catalog  backend.CatalogAPI
	validate *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(api backend.AdminAPI, catalog backend.CatalogAPI) *AdminHandler {
	return &AdminHandler{
		api:      api,
		catalog:  catalog,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the dashboard routes on an admin-gated group.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleListCategories)
	categories.Post("/", h.HandleCreateCategory)
	categories.Put("/:id", h.HandleUpdateCategory)
	categories.Delete("/:id", h.HandleDeleteCategory)

	products := router.Group("/products")
	products.Get("/", h.HandleListProducts)
	products.Post("/", h.HandleCreateProduct)
	products.Put("/:id", h.HandleUpdateProduct)
	products.Delete("/:id", h.HandleDeleteProduct)

	discounts := router.Group("/discounts")
	discounts.Get("/", h.HandleListDiscounts)
	discounts.Post("/", h.HandleCreateDiscount)
	discounts.Put("/:id", h.HandleUpdateDiscount)
	discounts.Delete("/:id", h.HandleDeleteDiscount)

	shipments := router.Group("/shipments")
	shipments.Get("/", h.HandleListShipments)
	shipments.Patch("/:id/status", h.HandleUpdateShipmentStatus)

	users := router.Group("/users")
	users.Get("/", h.HandleListUsers)
	users.Delete("/:id", h.HandleDeleteUser)

	notifications := router.Group("/notifications")
	notifications.Get("/", h.HandleListNotifications)
	notifications.Post("/", h.HandleCreateNotification)
	notifications.Delete("/:id", h.HandleDeleteNotification)
}

// --- Categories ---

func (h *AdminHandler) HandleListCategories(c *fiber.Ctx) error {
	cats, err := h.catalog.Categories(c.Context())
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return respondError(c, err, "Could not retrieve categories")
	}
	return c.JSON(cats)
}

func (h *AdminHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var cat models.Category
	if err := c.BodyParser(&cat); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(cat); err != nil {
		return respondValidationError(c, err)
	}

	tok, _ := session(c)
	created, err := h.api.CreateCategory(c.Context(), tok, cat)
	if err != nil {
		log.Printf("Error creating category: %v", err)
		return respondError(c, err, "Could not create category")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AdminHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var cat models.Category
	if err := c.BodyParser(&cat); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	cat.ID = c.Params("id")
	if err := h.validate.Struct(cat); err != nil {
		return respondValidationError(c, err)
	}

	tok, _ := session(c)
	if err := h.api.UpdateCategory(c.Context(), tok, cat); err != nil {
		log.Printf("Error updating category %s: %v", cat.ID, err)
		return respondError(c, err, "Could not update category")
	}
	return c.JSON(fiber.Map{"message": "Category updated successfully"})
}

func (h *AdminHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	tok, _ := session(c)
	if err := h.api.DeleteCategory(c.Context(), tok, c.Params("id")); err != nil {
		log.Printf("Error deleting category: %v", err)
		return respondError(c, err, "Could not delete category")
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}

// --- Products ---

func (h *AdminHandler) HandleListProducts(c *fiber.Ctx) error {
	result, err := h.catalog.Products(c.Context(), c.Query("search"), c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(result)
}

func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var p models.Product
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(p); err != nil {
		return respondValidationError(c, err)
	}

	tok, _ := session(c)
	created, err := h.api.CreateProduct(c.Context(), tok, p)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AdminHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var p models.Product
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	p.ID = c.Params("id")
	if err := h.validate.Struct(p); err != nil {
		return respondValidationError(c, err)
	}

	tok, _ := session(c)
	if err := h.api.UpdateProduct(c.Context(), tok, p); err != nil {
		log.Printf("Error updating product %s: %v", p.ID, err)
		return respondError(c, err, "Could not update product")
	}
	return c.JSON(fiber.Map{"message": "Product updated successfully"})
}

func (h *AdminHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	tok, _ := session(c)
	if err := h.api.DeleteProduct(c.Context(), tok, c.Params("id")); err != nil {
		log.Printf("Error deleting product: %v", err)
		return respondError(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// --- Discounts ---

func (h *AdminHandler) HandleListDiscounts(c *fiber.Ctx) error {
	tok, _ := session(c)
	ds, err := h.api.Discounts(c.Context(), tok)
	if err != nil {
		log.Printf("Error listing discounts: %v", err)
		return respondError(c, err, "Could not retrieve discounts")
	}
	return c.JSON(ds)
}

func (h *AdminHandler) HandleCreateDiscount(c *fiber.Ctx) error {
	var d models.Discount
	if err := c.BodyParser(&d); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(d); err != nil {
		return respondValidationError(c, err)
	}

	tok, _ := session(c)
	created, err := h.api.CreateDiscount(c.Context(), tok, d)
	if err != nil {
		log.Printf("Error creating discount: %v", err)
		return respondError(c, err, "Could not create discount")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AdminHandler) HandleUpdateDiscount(c *fiber.Ctx) error {
	var d models.Discount
	if err := c.BodyParser(&d); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	d.ID = c.Params("id")
	if err := h.validate.Struct(d); err != nil {
		return respondValidationError(c, err)
	}

	tok, _ := session(c)
	if err := h.api.UpdateDiscount(c.Context(), tok, d); err != nil {
		log.Printf("Error updating discount %s: %v", d.ID, err)
		return respondError(c, err, "Could not update discount")
	}
	return c.JSON(fiber.Map{"message": "Discount updated successfully"})
}

func (h *AdminHandler) HandleDeleteDiscount(c *fiber.Ctx) error {
	tok, _ := session(c)
	if err := h.api.DeleteDiscount(c.Context(), tok, c.Params("id")); err != nil {
		log.Printf("Error deleting discount: %v", err)
		return respondError(c, err, "Could not delete discount")
	}
	return c.JSON(fiber.Map{"message": "Discount deleted successfully"})
}

// --- Shipments ---

func (h *AdminHandler) HandleListShipments(c *fiber.Ctx) error {
	tok, _ := session(c)
	ss, err := h.api.AllShipments(c.Context(), tok)
	if err != nil {
		log.Printf("Error listing shipments: %v", err)
		return respondError(c, err, "Could not retrieve shipments")
	}
	return c.JSON(ss)
}

// ShipmentStatusRequest updates a shipment's status.
type ShipmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *AdminHandler) HandleUpdateShipmentStatus(c *fiber.Ctx) error {
	var req ShipmentStatusRequest
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
	if err := h.api.UpdateShipmentStatus(c.Context(), tok, c.Params("id"), req.Status); err != nil {
		log.Printf("Error updating shipment status: %v", err)
		return respondError(c, err, "Could not update shipment status")
	}
	return c.JSON(fiber.Map{"message": "Shipment status updated successfully"})
}

// --- Users ---

func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	tok, _ := session(c)
	us, err := h.api.Users(c.Context(), tok)
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return respondError(c, err, "Could not retrieve users")
	}
	return c.JSON(us)
}

func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	tok, _ := session(c)
	if err := h.api.DeleteUser(c.Context(), tok, c.Params("id")); err != nil {
		log.Printf("Error deleting user: %v", err)
		return respondError(c, err, "Could not delete user")
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// --- Notifications ---

func (h *AdminHandler) HandleListNotifications(c *fiber.Ctx) error {
	tok, _ := session(c)
	ns, err := h.api.AllNotifications(c.Context(), tok)
	if err != nil {
		log.Printf("Error listing notifications: %v", err)
		return respondError(c, err, "Could not retrieve notifications")
	}
	return c.JSON(ns)
}

func (h *AdminHandler) HandleCreateNotification(c *fiber.Ctx) error {
	var n models.Notification
	if err := c.BodyParser(&n); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(n); err != nil {
		return respondValidationError(c, err)
	}

	tok, _ := session(c)
	created, err := h.api.CreateNotification(c.Context(), tok, n)
	if err != nil {
		log.Printf("Error creating notification: %v", err)
		return respondError(c, err, "Could not create notification")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AdminHandler) HandleDeleteNotification(c *fiber.Ctx) error {
	tok, _ := session(c)
	if err := h.api.DeleteNotification(c.Context(), tok, c.Params("id")); err != nil {
		log.Printf("Error deleting notification: %v", err)
		return respondError(c, err, "Could not delete notification")
	}
	return c.JSON(fiber.Map{"message": "Notification deleted successfully"})
}
