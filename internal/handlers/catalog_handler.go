package handlers

import (
	"log"
	"strconv"

	"agusstore/internal/backend"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the public browsing pages: product listing with
// search and pagination, product detail, and category navigation.
type CatalogHandler struct {
	api backend.CatalogAPI
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(api backend.CatalogAPI) *CatalogHandler {
	return &CatalogHandler{api: api}
}

// RegisterRoutes registers the public catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/:slug", h.HandleProductDetail)
	router.Get("/categories", h.HandleListCategories)
}

// HandleListProducts lists products, passing search/page/limit through to
// the backend untouched.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	search := c.Query("search")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "12"))

	result, err := h.api.Products(c.Context(), search, page, limit)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(result)
}

// HandleProductDetail serves one product by slug.
func (h *CatalogHandler) HandleProductDetail(c *fiber.Ctx) error {
	slug := c.Params("slug")
	product, err := h.api.ProductBySlug(c.Context(), slug)
	if err != nil {
		log.Printf("Error getting product %s: %v", slug, err)
		return respondError(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleListCategories lists all categories.
func (h *CatalogHandler) HandleListCategories(c *fiber.Ctx) error {
	cats, err := h.api.Categories(c.Context())
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return respondError(c, err, "Could not retrieve categories")
	}
	return c.JSON(cats)
}
