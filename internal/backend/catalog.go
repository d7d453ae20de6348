package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"agusstore/internal/models"
)

// Products lists products with optional search and pagination.
func (c *Client) Products(ctx context.Context, search string, page, limit int) (*models.ProductPage, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/products"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result models.ProductPage
	if err := c.request(ctx, http.MethodGet, path, "", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ProductBySlug fetches one product for the detail page.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := c.request(ctx, http.MethodGet, "/products/slug/"+url.PathEscape(slug), "", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Categories lists all categories for navigation and filtering.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := c.request(ctx, http.MethodGet, "/categories", "", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}
