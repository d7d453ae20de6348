package backend

import (
	"context"
	"net/http"

	"agusstore/internal/models"
)

// Admin dashboard glue. Every method forwards a form submission to the
// backend; authorization is enforced there on each call, the dashboard
// route gate is only a UX convenience.

func (c *Client) CreateCategory(ctx context.Context, token string, cat models.Category) (*models.Category, error) {
	var created models.Category
	if err := c.authed(ctx, http.MethodPost, "/categories", token, cat, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token string, cat models.Category) error {
	return c.authed(ctx, http.MethodPut, "/categories/"+cat.ID, token, cat, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.authed(ctx, http.MethodDelete, "/categories/"+id, token, nil, nil)
}

func (c *Client) CreateProduct(ctx context.Context, token string, p models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.authed(ctx, http.MethodPost, "/products", token, p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, token string, p models.Product) error {
	return c.authed(ctx, http.MethodPut, "/products/"+p.ID, token, p, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.authed(ctx, http.MethodDelete, "/products/"+id, token, nil, nil)
}

func (c *Client) Discounts(ctx context.Context, token string) ([]models.Discount, error) {
	var ds []models.Discount
	if err := c.authed(ctx, http.MethodGet, "/discounts", token, nil, &ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func (c *Client) CreateDiscount(ctx context.Context, token string, d models.Discount) (*models.Discount, error) {
	var created models.Discount
	if err := c.authed(ctx, http.MethodPost, "/discounts", token, d, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateDiscount(ctx context.Context, token string, d models.Discount) error {
	return c.authed(ctx, http.MethodPut, "/discounts/"+d.ID, token, d, nil)
}

func (c *Client) DeleteDiscount(ctx context.Context, token, id string) error {
	return c.authed(ctx, http.MethodDelete, "/discounts/"+id, token, nil, nil)
}

func (c *Client) AllShipments(ctx context.Context, token string) ([]models.Shipment, error) {
	var ss []models.Shipment
	if err := c.authed(ctx, http.MethodGet, "/shippings", token, nil, &ss); err != nil {
		return nil, err
	}
	return ss, nil
}

type shipmentStatusRequest struct {
	Status string `json:"status"`
}

func (c *Client) UpdateShipmentStatus(ctx context.Context, token, id, status string) error {
	return c.authed(ctx, http.MethodPatch, "/shippings/"+id+"/status", token, shipmentStatusRequest{Status: status}, nil)
}

func (c *Client) Users(ctx context.Context, token string) ([]models.User, error) {
	var us []models.User
	if err := c.authed(ctx, http.MethodGet, "/users", token, nil, &us); err != nil {
		return nil, err
	}
	return us, nil
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.authed(ctx, http.MethodDelete, "/users/"+id, token, nil, nil)
}

func (c *Client) AllNotifications(ctx context.Context, token string) ([]models.Notification, error) {
	var ns []models.Notification
	if err := c.authed(ctx, http.MethodGet, "/notifications", token, nil, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

func (c *Client) CreateNotification(ctx context.Context, token string, n models.Notification) (*models.Notification, error) {
	var created models.Notification
	if err := c.authed(ctx, http.MethodPost, "/notifications", token, n, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteNotification(ctx context.Context, token, id string) error {
	return c.authed(ctx, http.MethodDelete, "/notifications/"+id, token, nil, nil)
}
