package backend

import (
	"context"
	"net/http"

	"agusstore/internal/models"
)

// Orders lists the user's order history.
func (c *Client) Orders(ctx context.Context, token, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.authed(ctx, http.MethodGet, "/orders/user/"+userID, token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Shipments lists the user's shipping history.
func (c *Client) Shipments(ctx context.Context, token, userID string) ([]models.Shipment, error) {
	var shipments []models.Shipment
	if err := c.authed(ctx, http.MethodGet, "/shippings/user/"+userID, token, nil, &shipments); err != nil {
		return nil, err
	}
	return shipments, nil
}

// Profile fetches the user's own account record.
func (c *Client) Profile(ctx context.Context, token, userID string) (*models.User, error) {
	var user models.User
	if err := c.authed(ctx, http.MethodGet, "/users/"+userID, token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Notifications lists broadcast notifications visible to the user.
func (c *Client) Notifications(ctx context.Context, token string) ([]models.Notification, error) {
	var ns []models.Notification
	if err := c.authed(ctx, http.MethodGet, "/notifications", token, nil, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// Transaction fetches the payment status snapshot for the transaction
// result page. Payment outcome is observed here, not through the checkout
// flow, because the gateway redirect ends that flow's lifecycle.
func (c *Client) Transaction(ctx context.Context, token, orderID string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := c.authed(ctx, http.MethodGet, "/payments/"+orderID, token, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Wishlist lists the user's saved products.
func (c *Client) Wishlist(ctx context.Context, token, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := c.authed(ctx, http.MethodGet, "/wishlists/user/"+userID, token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

type addWishlistRequest struct {
	ProductID string `json:"productId"`
}

// AddWishlistItem saves a product to the wishlist.
func (c *Client) AddWishlistItem(ctx context.Context, token, productID string) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := c.authed(ctx, http.MethodPost, "/wishlists", token, addWishlistRequest{ProductID: productID}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveWishlistItem deletes a wishlist entry.
func (c *Client) RemoveWishlistItem(ctx context.Context, token, itemID string) error {
	return c.authed(ctx, http.MethodDelete, "/wishlists/"+itemID, token, nil, nil)
}
