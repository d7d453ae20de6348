package backend

import (
	"context"
	"net/http"

	"agusstore/internal/models"
)

// CartItems loads the cart for a user.
func (c *Client) CartItems(ctx context.Context, token, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := c.authed(ctx, http.MethodGet, "/carts/user/"+userID, token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddCartItem puts a product into the user's cart.
func (c *Client) AddCartItem(ctx context.Context, token, productID string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := c.authed(ctx, http.MethodPost, "/carts", token, addCartItemRequest{ProductID: productID, Quantity: quantity}, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItemQuantity sets an absolute quantity on a cart row. Callers
// never send a quantity below 1; a decrement past 1 deletes instead.
func (c *Client) UpdateCartItemQuantity(ctx context.Context, token, itemID string, quantity int) error {
	return c.authed(ctx, http.MethodPut, "/carts/"+itemID, token, updateCartItemRequest{Quantity: quantity}, nil)
}

// DeleteCartItem removes a cart row.
func (c *Client) DeleteCartItem(ctx context.Context, token, itemID string) error {
	return c.authed(ctx, http.MethodDelete, "/carts/"+itemID, token, nil, nil)
}
