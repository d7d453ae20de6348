package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"agusstore/internal/models"
)

// Addresses lists the user's saved shipping addresses.
func (c *Client) Addresses(ctx context.Context, token, userID string) ([]models.Address, error) {
	var addrs []models.Address
	if err := c.authed(ctx, http.MethodGet, "/addresses/user/"+userID, token, nil, &addrs); err != nil {
		return nil, err
	}
	return addrs, nil
}

// CreateAddress saves a new shipping address and returns it with its ID.
func (c *Client) CreateAddress(ctx context.Context, token string, addr models.Address) (*models.Address, error) {
	var created models.Address
	if err := c.authed(ctx, http.MethodPost, "/addresses", token, addr, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ResolveDiscount asks the backend resolver for the absolute discount
// amount a code yields on the given subtotal. Eligibility (minimum
// purchase, expiry, usage cap) is entirely the resolver's decision.
func (c *Client) ResolveDiscount(ctx context.Context, token, code string, subtotal float64) (*models.DiscountResolution, error) {
	// Plain decimal notation always; %g would flip a large Rupiah subtotal
	// into exponent form and the backend parses a plain number.
	path := fmt.Sprintf("/discounts/code/%s?totalOrder=%s",
		url.PathEscape(code), url.QueryEscape(strconv.FormatFloat(subtotal, 'f', -1, 64)))
	var res models.DiscountResolution
	if err := c.authed(ctx, http.MethodGet, path, token, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ShippingOptions fetches the available courier/service offers with costs.
func (c *Client) ShippingOptions(ctx context.Context, token string) ([]models.ShippingOption, error) {
	var opts []models.ShippingOption
	if err := c.authed(ctx, http.MethodGet, "/shippings/services", token, nil, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// OrderRequest is the order creation payload. The idempotency key lets the
// backend deduplicate a retried submission after a timeout.
type OrderRequest struct {
	UserID         string             `json:"userId"`
	AddressID      string             `json:"addressId"`
	Items          []models.OrderItem `json:"items"`
	DiscountCode   string             `json:"discountCode,omitempty"`
	IdempotencyKey string             `json:"idempotencyKey,omitempty"`
}

// CreateOrder submits an order and returns the created order (id, total).
func (c *Client) CreateOrder(ctx context.Context, token string, req OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.authed(ctx, http.MethodPost, "/orders", token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ShipmentRequest is the shipment creation payload.
type ShipmentRequest struct {
	OrderID        string `json:"orderId"`
	Courier        string `json:"courier"`
	Service        string `json:"service"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// CreateShipment creates a shipment against an existing order.
func (c *Client) CreateShipment(ctx context.Context, token string, req ShipmentRequest) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := c.authed(ctx, http.MethodPost, "/shippings", token, req, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

// PaymentRequest is the payment session payload for the Midtrans gateway.
type PaymentRequest struct {
	OrderID        string `json:"orderId"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

type paymentResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

// CreatePayment opens a payment session and returns the gateway redirect
// URL. An empty URL in a successful response is a backend contract
// violation and is reported as such by the caller.
func (c *Client) CreatePayment(ctx context.Context, token string, req PaymentRequest) (string, error) {
	var resp paymentResponse
	if err := c.authed(ctx, http.MethodPost, "/payments/midtrans", token, req, &resp); err != nil {
		return "", err
	}
	return resp.RedirectURL, nil
}
