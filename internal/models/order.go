package models

import "time"

// Discount types as reported by the backend resolver. The resolver converts
// either type into an absolute amount before it reaches this application.
const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

// Address is a shipping destination. During checkout it is referenced by ID
// only; inline editing happens on the account pages.
type Address struct {
	ID         string `json:"id"`
	UserID     string `json:"userId,omitempty"`
	Name       string `json:"name" validate:"required,min=3,max=100"`
	Phone      string `json:"phone" validate:"required,min=8,max=20"`
	Street     string `json:"street" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	Province   string `json:"province" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,max=10"`
}

// Discount describes a discount code as the admin dashboard sees it.
// Eligibility (expiry, minimum purchase, usage cap) is decided by the
// backend resolver, never re-computed here.
type Discount struct {
	ID           string     `json:"id"`
	Code         string     `json:"code" validate:"required,min=3,max=50"`
	Value        float64    `json:"value" validate:"required,gt=0"`
	DiscountType string     `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	MinPurchase  float64    `json:"minPurchase,omitempty"`
	MaxUsage     int        `json:"maxUsage,omitempty"`
}

// DiscountResolution is the resolver's answer for a code and subtotal:
// an absolute amount to subtract, already converted from percentage/fixed.
type DiscountResolution struct {
	Code  string  `json:"code"`
	Value float64 `json:"value"`
}

// OrderItem is a single line of an order submission.
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order as echoed back by the backend after creation, or listed on the
// order history page.
type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId,omitempty"`
	AddressID    string      `json:"addressId,omitempty"`
	Items        []OrderItem `json:"items,omitempty"`
	DiscountCode string      `json:"discountCode,omitempty"`
	Total        float64     `json:"total"`
	Status       string      `json:"status,omitempty"`
	CreatedAt    time.Time   `json:"createdAt,omitempty"`
}

// ShippingOption is one courier/service offer with its cost.
type ShippingOption struct {
	Courier string  `json:"courier"`
	Service string  `json:"service"`
	Cost    float64 `json:"cost"`
	ETD     string  `json:"etd,omitempty"`
}

// Shipment is created against an existing order. Client-side it has no
// state machine beyond "created or not".
type Shipment struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	Courier        string    `json:"courier"`
	Service        string    `json:"service"`
	Status         string    `json:"status,omitempty"`
	TrackingNumber string    `json:"trackingNumber,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// Transaction is the payment status snapshot shown on the transaction
// result page, identified by the query parameters the gateway redirects
// back with.
type Transaction struct {
	OrderID string  `json:"orderId"`
	Status  string  `json:"status"`
	Amount  float64 `json:"amount,omitempty"`
	Method  string  `json:"method,omitempty"`
}
