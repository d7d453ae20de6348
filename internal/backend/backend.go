package backend

import (
	"context"

	"agusstore/internal/models"
)

// The interfaces below are the seams the services and handlers depend on,
// mocked in tests. *Client implements all of them.

// AuthAPI proxies credentials to the backend's auth endpoints.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
}

// CartAPI covers the cart CRUD endpoints.
type CartAPI interface {
	CartItems(ctx context.Context, token, userID string) ([]models.CartItem, error)
	AddCartItem(ctx context.Context, token, productID string, quantity int) (*models.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, token, itemID string, quantity int) error
	DeleteCartItem(ctx context.Context, token, itemID string) error
}

// CheckoutAPI covers everything the checkout flow touches: addresses,
// discount resolution, order/shipment/payment creation.
type CheckoutAPI interface {
	Addresses(ctx context.Context, token, userID string) ([]models.Address, error)
	CreateAddress(ctx context.Context, token string, addr models.Address) (*models.Address, error)
	ResolveDiscount(ctx context.Context, token, code string, subtotal float64) (*models.DiscountResolution, error)
	ShippingOptions(ctx context.Context, token string) ([]models.ShippingOption, error)
	CreateOrder(ctx context.Context, token string, req OrderRequest) (*models.Order, error)
	CreateShipment(ctx context.Context, token string, req ShipmentRequest) (*models.Shipment, error)
	CreatePayment(ctx context.Context, token string, req PaymentRequest) (string, error)
}

// CatalogAPI covers public product browsing.
type CatalogAPI interface {
	Products(ctx context.Context, search string, page, limit int) (*models.ProductPage, error)
	ProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
}

// AccountAPI covers the authenticated user's own pages: history, wishlist,
// profile, notifications and the transaction result snapshot.
type AccountAPI interface {
	Orders(ctx context.Context, token, userID string) ([]models.Order, error)
	Shipments(ctx context.Context, token, userID string) ([]models.Shipment, error)
	Profile(ctx context.Context, token, userID string) (*models.User, error)
	Notifications(ctx context.Context, token string) ([]models.Notification, error)
	Transaction(ctx context.Context, token, orderID string) (*models.Transaction, error)
	Wishlist(ctx context.Context, token, userID string) ([]models.WishlistItem, error)
	AddWishlistItem(ctx context.Context, token, productID string) (*models.WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, token, itemID string) error
}

// AdminAPI is the dashboard's form-to-API glue surface.
type AdminAPI interface {
	CreateCategory(ctx context.Context, token string, cat models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, token string, cat models.Category) error
	DeleteCategory(ctx context.Context, token, id string) error

	CreateProduct(ctx context.Context, token string, p models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, token string, p models.Product) error
	DeleteProduct(ctx context.Context, token, id string) error

	Discounts(ctx context.Context, token string) ([]models.Discount, error)
	CreateDiscount(ctx context.Context, token string, d models.Discount) (*models.Discount, error)
	UpdateDiscount(ctx context.Context, token string, d models.Discount) error
	DeleteDiscount(ctx context.Context, token, id string) error

	AllShipments(ctx context.Context, token string) ([]models.Shipment, error)
	UpdateShipmentStatus(ctx context.Context, token, id, status string) error

	Users(ctx context.Context, token string) ([]models.User, error)
	DeleteUser(ctx context.Context, token, id string) error

	AllNotifications(ctx context.Context, token string) ([]models.Notification, error)
	CreateNotification(ctx context.Context, token string, n models.Notification) (*models.Notification, error)
	DeleteNotification(ctx context.Context, token, id string) error
}
