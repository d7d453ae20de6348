package models

// CartItem is the local mirror of a backend cart row. The backend owns the
// cart; this copy only lives for the duration of a request or an optimistic
// mutation. Quantity is never stored below 1: a decrement past 1 deletes the
// item instead.
type CartItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Product  Product `json:"product"`
}

// WishlistItem links a user to a saved product.
type WishlistItem struct {
	ID      string  `json:"id"`
	Product Product `json:"product"`
}
