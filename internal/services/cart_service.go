package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"agusstore/internal/backend"
	"agusstore/internal/models"
)

// Quantity change directions for UpdateQuantity.
const (
	QuantityIncrease = "increase"
	QuantityDecrease = "decrease"
)

// ErrItemBusy is returned when a mutation targets a cart item that already
// has an operation in flight. Overlapping writes to the same item are
// rejected instead of racing last-writer-wins against the backend.
var ErrItemBusy = fmt.Errorf("another operation on this cart item is still in progress")

// CartService mirrors one user's cart and applies optimistic mutations:
// local state changes first, the backend call follows, and a failure rolls
// the local change back. The mirror is only eventually consistent with the
// backend; nothing reconciles it if the cart changes by another path.
type CartService struct {
	api    backend.CartAPI
	token  string
	userID string

	mu      sync.Mutex
	items   []models.CartItem
	pending map[string]bool // cart item IDs with an in-flight mutation
}

// NewCartService creates a cart mirror for one user session.
func NewCartService(api backend.CartAPI, tok, userID string) *CartService {
	return &CartService{
		api:     api,
		token:   tok,
		userID:  userID,
		pending: make(map[string]bool),
	}
}

// Fetch loads the cart from the backend, replacing the local mirror.
func (s *CartService) Fetch(ctx context.Context) error {
	items, err := s.api.CartItems(ctx, s.token, s.userID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Items returns a copy of the current local cart state.
func (s *CartService) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Subtotal is the sum of price x quantity over the current cart items.
// Pure function of the mirror; Rupiah amounts, so plain addition suffices.
func (s *CartService) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, item := range s.items {
		sum += item.Product.Price * float64(item.Quantity)
	}
	return sum
}

// AddItem puts a product in the cart and appends the created row locally.
func (s *CartService) AddItem(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	item, err := s.api.AddCartItem(ctx, s.token, productID, quantity)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items = append(s.items, *item)
	s.mu.Unlock()
	return nil
}

// UpdateQuantity applies +1/-1 to a cart item. A result below 1 delegates
// to DeleteItem instead of storing a zero. The new quantity is applied
// locally before the backend call and reverted if the call fails.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID, direction string) error {
	s.mu.Lock()
	idx := s.indexOfLocked(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("cart item %s not found", itemID)
	}
	if s.pending[itemID] {
		s.mu.Unlock()
		return ErrItemBusy
	}

	previous := s.items[idx].Quantity
	next := previous + 1
	if direction == QuantityDecrease {
		next = previous - 1
	}
	if next < 1 {
		s.mu.Unlock()
		return s.DeleteItem(ctx, itemID)
	}

	// Optimistic: apply locally, then tell the backend.
	s.items[idx].Quantity = next
	s.pending[itemID] = true
	s.mu.Unlock()

	err := s.api.UpdateCartItemQuantity(ctx, s.token, itemID, next)

	s.mu.Lock()
	delete(s.pending, itemID)
	if err != nil {
		if idx := s.indexOfLocked(itemID); idx >= 0 {
			s.items[idx].Quantity = previous
		}
		s.mu.Unlock()
		return fmt.Errorf("failed to update quantity: %w", err)
	}
	s.mu.Unlock()
	return nil
}

// DeleteItem removes a cart item, locally first. On backend failure the
// removed item is re-inserted at the end of the list, not its original
// position.
func (s *CartService) DeleteItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	idx := s.indexOfLocked(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("cart item %s not found", itemID)
	}
	if s.pending[itemID] {
		s.mu.Unlock()
		return ErrItemBusy
	}

	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.pending[itemID] = true
	s.mu.Unlock()

	err := s.api.DeleteCartItem(ctx, s.token, itemID)

	s.mu.Lock()
	delete(s.pending, itemID)
	if err != nil {
		s.items = append(s.items, removed)
		s.mu.Unlock()
		log.Printf("Failed to delete cart item %s, restored locally: %v", itemID, err)
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	s.mu.Unlock()
	return nil
}

func (s *CartService) indexOfLocked(itemID string) int {
	for i := range s.items {
		if s.items[i].ID == itemID {
			return i
		}
	}
	return -1
}
