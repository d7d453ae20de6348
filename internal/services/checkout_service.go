package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"agusstore/internal/backend"
	"agusstore/internal/models"

	"github.com/google/uuid"
)

// Checkout steps. Transitions are strictly forward: once an order exists
// there is no cancellation path back through the flow.
const (
	StepAddress         = 1 // selecting a shipping address
	StepShipping        = 2 // address chosen, selecting courier/service
	StepOrderCreated    = 3 // order exists on the backend
	StepShipmentCreated = 4 // shipment exists, payment redirect may be issued
)

// ErrPrecondition marks a caller sequencing bug (e.g. shipment before
// order). It is raised before any network call, unlike transient backend
// failures which are always worth retrying.
var ErrPrecondition = errors.New("checkout step precondition not met")

// ErrStepInFlight rejects an operation while a previous one on the same
// session is still running, the server-side equivalent of a disabled
// submit button. It also keeps a double-clicked step from creating
// duplicate backend records.
var ErrStepInFlight = errors.New("a checkout operation is already in progress")

// EventPublisher receives checkout lifecycle events. A nil publisher is
// allowed; events are then skipped.
type EventPublisher interface {
	PublishEvent(eventType string, payload map[string]interface{}) error
}

// CheckoutService orchestrates one user's checkout flow: select address,
// resolve discount, create order, create shipment, open the payment
// session. It holds only transient state; a new session starts at step 1.
type CheckoutService struct {
	api    backend.CheckoutAPI
	events EventPublisher
	token  string
	userID string

	mu     sync.Mutex
	busy   bool
	step   int
	idem   string // idempotency key, one per flow instance

	addresses       []models.Address
	addressID       string
	items           []models.CartItem
	discountCode    string
	discountAmount  float64
	shippingOptions []models.ShippingOption
	courier         string
	courierService  string
	orderID         string
	orderTotal      float64
	redirectURL     string
}

// NewCheckoutService starts a checkout flow at the address step.
func NewCheckoutService(api backend.CheckoutAPI, events EventPublisher, tok, userID string) *CheckoutService {
	return &CheckoutService{
		api:    api,
		events: events,
		token:  tok,
		userID: userID,
		step:   StepAddress,
		idem:   uuid.New().String(),
	}
}

// Step returns the current step (1-4). It never decreases within a flow.
func (s *CheckoutService) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// advance moves the step counter forward only. Callers hold s.mu.
func (s *CheckoutService) advance(step int) {
	if step > s.step {
		s.step = step
	}
}

// begin marks an operation in flight; end releases it. Failure paths must
// always reach end so the step stays retryable.
func (s *CheckoutService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrStepInFlight
	}
	s.busy = true
	return nil
}

func (s *CheckoutService) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// LoadAddresses fetches the user's saved addresses (flow entry). Failures
// surface to the user; the flow does not retry on its own.
func (s *CheckoutService) LoadAddresses(ctx context.Context) error {
	addrs, err := s.api.Addresses(ctx, s.token, s.userID)
	if err != nil {
		return fmt.Errorf("failed to load addresses: %w", err)
	}
	s.mu.Lock()
	s.addresses = addrs
	s.mu.Unlock()
	return nil
}

// LoadShippingOptions fetches courier offers for the shipping step.
func (s *CheckoutService) LoadShippingOptions(ctx context.Context) error {
	opts, err := s.api.ShippingOptions(ctx, s.token)
	if err != nil {
		return fmt.Errorf("failed to load shipping options: %w", err)
	}
	s.mu.Lock()
	s.shippingOptions = opts
	s.mu.Unlock()
	return nil
}

// SetCartItems seeds the flow with the current cart contents.
func (s *CheckoutService) SetCartItems(items []models.CartItem) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// SelectAddress picks a saved address and moves on to shipping selection.
func (s *CheckoutService) SelectAddress(addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, a := range s.addresses {
		if a.ID == addressID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("address %s is not one of the saved addresses", addressID)
	}
	s.addressID = addressID
	s.advance(StepShipping)
	return nil
}

// CreateNewAddress creates and immediately selects an address mid-flow,
// without restarting the step sequence.
func (s *CheckoutService) CreateNewAddress(ctx context.Context, addr models.Address) (*models.Address, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	addr.UserID = s.userID
	created, err := s.api.CreateAddress(ctx, s.token, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}

	s.mu.Lock()
	s.addresses = append(s.addresses, *created)
	s.addressID = created.ID
	s.advance(StepShipping)
	s.mu.Unlock()
	return created, nil
}

// SelectShipping records the chosen courier/service for the shipment step.
func (s *CheckoutService) SelectShipping(courier, service string) {
	s.mu.Lock()
	s.courier = courier
	s.courierService = service
	s.mu.Unlock()
}

// ValidateDiscountCode resolves a code against the current subtotal. An
// empty code is not an error, it just resets the discount. Any failure
// also resets the discount to 0 and surfaces the backend's message.
func (s *CheckoutService) ValidateDiscountCode(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		s.mu.Lock()
		s.discountCode = ""
		s.discountAmount = 0
		s.mu.Unlock()
		return nil
	}

	res, err := s.api.ResolveDiscount(ctx, s.token, code, s.Subtotal())
	if err != nil {
		s.mu.Lock()
		s.discountCode = ""
		s.discountAmount = 0
		s.mu.Unlock()
		return fmt.Errorf("discount validation failed: %w", err)
	}

	s.mu.Lock()
	s.discountCode = code
	s.discountAmount = res.Value
	s.mu.Unlock()
	return nil
}

// Subtotal is the sum of price x quantity over the seeded cart items.
func (s *CheckoutService) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, item := range s.items {
		sum += item.Product.Price * float64(item.Quantity)
	}
	return sum
}

// ShippingCost looks the selected courier up in the fetched options. No
// match yields 0; that lets checkout proceed with unrecorded shipping
// cost, so it is logged loudly.
func (s *CheckoutService) ShippingCost() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.courier == "" {
		return 0
	}
	for _, opt := range s.shippingOptions {
		if opt.Courier == s.courier && (s.courierService == "" || opt.Service == s.courierService) {
			return opt.Cost
		}
	}
	log.Printf("Warning: no shipping option matches courier %q service %q, cost defaults to 0", s.courier, s.courierService)
	return 0
}

// Total is subtotal - discount + shipping cost.
func (s *CheckoutService) Total() float64 {
	return s.Subtotal() - s.DiscountAmount() + s.ShippingCost()
}

// DiscountAmount returns the currently resolved discount.
func (s *CheckoutService) DiscountAmount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discountAmount
}

// CreateOrder submits the order (steps 1/2 -> 3). It requires a selected
// address and a non-empty cart; both are checked before any network call.
// A backend unique-constraint violation is replaced with a friendlier
// domain message.
func (s *CheckoutService) CreateOrder(ctx context.Context) (*models.Order, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	s.mu.Lock()
	addressID := s.addressID
	items := make([]models.OrderItem, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, models.OrderItem{ProductID: it.Product.ID, Quantity: it.Quantity})
	}
	discountCode := s.discountCode
	idem := s.idem
	s.mu.Unlock()

	if addressID == "" {
		return nil, fmt.Errorf("%w: no address selected", ErrPrecondition)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrPrecondition)
	}

	order, err := s.api.CreateOrder(ctx, s.token, backend.OrderRequest{
		UserID:         s.userID,
		AddressID:      addressID,
		Items:          items,
		DiscountCode:   discountCode,
		IdempotencyKey: idem,
	})
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Message), "unique constraint") {
			return nil, fmt.Errorf("an order for this address already exists")
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.mu.Lock()
	s.orderID = order.ID
	s.orderTotal = order.Total
	s.advance(StepOrderCreated)
	s.mu.Unlock()

	s.publish("checkout.order_created", map[string]interface{}{
		"orderID": order.ID,
		"userID":  s.userID,
		"total":   order.Total,
	})
	return order, nil
}

// CreateShipment creates the shipment for the created order (3 -> 4). A
// missing order id or courier is a caller sequencing bug and fails fast
// without touching the network.
func (s *CheckoutService) CreateShipment(ctx context.Context) (*models.Shipment, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	s.mu.Lock()
	orderID := s.orderID
	courier := s.courier
	service := s.courierService
	idem := s.idem
	s.mu.Unlock()

	if orderID == "" {
		return nil, fmt.Errorf("%w: no order has been created", ErrPrecondition)
	}
	if courier == "" {
		return nil, fmt.Errorf("%w: no courier selected", ErrPrecondition)
	}

	shipment, err := s.api.CreateShipment(ctx, s.token, backend.ShipmentRequest{
		OrderID:        orderID,
		Courier:        courier,
		Service:        service,
		IdempotencyKey: idem,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shipment: %w", err)
	}

	s.mu.Lock()
	s.advance(StepShipmentCreated)
	s.mu.Unlock()

	s.publish("checkout.shipment_created", map[string]interface{}{
		"orderID":    orderID,
		"shipmentID": shipment.ID,
		"courier":    courier,
	})
	return shipment, nil
}

// CreatePayment opens the payment session and returns the gateway redirect
// URL, the terminal action of this flow. A successful response without a
// redirect URL is a backend contract violation, not a user error.
func (s *CheckoutService) CreatePayment(ctx context.Context) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}
	defer s.end()

	s.mu.Lock()
	orderID := s.orderID
	idem := s.idem
	s.mu.Unlock()

	if orderID == "" {
		return "", fmt.Errorf("%w: no order has been created", ErrPrecondition)
	}

	redirectURL, err := s.api.CreatePayment(ctx, s.token, backend.PaymentRequest{
		OrderID:        orderID,
		IdempotencyKey: idem,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create payment session: %w", err)
	}
	if redirectURL == "" {
		return "", fmt.Errorf("payment backend returned no redirect URL")
	}

	s.mu.Lock()
	s.redirectURL = redirectURL
	s.mu.Unlock()

	s.publish("checkout.payment_initiated", map[string]interface{}{
		"orderID": orderID,
		"userID":  s.userID,
	})
	return redirectURL, nil
}

// State is a snapshot of the session for rendering.
type CheckoutState struct {
	Step            int                     `json:"step"`
	Addresses       []models.Address        `json:"addresses"`
	AddressID       string                  `json:"addressId,omitempty"`
	Items           []models.CartItem       `json:"items"`
	ShippingOptions []models.ShippingOption `json:"shippingOptions"`
	Courier         string                  `json:"courier,omitempty"`
	Service         string                  `json:"service,omitempty"`
	DiscountCode    string                  `json:"discountCode,omitempty"`
	DiscountAmount  float64                 `json:"discountAmount"`
	Subtotal        float64                 `json:"subtotal"`
	ShippingCost    float64                 `json:"shippingCost"`
	Total           float64                 `json:"total"`
	OrderID         string                  `json:"orderId,omitempty"`
	OrderTotal      float64                 `json:"orderTotal,omitempty"`
}

// State renders the current session.
func (s *CheckoutService) State() CheckoutState {
	subtotal := s.Subtotal()
	shipping := s.ShippingCost()

	s.mu.Lock()
	defer s.mu.Unlock()
	return CheckoutState{
		Step:            s.step,
		Addresses:       s.addresses,
		AddressID:       s.addressID,
		Items:           s.items,
		ShippingOptions: s.shippingOptions,
		Courier:         s.courier,
		Service:         s.courierService,
		DiscountCode:    s.discountCode,
		DiscountAmount:  s.discountAmount,
		Subtotal:        subtotal,
		ShippingCost:    shipping,
		Total:           subtotal - s.discountAmount + shipping,
		OrderID:         s.orderID,
		OrderTotal:      s.orderTotal,
	}
}

func (s *CheckoutService) publish(eventType string, payload map[string]interface{}) {
	if s.events == nil {
		log.Println("Event publisher is not initialized. Skipping checkout event.")
		return
	}
	if err := s.events.PublishEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
