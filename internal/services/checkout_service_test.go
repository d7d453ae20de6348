package services_test

import (
	"context"
	"net/http"
	"testing"

	"agusstore/internal/backend"
	"agusstore/internal/models"
	"agusstore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCheckoutAPI is a mock implementation of backend.CheckoutAPI.
type MockCheckoutAPI struct {
	mock.Mock
}

func (m *MockCheckoutAPI) Addresses(ctx context.Context, token, userID string) ([]models.Address, error) {
	args := m.Called(ctx, token, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Address), args.Error(1)
}

func (m *MockCheckoutAPI) CreateAddress(ctx context.Context, token string, addr models.Address) (*models.Address, error) {
	args := m.Called(ctx, token, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Address), args.Error(1)
}

func (m *MockCheckoutAPI) ResolveDiscount(ctx context.Context, token, code string, subtotal float64) (*models.DiscountResolution, error) {
	args := m.Called(ctx, token, code, subtotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscountResolution), args.Error(1)
}

func (m *MockCheckoutAPI) ShippingOptions(ctx context.Context, token string) ([]models.ShippingOption, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShippingOption), args.Error(1)
}

func (m *MockCheckoutAPI) CreateOrder(ctx context.Context, token string, req backend.OrderRequest) (*models.Order, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockCheckoutAPI) CreateShipment(ctx context.Context, token string, req backend.ShipmentRequest) (*models.Shipment, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *MockCheckoutAPI) CreatePayment(ctx context.Context, token string, req backend.PaymentRequest) (string, error) {
	args := m.Called(ctx, token, req)
	return args.String(0), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(eventType string, payload map[string]interface{}) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

func checkoutItems() []models.CartItem {
	return []models.CartItem{
		{ID: "ci-1", Quantity: 2, Product: models.Product{ID: "p-1", Price: 50000}},
	}
}

// newCheckout builds a session at the shipping step: addresses loaded,
// one selected, cart seeded.
func newCheckout(t *testing.T, api *MockCheckoutAPI, events services.EventPublisher) *services.CheckoutService {
	t.Helper()
	svc := services.NewCheckoutService(api, events, "tok", "user-1")
	api.On("Addresses", mock.Anything, "tok", "user-1").
		Return([]models.Address{{ID: "addr-1", City: "Kediri"}}, nil).Once()
	assert.NoError(t, svc.LoadAddresses(context.Background()))
	assert.NoError(t, svc.SelectAddress("addr-1"))
	svc.SetCartItems(checkoutItems())
	return svc
}

func TestCheckout_EntryStartsAtAddressStep(t *testing.T) {
	api := new(MockCheckoutAPI)
	svc := services.NewCheckoutService(api, nil, "tok", "user-1")
	assert.Equal(t, services.StepAddress, svc.Step())
}

func TestCheckout_SelectAddressAdvances(t *testing.T) {
	api := new(MockCheckoutAPI)
	svc := newCheckout(t, api, nil)
	assert.Equal(t, services.StepShipping, svc.Step())
	api.AssertExpectations(t)
}

func TestCheckout_TotalsWithoutDiscount(t *testing.T) {
	api := new(MockCheckoutAPI)
	svc := newCheckout(t, api, nil)

	api.On("ShippingOptions", mock.Anything, "tok").
		Return([]models.ShippingOption{{Courier: "JNE", Service: "REG", Cost: 15000}}, nil).Once()
	assert.NoError(t, svc.LoadShippingOptions(context.Background()))
	svc.SelectShipping("JNE", "REG")

	assert.Equal(t, float64(100000), svc.Subtotal())
	assert.Equal(t, float64(15000), svc.ShippingCost())
	assert.Equal(t, float64(115000), svc.Total())
}

func TestCheckout_UnmatchedCourierCostsZero(t *testing.T) {
	api := new(MockCheckoutAPI)
	svc := newCheckout(t, api, nil)

	api.On("ShippingOptions", mock.Anything, "tok").
		Return([]models.ShippingOption{{Courier: "JNE", Service: "REG", Cost: 15000}}, nil).Once()
	assert.NoError(t, svc.LoadShippingOptions(context.Background()))
	svc.SelectShipping("SiCepat", "")

	assert.Equal(t, float64(0), svc.ShippingCost())
	assert.Equal(t, float64(100000), svc.Total())
}

func TestCheckout_ValidateDiscountCode(t *testing.T) {
	api := new(MockCheckoutAPI)
	svc := newCheckout(t, api, nil)

	// Empty code is a no-op reset, not an error, and no resolver call.
	assert.NoError(t, svc.ValidateDiscountCode(context.Background(), "  "))
	assert.Equal(t, float64(0), svc.DiscountAmount())
	api.AssertNotCalled(t, "ResolveDiscount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// The resolver returns an absolute amount for the current subtotal.
	api.On("ResolveDiscount", mock.Anything, "tok", "SAVE10", float64(100000)).
		Return(&models.DiscountResolution{Code: "SAVE10", Value: 10000}, nil).Once()
	assert.NoError(t, svc.ValidateDiscountCode(context.Background(), "SAVE10"))
	assert.Equal(t, float64(10000), svc.DiscountAmount())
	assert.Equal(t, float64(90000), svc.Total()) // no shipping selected yet

	// A failed validation resets the discount to 0 and surfaces the
	// backend's message.
	api.On("ResolveDiscount", mock.Anything, "tok", "EXPIRED", float64(100000)).
		Return(nil, &backend.APIError{Status: http.StatusBadRequest, Message: "Kode diskon sudah kedaluwarsa"}).Once()
	err := svc.ValidateDiscountCode(context.Background(), "EXPIRED")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Kode diskon sudah kedaluwarsa")
	assert.Equal(t, float64(0), svc.DiscountAmount())
	api.AssertExpectations(t)
}

func TestCheckout_CreateOrderRequiresAddress(t *testing.T) {
	api := new(MockCheckoutAPI)
	svc := services.NewCheckoutService(api, nil, "tok", "user-1")
	svc.SetCartItems(checkoutItems())

	_, err := svc.CreateOrder(context.Background())
	assert.ErrorIs(t, err, services.ErrPrecondition)
	api.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_CreateOrderSuccess(t *testing.T) {
	api := new(MockCheckoutAPI)
	events := new(MockPublisher)
	svc := newCheckout(t, api, events)

	api.On("CreateOrder", mock.Anything, "tok", mock.MatchedBy(func(req backend.OrderRequest) bool {
		return req.UserID == "user-1" && req.AddressID == "addr-1" &&
			len(req.Items) == 1 && req.Items[0].ProductID == "p-1" &&
			req.Items[0].Quantity == 2 && req.IdempotencyKey != ""
	})).Return(&models.Order{ID: "order-1", Total: 100000}, nil).Once()
	events.On("PublishEvent", "checkout.order_created", mock.Anything).Return(nil).Once()

	order, err := svc.CreateOrder(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, services.StepOrderCreated, svc.Step())
	api.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCheckout_CreateOrderBackendFailure(t *testing.T) {
	api := new(MockCheckoutAPI)
	svc := newCheckout(t, api, nil)

	// The backend's message surfaces verbatim and the step does not
	// advance, so the user can retry the same step.
	api.On("CreateOrder", mock.Anything, "tok", mock.Anything).
		Return(nil, &backend.APIError{Status: http.StatusInternalServerError, Message: "DB unavailable"}).Once()

	_, err := svc.CreateOrder(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB unavailable")
	assert.Equal(t, services.StepShipping, svc.Step())

	// Retrying the same step still works.
	api.On("CreateOrder", mock.Anything, "tok", mock.Anything).
		Return(&models.Order{ID: "order-1", Total: 100000}, nil).Once()
	_, err = svc.CreateOrder(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, services.StepOrderCreated, svc.Step())
	api.AssertExpectations(t)
}

func TestCheckout_CreateOrderUniqueConstraint(t *testing.T) {
	api := new(MockCheckoutAPI)
	svc := newCheckout(t, api, nil)

	api.On("CreateOrder", mock.Anything, "tok", mock.Anything).
		Return(nil, &backend.APIError{Status: http.StatusConflict, Message: "Unique constraint failed on the fields: (`addressId`)"}).Once()

	_, err := svc.CreateOrder(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "an order for this address already exists", err.Error())
	api.AssertExpectations(t)
}

func TestCheckout_CreateShipmentPreconditions(t *testing.T) {
	api := new(MockCheckoutAPI)
	svc := newCheckout(t, api, nil)

	// No order yet: rejected immediately, no network call.
	svc.SelectShipping("JNE", "REG")
	_, err := svc.CreateShipment(context.Background())
	assert.ErrorIs(t, err, services.ErrPrecondition)
	api.AssertNotCalled(t, "CreateShipment", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_FullFlowIsMonotonic(t *testing.T) {
	api := new(MockCheckoutAPI)
	events := new(MockPublisher)
	svc := newCheckout(t, api, events)
	svc.SelectShipping("JNE", "REG")

	api.On("CreateOrder", mock.Anything, "tok", mock.Anything).
		Return(&models.Order{ID: "order-1", Total: 115000}, nil).Once()
	api.On("CreateShipment", mock.Anything, "tok", mock.MatchedBy(func(req backend.ShipmentRequest) bool {
		return req.OrderID == "order-1" && req.Courier == "JNE" && req.Service == "REG"
	})).Return(&models.Shipment{ID: "ship-1", OrderID: "order-1"}, nil).Once()
	api.On("CreatePayment", mock.Anything, "tok", mock.MatchedBy(func(req backend.PaymentRequest) bool {
		return req.OrderID == "order-1"
	})).Return("https://app.midtrans.com/snap/v3/redirection/abc", nil).Once()
	events.On("PublishEvent", mock.Anything, mock.Anything).Return(nil).Times(3)

	_, err := svc.CreateOrder(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, services.StepOrderCreated, svc.Step())

	_, err = svc.CreateShipment(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, services.StepShipmentCreated, svc.Step())

	// Re-selecting an address after the order exists cannot move the
	// counter backward.
	assert.NoError(t, svc.SelectAddress("addr-1"))
	assert.Equal(t, services.StepShipmentCreated, svc.Step())

	url, err := svc.CreatePayment(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "https://app.midtrans.com/snap/v3/redirection/abc", url)
	assert.Equal(t, services.StepShipmentCreated, svc.Step())
	api.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCheckout_RejectsOverlappingStepOperations(t *testing.T) {
	api := new(MockCheckoutAPI)
	svc := newCheckout(t, api, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	api.On("CreateOrder", mock.Anything, "tok", mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&models.Order{ID: "order-1", Total: 100000}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := svc.CreateOrder(context.Background())
		done <- err
	}()

	<-started
	// A double-clicked submit must not create a second order; the session
	// rejects the overlapping step instead of racing the first one.
	_, err := svc.CreateOrder(context.Background())
	assert.ErrorIs(t, err, services.ErrStepInFlight)

	close(release)
	assert.NoError(t, <-done)
	assert.Equal(t, services.StepOrderCreated, svc.Step())
	api.AssertExpectations(t)
	api.AssertNumberOfCalls(t, "CreateOrder", 1)
}

func TestCheckout_CreatePaymentWithoutRedirectURL(t *testing.T) {
	api := new(MockCheckoutAPI)
	events := new(MockPublisher)
	svc := newCheckout(t, api, events)
	svc.SelectShipping("JNE", "REG")

	api.On("CreateOrder", mock.Anything, "tok", mock.Anything).
		Return(&models.Order{ID: "order-1", Total: 115000}, nil).Once()
	events.On("PublishEvent", "checkout.order_created", mock.Anything).Return(nil).Once()
	_, err := svc.CreateOrder(context.Background())
	assert.NoError(t, err)

	// A successful response without a redirect URL is a backend contract
	// violation; no payment event is published.
	api.On("CreatePayment", mock.Anything, "tok", mock.Anything).Return("", nil).Once()
	_, err = svc.CreatePayment(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "redirect URL")
	events.AssertNotCalled(t, "PublishEvent", "checkout.payment_initiated", mock.Anything)
	api.AssertExpectations(t)
}

func TestCheckout_CreateNewAddressSelectsIt(t *testing.T) {
	api := new(MockCheckoutAPI)
	svc := services.NewCheckoutService(api, nil, "tok", "user-1")
	svc.SetCartItems(checkoutItems())

	created := &models.Address{ID: "addr-9", UserID: "user-1", City: "Malang"}
	api.On("CreateAddress", mock.Anything, "tok", mock.MatchedBy(func(a models.Address) bool {
		return a.UserID == "user-1" && a.City == "Malang"
	})).Return(created, nil).Once()

	got, err := svc.CreateNewAddress(context.Background(), models.Address{City: "Malang"})
	assert.NoError(t, err)
	assert.Equal(t, "addr-9", got.ID)
	assert.Equal(t, services.StepShipping, svc.Step())

	// The new address is selected: order creation uses it right away.
	api.On("CreateOrder", mock.Anything, "tok", mock.MatchedBy(func(req backend.OrderRequest) bool {
		return req.AddressID == "addr-9"
	})).Return(&models.Order{ID: "order-1", Total: 100000}, nil).Once()
	_, err = svc.CreateOrder(context.Background())
	assert.NoError(t, err)
	api.AssertExpectations(t)
}

func TestCheckoutManager_SessionPerUser(t *testing.T) {
	api := new(MockCheckoutAPI)
	manager := services.NewCheckoutManager(api, nil)

	a := manager.Session("tok-a", "user-a")
	b := manager.Session("tok-b", "user-b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, manager.Session("tok-a2", "user-a"))

	manager.Reset("user-a")
	assert.NotSame(t, a, manager.Session("tok-a3", "user-a"))
}
