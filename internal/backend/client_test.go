package backend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"agusstore/internal/backend"

	"github.com/stretchr/testify/assert"
)

func TestClient_AuthedFailsFastWithoutToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	_, err := client.CartItems(context.Background(), "", "user-1")
	assert.ErrorIs(t, err, backend.ErrNoToken)
	assert.False(t, called, "no request should reach the backend without a token")
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	_, err := client.CartItems(context.Background(), "tok-abc", "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestClient_DecodesEnvelopedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/carts/user/user-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"ci-1","quantity":2,"product":{"id":"p-1","name":"Kopi Arabika","price":50000}}],"message":"OK"}`))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	items, err := client.CartItems(context.Background(), "tok", "user-1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "ci-1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, float64(50000), items[0].Product.Price)
}

func TestClient_DecodesBareResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"cat-1","name":"Kopi"}]`))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	cats, err := client.Categories(context.Background())
	assert.NoError(t, err)
	assert.Len(t, cats, 1)
	assert.Equal(t, "Kopi", cats[0].Name)
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusBadRequest, `{"message":"Stok tidak mencukupi"}`, "Stok tidak mencukupi"},
		{"error field", http.StatusConflict, `{"error":"Unique constraint failed on the fields: (` + "`addressId`" + `)"}`, "Unique constraint failed on the fields: (`addressId`)"},
		{"message preferred over error", http.StatusBadRequest, `{"message":"utama","error":"cadangan"}`, "utama"},
		{"non-JSON body", http.StatusBadGateway, `<html>Bad Gateway</html>`, backend.GenericFailureMessage},
		{"empty body", http.StatusInternalServerError, ``, backend.GenericFailureMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := backend.NewClient(srv.URL)
			_, err := client.CartItems(context.Background(), "tok", "user-1")
			assert.Error(t, err)

			var apiErr *backend.APIError
			assert.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestClient_CreatePaymentReturnsRedirectURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payments/midtrans", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"redirectUrl":"https://app.midtrans.com/snap/v3/redirection/abc"}`))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	url, err := client.CreatePayment(context.Background(), "tok", backend.PaymentRequest{OrderID: "order-1"})
	assert.NoError(t, err)
	assert.Equal(t, "https://app.midtrans.com/snap/v3/redirection/abc", url)
}

func TestClient_ResolveDiscountBuildsQuery(t *testing.T) {
	// totalOrder must always be plain decimal notation; a subtotal of tens
	// of millions of Rupiah is an ordinary order and must not arrive in
	// exponent form.
	tests := []struct {
		name      string
		subtotal  float64
		wantQuery string
	}{
		{"small order", 100000, "100000"},
		{"ten million", 10000000, "10000000"},
		{"hundred twenty five million", 125000000, "125000000"},
		{"fractional amount", 99999.5, "99999.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/discounts/code/SAVE10", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.Query().Get("totalOrder"))
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"data":{"code":"SAVE10","value":10000}}`))
			}))
			defer srv.Close()

			client := backend.NewClient(srv.URL)
			res, err := client.ResolveDiscount(context.Background(), "tok", "SAVE10", tt.subtotal)
			assert.NoError(t, err)
			assert.Equal(t, float64(10000), res.Value)
		})
	}
}

func TestClient_LoginReturnsTokenAndUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"token":"jwt-token","user":{"id":"user-1","name":"Agus","role":"USER"}}}`))
	}))
	defer srv.Close()

	client := backend.NewClient(srv.URL)
	tok, user, err := client.Login(context.Background(), "agus@example.com", "rahasia123")
	assert.NoError(t, err)
	assert.Equal(t, "jwt-token", tok)
	assert.Equal(t, "Agus", user.Name)
}
