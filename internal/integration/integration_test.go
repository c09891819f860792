package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/api"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/checkout"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/config"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/model"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/obs"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/storage"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/store"
)

func TestMain(m *testing.M) {
	obs.InitLogger("error")
	os.Exit(m.Run())
}

// fakeBackendServer mimics the backend order endpoints over real HTTP.
type fakeBackendServer struct {
	orderCalls   atomic.Int64
	sessionCalls atomic.Int64
	failOrders   bool
}

func (f *fakeBackendServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		f.orderCalls.Add(1)
		if f.failOrders {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"detail":"upstream unavailable"}`))
			return
		}
		var body api.OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Items) == 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":42}`))
	})
	mux.HandleFunc("/api/orders/create-checkout-session/", func(w http.ResponseWriter, r *http.Request) {
		f.sessionCalls.Add(1)
		_, _ = w.Write([]byte(`{"url":"https://checkout.stripe.com/pay/cs_test"}`))
	})
	return mux
}

func setup(t *testing.T, backend *fakeBackendServer) (*store.Cart, *checkout.Orchestrator) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	client := api.New(config.Config{APIBaseURL: srv.URL, HTTPTimeout: 5 * time.Second})
	cart := store.NewCart(storage.NewMemory())
	auth := store.NewAuth(storage.NewMemory())
	return cart, checkout.New(client, cart, auth)
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	backend := &fakeBackendServer{}
	cart, orch := setup(t, backend)
	cart.AddItem(model.CartProduct{ID: 5, Name: "Teclado RGB", Price: "149,90"})
	cart.AddItem(model.CartProduct{ID: 9, Name: "Mouse", Price: "89,90"})

	res, err := orch.Submit(context.Background(), checkout.Details{
		FullName: "Ana Lima",
		Email:    "ana@example.com",
		Address:  "Rua A, 123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.OrderID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test", res.RedirectURL)
	assert.Equal(t, int64(1), backend.orderCalls.Load())
	assert.Equal(t, int64(1), backend.sessionCalls.Load())
	assert.Empty(t, cart.Items())
}

func TestCheckoutOrderFailureOverHTTP(t *testing.T) {
	backend := &fakeBackendServer{failOrders: true}
	cart, orch := setup(t, backend)
	cart.AddItem(model.CartProduct{ID: 5, Name: "Teclado RGB", Price: "149,90"})

	_, err := orch.Submit(context.Background(), checkout.Details{
		FullName: "Ana Lima",
		Email:    "ana@example.com",
		Address:  "Rua A, 123",
	})
	require.ErrorIs(t, err, checkout.ErrOrderCreateFailed)
	assert.Equal(t, int64(1), backend.orderCalls.Load())
	assert.Zero(t, backend.sessionCalls.Load())
	assert.Len(t, cart.Items(), 1)

	// The backend detail rides along for logs even though the user sees the
	// step-level message.
	assert.Contains(t, err.Error(), "upstream unavailable")
	assert.Equal(t, "Falha ao finalizar o pedido.", checkout.UserMessage(err))
}

func TestCheckoutValidationNeverTouchesNetwork(t *testing.T) {
	backend := &fakeBackendServer{}
	cart, orch := setup(t, backend)
	cart.AddItem(model.CartProduct{ID: 5, Name: "Teclado RGB", Price: "149,90"})

	_, err := orch.Submit(context.Background(), checkout.Details{FullName: "Ana"})
	require.ErrorIs(t, err, checkout.ErrMissingFields)
	assert.Zero(t, backend.orderCalls.Load())
	assert.Zero(t, backend.sessionCalls.Load())
}
