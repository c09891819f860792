package checkout

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/api"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/model"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/obs"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/storage"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/store"
)

func TestMain(m *testing.M) {
	obs.InitLogger("error")
	os.Exit(m.Run())
}

type fakeBackend struct {
	mu sync.Mutex

	orderCalls   int
	orderReq     api.OrderRequest
	orderBearer  string
	orderID      int64
	orderErr     error
	sessionCalls int
	sessionOrder int64
	sessionURL   string
	sessionErr   error
}

func (f *fakeBackend) CreateOrder(_ context.Context, order api.OrderRequest, bearer string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderCalls++
	f.orderReq = order
	f.orderBearer = bearer
	if f.orderErr != nil {
		return 0, f.orderErr
	}
	return f.orderID, nil
}

func (f *fakeBackend) CreateCheckoutSession(_ context.Context, orderID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionCalls++
	f.sessionOrder = orderID
	if f.sessionErr != nil {
		return "", f.sessionErr
	}
	return f.sessionURL, nil
}

func validDetails() Details {
	return Details{FullName: "Ana Lima", Email: "ana@example.com", Address: "Rua A, 123"}
}

func seededCart(t *testing.T) *store.Cart {
	t.Helper()
	c := store.NewCart(storage.NewMemory())
	c.AddItem(model.CartProduct{ID: 5, Name: "Teclado RGB", Price: "149,90"})
	c.AddItem(model.CartProduct{ID: 5, Name: "Teclado RGB", Price: "149,90"})
	c.AddItem(model.CartProduct{ID: 9, Name: "Mouse", Price: "89,90"})
	return c
}

func TestSubmitHappyPath(t *testing.T) {
	backend := &fakeBackend{orderID: 42, sessionURL: "https://checkout.stripe.com/pay/cs_test"}
	cart := seededCart(t)
	auth := store.NewAuth(storage.NewMemory())
	auth.Login("tok", nil)
	o := New(backend, cart, auth)

	res, err := o.Submit(context.Background(), validDetails())
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.OrderID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test", res.RedirectURL)

	assert.Equal(t, 1, backend.orderCalls)
	assert.Equal(t, 1, backend.sessionCalls)
	assert.Equal(t, int64(42), backend.sessionOrder)
	assert.Equal(t, "tok", backend.orderBearer)
	assert.Empty(t, cart.Items(), "cart cleared after success")
	assert.Equal(t, StateRedirecting, o.State())

	// Line items mirror the cart: quantities merged, insertion order kept.
	require.Len(t, backend.orderReq.Items, 2)
	assert.Equal(t, api.OrderItemRequest{ProductID: 5, Quantity: 2}, backend.orderReq.Items[0])
	assert.Equal(t, api.OrderItemRequest{ProductID: 9, Quantity: 1}, backend.orderReq.Items[1])
}

func TestSubmitTrimsFields(t *testing.T) {
	backend := &fakeBackend{orderID: 1, sessionURL: "https://pay.example.com"}
	o := New(backend, seededCart(t), store.NewAuth(storage.NewMemory()))
	_, err := o.Submit(context.Background(), Details{
		FullName: "  Ana Lima  ",
		Email:    " ana@example.com ",
		Address:  " Rua A, 123 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", backend.orderReq.FullName)
	assert.Equal(t, "ana@example.com", backend.orderReq.Email)
	assert.Equal(t, "Rua A, 123", backend.orderReq.Address)
}

func TestSubmitMissingFieldMakesNoCall(t *testing.T) {
	backend := &fakeBackend{}
	cart := seededCart(t)
	o := New(backend, cart, store.NewAuth(storage.NewMemory()))

	_, err := o.Submit(context.Background(), Details{FullName: "Ana", Email: "   ", Address: "Rua A"})
	require.ErrorIs(t, err, ErrMissingFields)
	assert.Zero(t, backend.orderCalls)
	assert.Zero(t, backend.sessionCalls)
	assert.Len(t, cart.Items(), 2, "cart untouched")
	assert.Equal(t, StateIdle, o.State())
	assert.Equal(t, "Preencha todos os campos obrigatórios.", UserMessage(err))
}

func TestSubmitEmptyCartMakesNoCall(t *testing.T) {
	backend := &fakeBackend{}
	cart := store.NewCart(storage.NewMemory())
	o := New(backend, cart, store.NewAuth(storage.NewMemory()))

	_, err := o.Submit(context.Background(), validDetails())
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, backend.orderCalls)
	assert.Equal(t, "Seu carrinho está vazio.", UserMessage(err))
}

func TestSubmitOrderFailureSkipsPaymentStep(t *testing.T) {
	backend := &fakeBackend{orderErr: &api.Error{Status: 502}}
	cart := seededCart(t)
	o := New(backend, cart, store.NewAuth(storage.NewMemory()))

	_, err := o.Submit(context.Background(), validDetails())
	require.ErrorIs(t, err, ErrOrderCreateFailed)
	assert.Equal(t, 1, backend.orderCalls)
	assert.Zero(t, backend.sessionCalls, "payment step never reached")
	assert.Len(t, cart.Items(), 2, "cart unchanged on failure")
	assert.Equal(t, StateIdle, o.State(), "retryable after failure")
	assert.Equal(t, "Falha ao finalizar o pedido.", UserMessage(err))
}

func TestSubmitOrderWithoutIdentifier(t *testing.T) {
	backend := &fakeBackend{orderErr: api.ErrMissingOrderID}
	o := New(backend, seededCart(t), store.NewAuth(storage.NewMemory()))

	_, err := o.Submit(context.Background(), validDetails())
	require.ErrorIs(t, err, api.ErrMissingOrderID)
	assert.Zero(t, backend.sessionCalls)
	assert.Equal(t, "Pedido criado sem identificador.", UserMessage(err))
}

func TestSubmitPaymentFailureKeepsCart(t *testing.T) {
	backend := &fakeBackend{orderID: 42, sessionErr: &api.Error{Status: 502, Detail: "Failed to create payment session."}}
	cart := seededCart(t)
	o := New(backend, cart, store.NewAuth(storage.NewMemory()))

	_, err := o.Submit(context.Background(), validDetails())
	require.ErrorIs(t, err, ErrPaymentSessionFailed)
	assert.Equal(t, 1, backend.orderCalls)
	assert.Equal(t, 1, backend.sessionCalls)
	assert.Len(t, cart.Items(), 2)
	assert.Equal(t, StateIdle, o.State())
	assert.Equal(t, "Falha ao iniciar o pagamento no Stripe.", UserMessage(err))
}

func TestSubmitPaymentMissingURL(t *testing.T) {
	backend := &fakeBackend{orderID: 42, sessionErr: api.ErrMissingCheckoutURL}
	o := New(backend, seededCart(t), store.NewAuth(storage.NewMemory()))

	_, err := o.Submit(context.Background(), validDetails())
	require.ErrorIs(t, err, api.ErrMissingCheckoutURL)
	assert.Equal(t, "Resposta do Stripe sem URL de checkout.", UserMessage(err))
}

func TestSubmitGuestSendsNoBearer(t *testing.T) {
	backend := &fakeBackend{orderID: 1, sessionURL: "https://pay.example.com"}
	o := New(backend, seededCart(t), store.NewAuth(storage.NewMemory()))
	_, err := o.Submit(context.Background(), validDetails())
	require.NoError(t, err)
	assert.Empty(t, backend.orderBearer)
}

func TestSubmitRejectsWhileNotIdle(t *testing.T) {
	backend := &fakeBackend{orderID: 1, sessionURL: "https://pay.example.com"}
	o := New(backend, seededCart(t), store.NewAuth(storage.NewMemory()))

	_, err := o.Submit(context.Background(), validDetails())
	require.NoError(t, err)
	require.Equal(t, StateRedirecting, o.State())

	_, err = o.Submit(context.Background(), validDetails())
	require.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Equal(t, 1, backend.orderCalls, "no second order call")
}

func TestRetryAfterFailureSucceeds(t *testing.T) {
	backend := &fakeBackend{orderErr: errors.New("network unreachable")}
	cart := seededCart(t)
	o := New(backend, cart, store.NewAuth(storage.NewMemory()))

	_, err := o.Submit(context.Background(), validDetails())
	require.Error(t, err)

	backend.orderErr = nil
	backend.orderID = 7
	backend.sessionURL = "https://pay.example.com"
	res, err := o.Submit(context.Background(), validDetails())
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.OrderID)
	assert.Equal(t, 2, backend.orderCalls)
	assert.Equal(t, 1, backend.sessionCalls)
}

func TestUserMessageFallback(t *testing.T) {
	assert.Equal(t, "Erro inesperado.", UserMessage(errors.New("boom")))
	assert.Empty(t, UserMessage(nil))
}
