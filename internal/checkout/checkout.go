// Package checkout drives the two-step handoff that turns the cart into a
// paid order: create the order on the backend, then open a payment session
// and hand the user its redirect URL.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/api"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/obs"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/store"
)

// State of one orchestrator instance. Redirecting is terminal; a failed
// submission returns to Idle and may be retried.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateRedirecting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateRedirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

var (
	// ErrSubmissionInFlight guards against double submission.
	ErrSubmissionInFlight = errors.New("checkout: submission already in progress")
	// ErrMissingFields means a required delivery field was empty after trimming.
	ErrMissingFields = errors.New("checkout: missing required delivery fields")
	// ErrEmptyCart blocks submission of an empty cart.
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrOrderCreateFailed wraps a failed order-creation call.
	ErrOrderCreateFailed = errors.New("checkout: order creation failed")
	// ErrPaymentSessionFailed wraps a failed payment-session call.
	ErrPaymentSessionFailed = errors.New("checkout: payment session failed")
)

// Backend is the slice of the API client the orchestrator needs; tests
// substitute a recording fake.
type Backend interface {
	CreateOrder(ctx context.Context, order api.OrderRequest, bearer string) (int64, error)
	CreateCheckoutSession(ctx context.Context, orderID int64) (string, error)
}

// Details are the delivery fields collected before submission.
type Details struct {
	FullName string
	Email    string
	Address  string
}

// Result of a successful submission. The caller is expected to navigate to
// RedirectURL; the cart has already been cleared.
type Result struct {
	OrderID     int64
	RedirectURL string
}

// Orchestrator sequences exactly one order-creation call and, only when that
// succeeds, exactly one payment-session call per submission. Nothing is
// retried automatically.
type Orchestrator struct {
	backend Backend
	cart    *store.Cart
	auth    *store.Auth

	mu    sync.Mutex
	state State
}

// New wires the orchestrator to the shared cart and auth containers.
func New(backend Backend, cart *store.Cart, auth *store.Auth) *Orchestrator {
	return &Orchestrator{backend: backend, cart: cart, auth: auth}
}

// State returns the current submission state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit validates preconditions, creates the order and the payment session,
// clears the cart and returns the redirect target. Preconditions are checked
// in order and short-circuit before any network call: in-flight guard,
// required fields, non-empty cart.
func (o *Orchestrator) Submit(ctx context.Context, d Details) (Result, error) {
	name := strings.TrimSpace(d.FullName)
	email := strings.TrimSpace(d.Email)
	address := strings.TrimSpace(d.Address)

	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return Result{}, ErrSubmissionInFlight
	}
	if name == "" || email == "" || address == "" {
		o.mu.Unlock()
		return Result{}, ErrMissingFields
	}
	items := o.cart.Items()
	if len(items) == 0 {
		o.mu.Unlock()
		return Result{}, ErrEmptyCart
	}
	o.state = StateSubmitting
	o.mu.Unlock()

	order := api.OrderRequest{
		FullName: name,
		Email:    email,
		Address:  address,
		Items:    make([]api.OrderItemRequest, 0, len(items)),
	}
	for _, item := range items {
		order.Items = append(order.Items, api.OrderItemRequest{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
		})
	}

	orderID, err := o.backend.CreateOrder(ctx, order, o.auth.Token())
	if err != nil {
		o.setState(StateIdle)
		if errors.Is(err, api.ErrMissingOrderID) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %w", ErrOrderCreateFailed, err)
	}

	redirectURL, err := o.backend.CreateCheckoutSession(ctx, orderID)
	if err != nil {
		o.setState(StateIdle)
		if errors.Is(err, api.ErrMissingCheckoutURL) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: %w", ErrPaymentSessionFailed, err)
	}

	o.cart.ClearCart()
	o.setState(StateRedirecting)
	obs.Logger.Info("checkout_complete", "order_id", orderID)
	return Result{OrderID: orderID, RedirectURL: redirectURL}, nil
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// UserMessage maps a Submit failure to the message shown next to the pay
// button, one per failure mode.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSubmissionInFlight):
		return "Aguarde, seu pedido está sendo processado."
	case errors.Is(err, ErrMissingFields):
		return "Preencha todos os campos obrigatórios."
	case errors.Is(err, ErrEmptyCart):
		return "Seu carrinho está vazio."
	case errors.Is(err, api.ErrMissingOrderID):
		return "Pedido criado sem identificador."
	case errors.Is(err, ErrOrderCreateFailed):
		return "Falha ao finalizar o pedido."
	case errors.Is(err, api.ErrMissingCheckoutURL):
		return "Resposta do Stripe sem URL de checkout."
	case errors.Is(err, ErrPaymentSessionFailed):
		return "Falha ao iniciar o pagamento no Stripe."
	default:
		return "Erro inesperado."
	}
}
