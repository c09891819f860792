// Package session ties the backend account endpoints to the auth container:
// registration with auto sign-in, login, logout and the authenticated order
// history reads.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/model"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/obs"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/store"
)

var (
	// ErrMissingFields means a required credential field was empty after trimming.
	ErrMissingFields = errors.New("session: missing required fields")
	// ErrNotAuthenticated gates the order-history reads.
	ErrNotAuthenticated = errors.New("session: not authenticated")
	// ErrTokenExpired asks the user to sign in again before an authenticated read.
	ErrTokenExpired = errors.New("session: access token expired, sign in again")
	// ErrSignInAfterRegister means the account exists but the follow-up token
	// exchange failed; the user can sign in manually.
	ErrSignInAfterRegister = errors.New("session: account created but sign-in failed")
)

// Backend is the slice of the API client the session flows need.
type Backend interface {
	Register(ctx context.Context, fullName, email, password string) error
	Token(ctx context.Context, email, password string) (string, error)
	Orders(ctx context.Context, bearer string) ([]model.Order, error)
	Order(ctx context.Context, id int64, bearer string) (model.Order, error)
}

// Manager runs the account flows against the shared auth container.
type Manager struct {
	backend Backend
	auth    *store.Auth
}

// New wires the session flows to the auth container.
func New(backend Backend, auth *store.Auth) *Manager {
	return &Manager{backend: backend, auth: auth}
}

// Register creates an account and immediately signs it in, mirroring the
// registration form: a failed token exchange after a successful registration
// is reported as ErrSignInAfterRegister, not rolled back.
func (m *Manager) Register(ctx context.Context, fullName, email, password string) error {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if fullName == "" || email == "" || password == "" {
		return ErrMissingFields
	}
	if err := m.backend.Register(ctx, fullName, email, password); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	token, err := m.backend.Token(ctx, email, password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSignInAfterRegister, err)
	}
	m.auth.Login(token, &model.AuthUser{Name: fullName, Email: email})
	obs.Logger.Info("session_registered", "email", email)
	return nil
}

// Login exchanges credentials for a token and stores it.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return ErrMissingFields
	}
	token, err := m.backend.Token(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	m.auth.Login(token, &model.AuthUser{Email: email})
	obs.Logger.Info("session_login", "email", email)
	return nil
}

// Logout clears the stored session. Nothing is sent to the backend; the
// token simply stops being used.
func (m *Manager) Logout() {
	m.auth.Logout()
	obs.Logger.Info("session_logout")
}

// gate blocks authenticated reads when logged out or holding a stale token.
func (m *Manager) gate() error {
	if !m.auth.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if m.auth.TokenExpired() {
		return ErrTokenExpired
	}
	return nil
}

// Orders lists the signed-in user's orders.
func (m *Manager) Orders(ctx context.Context) ([]model.Order, error) {
	if err := m.gate(); err != nil {
		return nil, err
	}
	return m.backend.Orders(ctx, m.auth.Token())
}

// Order fetches one order with line details.
func (m *Manager) Order(ctx context.Context, id int64) (model.Order, error) {
	if err := m.gate(); err != nil {
		return model.Order{}, err
	}
	return m.backend.Order(ctx, id, m.auth.Token())
}
