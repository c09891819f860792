package store

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/IgorVoidbot/loja-ia-storefront/internal/model"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/obs"
	"github.com/IgorVoidbot/loja-ia-storefront/internal/storage"
)

// AuthBlob names the persisted session snapshot.
const AuthBlob = "loja-ia-auth"

type authSnapshot struct {
	Token string          `json:"token"`
	User  *model.AuthUser `json:"user"`
}

// Auth is the session container. isAuthenticated is never mutated on its
// own: it is recomputed from token presence at login, logout and hydration.
type Auth struct {
	baseContainer
	token           string
	user            *model.AuthUser
	isAuthenticated bool
}

// NewAuth returns a session container hydrated from st when a snapshot
// exists. A corrupt snapshot is discarded and the session starts logged out.
func NewAuth(st storage.Storage) *Auth {
	a := &Auth{baseContainer: newBaseContainer(st, AuthBlob)}
	data, ok, err := st.Load(AuthBlob)
	if err != nil {
		obs.Logger.Warn("auth_hydrate_failed", "error", err)
		return a
	}
	if !ok {
		return a
	}
	var snap authSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		obs.Logger.Warn("auth_snapshot_corrupt", "error", err)
		return a
	}
	a.token = snap.Token
	a.user = snap.User
	a.isAuthenticated = snap.Token != ""
	return a
}

// Login stores the bearer token and profile. Token issuance happens upstream;
// this always succeeds.
func (a *Auth) Login(token string, user *model.AuthUser) {
	a.mu.Lock()
	a.token = token
	a.user = user
	a.isAuthenticated = token != ""
	a.persistLocked(authSnapshot{Token: a.token, User: a.user})
	subs := a.subscribersLocked()
	a.mu.Unlock()
	notify(subs)
}

// Logout clears the token and profile.
func (a *Auth) Logout() {
	a.mu.Lock()
	a.token = ""
	a.user = nil
	a.isAuthenticated = false
	a.persistLocked(authSnapshot{})
	subs := a.subscribersLocked()
	a.mu.Unlock()
	notify(subs)
}

// Token returns the current bearer token, or "" when logged out.
func (a *Auth) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// User returns the stored profile. ok is false when none is set.
func (a *Auth) User() (model.AuthUser, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return model.AuthUser{}, false
	}
	return *a.user, true
}

// IsAuthenticated reports whether a non-empty token is present.
func (a *Auth) IsAuthenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isAuthenticated
}

// TokenExpired is an advisory for views that are about to hit authenticated
// endpoints: it reports whether the stored access token carries an exp claim
// in the past. The signature is not verified; the backend remains the
// authority. Opaque or claim-less tokens report false.
func (a *Auth) TokenExpired() bool {
	a.mu.Lock()
	tok := a.token
	a.mu.Unlock()
	if tok == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
