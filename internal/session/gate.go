// Package session owns the bearer credential and is the single place that
// reacts to session loss. Every request-issuing component asks the Gate for
// its auth header and reports observed 401s back to it.
package session

import (
	"errors"
	"sync"

	"liftlog/internal/logger"
)

// Gate is the single source of truth for "are we authenticated".
type Gate struct {
	store TokenStore

	mu    sync.Mutex
	token string

	// expiredFired latches after the first observed 401 so concurrent
	// failures produce a single visible side effect. A fresh credential
	// re-arms the latch.
	expiredFired bool

	// OnSessionExpired is invoked (once) after the credential has been
	// cleared in response to a 401. Optional.
	OnSessionExpired func()
}

// NewGate creates a gate over the given token store and primes the in-memory
// token from it. A missing stored token is not an error; the gate simply
// starts unauthenticated.
func NewGate(store TokenStore) (*Gate, error) {
	g := &Gate{store: store}
	token, err := store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			return nil, err
		}
		return g, nil
	}
	g.token = token
	return g, nil
}

// SetCredential stores the token, overwriting any prior value.
func (g *Gate) SetCredential(token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Save(token); err != nil {
		return err
	}
	g.token = token
	g.expiredFired = false
	return nil
}

// ClearCredential removes the stored token.
func (g *Gate) ClearCredential() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = ""
	return g.store.Clear()
}

// Authenticated reports whether a credential is currently held.
func (g *Gate) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token != ""
}

// AuthHeader returns the Authorization header for the stored credential, or
// an empty map when unauthenticated. Pure and synchronous.
func (g *Gate) AuthHeader() map[string]string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + g.token}
}

// HandleUnauthorized is called by any component that receives an HTTP 401.
// It clears the credential and fires OnSessionExpired. Safe to call from
// concurrent completion handlers: the visible side effect happens once.
func (g *Gate) HandleUnauthorized() {
	g.mu.Lock()
	if g.expiredFired {
		g.mu.Unlock()
		return
	}
	g.expiredFired = true
	g.token = ""
	cb := g.OnSessionExpired
	g.mu.Unlock()

	logger.Warn("session expired, clearing credential")
	if err := g.store.Clear(); err != nil {
		logger.Error("failed to clear credential", "error", err)
	}
	if cb != nil {
		cb()
	}
}
