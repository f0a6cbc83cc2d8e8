// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rmorgan-dev/folio/internal/adapter"
	"github.com/rmorgan-dev/folio/internal/config"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/store"
	"github.com/rmorgan-dev/folio/models"
)

// ClientSession implements ClientSessionService. The identity held here is
// the single source of truth for "who is signed in" on the client; every
// change is fanned out to subscribers so dependent caches can react.
type ClientSession struct {
	server   adapter.ServerAdapter
	sessions store.SessionStore
	cfg      config.Client
	logger   *logger.Logger

	mu          sync.RWMutex
	identity    *models.Identity
	busy        bool
	subscribers map[int]func(identity *models.Identity)
	nextSubID   int

	watch adapter.Subscription
}

func NewClientSessionService(server adapter.ServerAdapter, sessions store.SessionStore, cfg config.Client, log *logger.Logger) *ClientSession {
	return &ClientSession{
		server:      server,
		sessions:    sessions,
		cfg:         cfg,
		logger:      log,
		subscribers: make(map[int]func(identity *models.Identity)),
	}
}

// Run implements [ClientSessionService]. Startup reconciliation: a persisted
// token is installed and verified against the server before anything trusts
// it; a rejected token is discarded locally. Afterwards the session watch is
// started so later server-side changes (expiry, revocation elsewhere) are
// picked up.
func (c *ClientSession) Run(ctx context.Context) error {
	token, err := c.sessions.LoadToken(ctx)
	switch {
	case errors.Is(err, store.ErrLocalSessionNotFound):
		// Fresh start, nothing to reconcile.
	case err != nil:
		return err
	default:
		c.server.SetToken(token)

		identity, sessErr := c.server.Session(ctx)
		switch {
		case sessErr == nil:
			c.setIdentity(&identity)
		case errors.Is(sessErr, adapter.ErrUnauthorized):
			c.logger.Info().Msg("persisted session rejected, clearing")
			c.server.SetToken("")
			if clearErr := c.sessions.ClearToken(ctx); clearErr != nil {
				c.logger.Error().Err(clearErr).Msg("clearing rejected session failed")
			}
		default:
			// Server unreachable: keep the token, the session watch below
			// settles the state once the server answers.
			c.logger.Warn().Err(sessErr).Msg("session check failed, keeping persisted token")
		}
	}

	c.watch = c.server.SubscribeSession(c.cfg.SessionPollInterval, c.onSessionChange)
	return nil
}

func (c *ClientSession) onSessionChange(identity *models.Identity) {
	c.setIdentity(identity)

	if identity == nil {
		// Server no longer honours the token; drop the local copy too.
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
		defer cancel()
		if err := c.sessions.ClearToken(ctx); err != nil {
			c.logger.Error().Err(err).Msg("clearing stale session failed")
		}
	}
}

// SignUp implements [ClientSessionService]. Registration intentionally never
// touches the identity or token: the caller must sign in explicitly.
func (c *ClientSession) SignUp(ctx context.Context, email, password string, profile models.Profile) (models.Identity, error) {
	if err := c.acquire(); err != nil {
		return models.Identity{}, err
	}
	defer c.release()

	identity, err := c.server.Register(ctx, models.User{
		Email:    email,
		Password: password,
		FullName: profile.FullName,
		Username: profile.Username,
	})
	if err != nil {
		return models.Identity{}, err
	}

	c.logger.Info().Str("email", email).Msg("account registered")
	return identity, nil
}

// SignIn implements [ClientSessionService].
func (c *ClientSession) SignIn(ctx context.Context, email, password string) (models.Identity, error) {
	if err := c.acquire(); err != nil {
		return models.Identity{}, err
	}
	defer c.release()

	identity, err := c.server.Login(ctx, models.User{Email: email, Password: password})
	if err != nil {
		return models.Identity{}, err
	}

	if err := c.sessions.SaveToken(ctx, c.server.Token()); err != nil {
		c.logger.Error().Err(err).Msg("persisting session failed")
	}

	c.setIdentity(&identity)
	return identity, nil
}

// SignOut implements [ClientSessionService]. The local session is gone the
// moment this returns; server-side revocation happens in the background and
// its failure is only logged.
func (c *ClientSession) SignOut(ctx context.Context) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()

	token := c.server.Token()
	if token == "" && c.Identity() == nil {
		return ErrNoActiveSession
	}

	c.clearLocal(ctx)

	if token != "" {
		go func() {
			revokeCtx, cancel := context.WithTimeout(context.Background(), c.cfg.RequestTimeout)
			defer cancel()
			if err := c.server.Logout(revokeCtx, token); err != nil {
				c.logger.Error().Err(err).Msg("remote sign-out failed")
			}
		}()
	}

	return nil
}

// ClearAuth implements [ClientSessionService].
func (c *ClientSession) ClearAuth(ctx context.Context) {
	c.clearLocal(ctx)
}

func (c *ClientSession) clearLocal(ctx context.Context) {
	c.server.SetToken("")
	if err := c.sessions.ClearToken(ctx); err != nil {
		c.logger.Error().Err(err).Msg("clearing local session failed")
	}
	c.setIdentity(nil)
}

// Identity implements [ClientSessionService].
func (c *ClientSession) Identity() *models.Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.identity == nil {
		return nil
	}
	identity := *c.identity
	return &identity
}

// Busy implements [ClientSessionService].
func (c *ClientSession) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.busy
}

// Subscribe implements [ClientSessionService].
func (c *ClientSession) Subscribe(fn func(identity *models.Identity)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
		})
	}
}

// Close implements [ClientSessionService].
func (c *ClientSession) Close() error {
	if c.watch != nil {
		c.watch.Unsubscribe()
	}
	return c.sessions.Close()
}

func (c *ClientSession) acquire() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrOperationInFlight
	}
	c.busy = true
	return nil
}

func (c *ClientSession) release() {
	c.mu.Lock()
	c.busy = false
	c.mu.Unlock()
}

// setIdentity swaps the current identity and notifies subscribers only when
// the authentication state actually changed.
func (c *ClientSession) setIdentity(identity *models.Identity) {
	c.mu.Lock()
	changed := identityChanged(c.identity, identity)
	if changed {
		c.identity = identity
	}
	fns := make([]func(identity *models.Identity), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range fns {
		fn(identity)
	}
}

func identityChanged(prev, next *models.Identity) bool {
	if (prev == nil) != (next == nil) {
		return true
	}
	return prev != nil && prev.ID != next.ID
}
