// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rmorgan-dev/folio/internal/config"
	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/utils"
	"github.com/rmorgan-dev/folio/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// clientCfg.ServerURL and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if clientCfg.ServerURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(clientCfg config.Client, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(clientCfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(clientCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	h.token = strings.TrimSpace(token)
	h.mu.Unlock()
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter]. It POSTs the registration payload to
// POST /api/auth/register and returns the created identity. The adapter's
// token is deliberately left untouched: registering does not sign the
// client in.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.Identity, error) {
	var identity models.Identity

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&identity).
		Post("/api/auth/register")
	if err != nil {
		return models.Identity{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	return identity, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/auth/login. On success the bearer token is extracted from the
// Authorization response header and stored via SetToken. Returns an error if
// the request fails, the server returns a non-2xx status, or the token cannot
// be parsed.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Identity, error) {
	var identity models.Identity

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&identity).
		Post("/api/auth/login")
	if err != nil {
		return models.Identity{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Identity{}, fmt.Errorf("login parse bearer token: %w", err)
	}

	h.SetToken(token)
	return identity, nil
}

// Logout implements [ServerAdapter]. It POSTs to POST /api/auth/logout with
// the explicitly supplied token so revocation still works after the adapter's
// own token has been cleared by an optimistic local sign-out.
func (h *httpServerAdapter) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

// Session implements [ServerAdapter]. It GETs GET /api/auth/session and
// returns the identity the installed token resolves to.
func (h *httpServerAdapter) Session(ctx context.Context) (models.Identity, error) {
	var identity models.Identity

	resp, err := h.authedRequest(ctx).
		SetResult(&identity).
		Get("/api/auth/session")
	if err != nil {
		return models.Identity{}, fmt.Errorf("session request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Identity{}, err
	}

	return identity, nil
}

// SubscribeSession implements [ServerAdapter]. It starts a goroutine that
// polls Session at the given interval and invokes fn whenever the
// authentication state changes, including the first determination. fn
// receives nil when the client is unauthenticated. A poll that fails for any
// reason other than an unauthorized response is ignored; only the server
// rejecting the token ends the session.
func (h *httpServerAdapter) SubscribeSession(interval time.Duration, fn func(identity *models.Identity)) Subscription {
	sub := &pollSubscription{stop: make(chan struct{})}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var last *models.Identity
		first := true

		check := func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()

			var current *models.Identity
			if h.Token() != "" {
				identity, err := h.Session(ctx)
				switch {
				case err == nil:
					current = &identity
				case errors.Is(err, ErrUnauthorized):
					// Revoked or expired token: the session really ended.
				default:
					// A transport failure or server error says nothing
					// about the session; keep the last known state.
					h.logger.Warn().Err(err).Msg("session poll failed")
					return
				}
			}

			if first || sessionChanged(last, current) {
				first = false
				last = current
				fn(current)
			}
		}

		check()
		for {
			select {
			case <-sub.stop:
				return
			case <-ticker.C:
				check()
			}
		}
	}()

	return sub
}

func sessionChanged(prev, next *models.Identity) bool {
	if (prev == nil) != (next == nil) {
		return true
	}
	return prev != nil && prev.ID != next.ID
}

type pollSubscription struct {
	once sync.Once
	stop chan struct{}
}

func (p *pollSubscription) Unsubscribe() {
	p.once.Do(func() { close(p.stop) })
}

// ListEntries implements [ServerAdapter]. It GETs GET /api/journal and
// decodes the response into a slice of [models.JournalEntry]. The server
// returns entries newest first; the order is preserved as-is.
func (h *httpServerAdapter) ListEntries(ctx context.Context) ([]models.JournalEntry, error) {
	resp, err := h.authedRequest(ctx).Get("/api/journal")
	if err != nil {
		return nil, fmt.Errorf("list entries request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var entries []models.JournalEntry
	if err = json.Unmarshal(resp.Body(), &entries); err != nil {
		return nil, fmt.Errorf("decode entries response: %w", err)
	}

	return entries, nil
}

// CreateEntry implements [ServerAdapter]. It POSTs the draft to
// POST /api/journal and returns the canonical stored entry.
func (h *httpServerAdapter) CreateEntry(ctx context.Context, draft models.EntryDraft) (models.JournalEntry, error) {
	var entry models.JournalEntry

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		SetResult(&entry).
		Post("/api/journal")
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("create entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.JournalEntry{}, err
	}

	return entry, nil
}

// GetEntry implements [ServerAdapter]. It GETs GET /api/journal/{id}.
func (h *httpServerAdapter) GetEntry(ctx context.Context, id uuid.UUID) (models.JournalEntry, error) {
	var entry models.JournalEntry

	resp, err := h.authedRequest(ctx).
		SetResult(&entry).
		Get("/api/journal/" + id.String())
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("get entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.JournalEntry{}, err
	}

	return entry, nil
}

// UpdateEntry implements [ServerAdapter]. It PATCHes PATCH /api/journal/{id}
// with the non-nil patch fields and returns the updated entry.
func (h *httpServerAdapter) UpdateEntry(ctx context.Context, id uuid.UUID, patch models.EntryPatch) (models.JournalEntry, error) {
	var entry models.JournalEntry

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patch).
		SetResult(&entry).
		Patch("/api/journal/" + id.String())
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("update entry request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.JournalEntry{}, err
	}

	return entry, nil
}

// DeleteEntry implements [ServerAdapter]. It sends DELETE /api/journal/{id}.
func (h *httpServerAdapter) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	resp, err := h.authedRequest(ctx).Delete("/api/journal/" + id.String())
	if err != nil {
		return fmt.Errorf("delete entry request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
