package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"gamestore/internal/logging"

	"github.com/google/uuid"
)

// SessionSource supplies the current access token and performs a full refresh
// cycle on demand. The session store implements it.
type SessionSource interface {
	// AccessToken returns the current access token, or "" when logged out.
	// The transport reads it fresh on every request; it is never cached here.
	AccessToken() string

	// RefreshSession exchanges the stored refresh token for a new pair.
	// On failure the implementation must clear the session before returning.
	RefreshSession(ctx context.Context) error
}

// Transport decorates an http.RoundTripper with the storefront's
// authentication discipline:
//
//   - every request carries an X-Request-Id;
//   - every request without an explicit Authorization header gets the current
//     access token as a bearer credential, read from the session at call time;
//   - a 401 on anything but /auth/refresh triggers at most one refresh cycle
//     followed by at most one re-issue of the original request.
//
// The refresh and the retry happen inside a single RoundTrip invocation on a
// clone of the request, so concurrent requests keep independent retry
// accounting and cannot suppress each other's retries.
type Transport struct {
	base   http.RoundTripper
	logger logging.Logger

	mu      sync.RWMutex
	session SessionSource
}

func NewTransport(base http.RoundTripper, logger logging.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, logger: logger}
}

// Bind attaches the session source. Called once during app wiring; the
// gateway client and the session store reference each other, so the source
// cannot be a constructor argument.
func (t *Transport) Bind(s SessionSource) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session = s
}

func (t *Transport) source() SessionSource {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.session
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	src := t.source()

	out := req.Clone(req.Context())
	if out.Header.Get("X-Request-Id") == "" {
		out.Header.Set("X-Request-Id", uuid.NewString())
	}
	explicitAuth := out.Header.Get("Authorization") != ""
	if !explicitAuth && src != nil {
		if token := src.AccessToken(); token != "" {
			out.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	if src == nil || isRefreshCall(out) {
		return resp, nil
	}
	if req.Body != nil && req.GetBody == nil {
		// Body already consumed and not replayable.
		return resp, nil
	}

	if err := src.RefreshSession(req.Context()); err != nil {
		t.logger.Warn(req.Context(), "token refresh failed, session expired", "err", err)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	token := src.AccessToken()
	if token == "" {
		// Logged out while the refresh was in flight; the original 401 stands.
		return resp, nil
	}

	retry := req.Clone(req.Context())
	retry.Header = out.Header.Clone()
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("replaying request body: %w", err)
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+token)

	t.logger.Debug(req.Context(), "retrying request with refreshed token",
		"method", retry.Method, "path", retry.URL.Path)

	resp.Body.Close()
	return t.base.RoundTrip(retry)
}

func isRefreshCall(req *http.Request) bool {
	return strings.HasSuffix(req.URL.Path, "/auth/refresh")
}
