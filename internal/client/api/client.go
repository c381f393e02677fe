// Package api wraps the storefront backend's REST surface for the client.
//
// All endpoints live under <base>/api/v1. Authentication headers and the
// one-shot refresh-on-401 cycle are the Transport's job; the Client only
// shapes requests and decodes responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gamestore/internal/client/models"
	"gamestore/internal/client/validation"
	"gamestore/internal/logging"
)

// AuthResponse pairs the authenticated user with the freshly issued tokens.
type AuthResponse struct {
	User   *models.User
	Tokens *models.TokenPair
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// New builds a Client rooted at baseURL (without the /api/v1 suffix).
func New(baseURL string, transport http.RoundTripper, timeout time.Duration, logger logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		logger: logger,
	}
}

// Login exchanges credentials for a token pair, then immediately fetches the
// user record with the new access token.
//
// The backend implements the OAuth2 password flow, so the request is
// form-encoded and the login identifier goes under "username", not "email".
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	tokens, err := c.tokenResponse(req, "Incorrect email or password")
	if err != nil {
		return nil, err
	}
	return c.authResponse(ctx, tokens)
}

// Register submits the registration payload as JSON, then fetches the user
// record the same way Login does. The backend auto-logs-in new users.
func (c *Client) Register(ctx context.Context, in validation.RegisterInput) (*AuthResponse, error) {
	payload, err := json.Marshal(map[string]string{
		"email":     in.Email,
		"password":  in.Password,
		"full_name": in.FullName,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/register", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	tokens, err := c.tokenResponse(req, "Could not create the account")
	if err != nil {
		return nil, err
	}
	return c.authResponse(ctx, tokens)
}

// Refresh exchanges a refresh token for a new token pair. Failures wrap
// ErrRefreshFailed; callers must then discard the whole session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrRefreshFailed, responseMessage(resp, "invalid refresh token"))
	}

	var tokens models.TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}
	return &tokens, nil
}

// CurrentUser fetches the user record for the access token currently held by
// the session (attached by the Transport).
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	return c.fetchUser(ctx, "")
}

// GamesQuery narrows and pages the public catalog listing.
type GamesQuery struct {
	Search string
	Skip   int
	Limit  int
}

// ListGames fetches a page of the game catalog. The endpoint is public; the
// Transport still attaches the bearer token when a session exists.
func (c *Client) ListGames(ctx context.Context, q GamesQuery) (*models.GameList, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Skip > 0 {
		query.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	endpoint := c.baseURL + "/games"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: responseMessage(resp, "could not load the catalog")}
	}

	var list models.GameList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding catalog response: %w", err)
	}
	return &list, nil
}

// tokenResponse executes an auth request and decodes the issued token pair.
// Any non-2xx status is an AuthError carrying the backend's message.
func (c *Client) tokenResponse(req *http.Request, fallback string) (*models.TokenPair, error) {
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AuthError{Status: resp.StatusCode, Message: responseMessage(resp, fallback)}
	}

	var tokens models.TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}
	if !tokens.IsBearer() {
		return nil, fmt.Errorf("unsupported token type %q", tokens.TokenType)
	}
	return &tokens, nil
}

func (c *Client) authResponse(ctx context.Context, tokens *models.TokenPair) (*AuthResponse, error) {
	user, err := c.fetchUser(ctx, tokens.AccessToken)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user, Tokens: tokens}, nil
}

// fetchUser gets /auth/me. With a non-empty token the Authorization header is
// set explicitly: right after login the session store does not hold the new
// pair yet, so the Transport must not attach the stale one.
func (c *Client) fetchUser(ctx context.Context, token string) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Message: responseMessage(resp, "could not load the user profile")}
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decoding user response: %w", err)
	}
	return &user, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	return resp, nil
}
