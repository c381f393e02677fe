// Package session holds the single source of truth for the current user
// identity and token pair, persists the durable subset of that state, and
// exposes the operations application surfaces use to change it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"gamestore/internal/client/api"
	"gamestore/internal/client/models"
	"gamestore/internal/client/validation"
	"gamestore/internal/logging"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoRefreshToken is returned by RefreshSession when the store holds no
// refresh token; no network call is made in that case.
var ErrNoRefreshToken = errors.New("no refresh token available")

// Gateway is the backend surface the store drives.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, in validation.RegisterInput) (*api.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

// State is a consistent snapshot of the session for observers.
//
// Invariant: Authenticated is true exactly when both User and Tokens are set;
// no snapshot ever shows one without the other.
type State struct {
	User          *models.User
	Tokens        *models.TokenPair
	Authenticated bool
	Loading       bool
	Err           string
}

// Store is the session state machine. It is constructed once and injected
// wherever session state is needed; there is no package-level instance.
//
// Each mutation happens atomically under the store's lock. Overlapping
// operations are not serialized: two concurrent logins race and the last
// gateway response to be applied wins, matching the storefront's documented
// behavior.
type Store struct {
	gateway Gateway
	storage Storage
	logger  logging.Logger

	mu            sync.RWMutex
	user          *models.User
	tokens        *models.TokenPair
	authenticated bool
	loading       bool
	lastError     string
	hydrated      bool
}

func NewStore(gateway Gateway, storage Storage, logger logging.Logger) *Store {
	return &Store{gateway: gateway, storage: storage, logger: logger}
}

// Rehydrate loads the persisted {user, tokens, authenticated} subset. It must
// run before the first render; until it has, the route guard reports pending.
// An absent, partial or unreadable record leaves the store empty.
func (s *Store) Rehydrate(ctx context.Context) error {
	rec, err := s.storage.Load(ctx)

	s.mu.Lock()
	s.hydrated = true
	if err == nil && rec != nil && rec.Authenticated && rec.User != nil && rec.Tokens != nil {
		s.user = rec.User
		s.tokens = rec.Tokens
		s.authenticated = true
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn(ctx, "could not load persisted session, starting empty", "err", err)
		return err
	}

	if exp, ok := s.AccessTokenExpiry(); ok && exp.Before(time.Now()) {
		s.logger.Info(ctx, "rehydrated session has an expired access token, will refresh on first use")
	}
	return nil
}

// Login runs the full login flow: validation is assumed done by the caller.
// On failure the prior session stays untouched, the error message is exposed
// in State().Err, and the failure is propagated.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.begin()

	resp, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		s.fail(ctx, err, "Could not sign in")
		return err
	}

	s.apply(ctx, resp)
	s.logger.Info(ctx, "logged in", "user", resp.User.Email)
	return nil
}

// Register mirrors Login using the registration gateway call.
func (s *Store) Register(ctx context.Context, in validation.RegisterInput) error {
	s.begin()

	resp, err := s.gateway.Register(ctx, in)
	if err != nil {
		s.fail(ctx, err, "Could not create the account")
		return err
	}

	s.apply(ctx, resp)
	s.logger.Info(ctx, "registered", "user", resp.User.Email)
	return nil
}

// Logout clears the session synchronously. No network call; idempotent.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.tokens = nil
	s.authenticated = false
	s.lastError = ""
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear persisted session", "err", err)
		return err
	}
	return nil
}

// RefreshSession exchanges the stored refresh token for a new pair. Only the
// token pair is replaced; user and authenticated flag stay as they are. If
// the backend rejects the refresh token, the whole session is cleared before
// the failure is propagated, never left half-applied.
func (s *Store) RefreshSession(ctx context.Context) error {
	s.mu.RLock()
	var refreshToken string
	if s.tokens != nil {
		refreshToken = s.tokens.RefreshToken
	}
	s.mu.RUnlock()

	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	pair, err := s.gateway.Refresh(ctx, refreshToken)
	if err != nil {
		s.logger.Warn(ctx, "session refresh failed, logging out", "err", err)
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			s.logger.Error(ctx, "logout after failed refresh also failed", "err", logoutErr)
		}
		return err
	}

	s.mu.Lock()
	if s.user == nil {
		// Logged out while the refresh was in flight; discard the new pair.
		s.mu.Unlock()
		return nil
	}
	s.tokens = pair
	rec := s.record()
	s.mu.Unlock()

	s.persist(ctx, rec)
	return nil
}

// State returns a snapshot taken under the lock.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		User:          s.user,
		Tokens:        s.tokens,
		Authenticated: s.authenticated,
		Loading:       s.loading,
		Err:           s.lastError,
	}
}

func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// AccessToken implements api.SessionSource. Read fresh on every request.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil {
		return ""
	}
	return s.tokens.AccessToken
}

// ClearError drops the last error message, e.g. when a form is reopened.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
}

// AccessTokenExpiry reports the exp claim of the current access token. The
// token is decoded without signature verification: the client has no key and
// only uses the claim for display and logging, never for authorization.
func (s *Store) AccessTokenExpiry() (time.Time, bool) {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// begin marks an operation in flight and clears the previous error in the
// same mutation.
func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

// fail records the backend's message (or the fallback) and ends the loading
// state. The persisted subset is untouched by failures.
func (s *Store) fail(ctx context.Context, err error, fallback string) {
	msg := fallback
	var authErr *api.AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		msg = authErr.Message
	}

	s.mu.Lock()
	s.loading = false
	s.lastError = msg
	s.mu.Unlock()

	s.logger.Warn(ctx, "auth operation failed", "err", err)
}

// apply installs a successful auth response in one mutation and persists the
// durable subset.
func (s *Store) apply(ctx context.Context, resp *api.AuthResponse) {
	s.mu.Lock()
	s.user = resp.User
	s.tokens = resp.Tokens
	s.authenticated = true
	s.loading = false
	rec := s.record()
	s.mu.Unlock()

	s.persist(ctx, rec)
}

// record snapshots the durable subset. Caller must hold the lock.
func (s *Store) record() *Record {
	return &Record{
		User:          s.user,
		Tokens:        s.tokens,
		Authenticated: s.authenticated,
	}
}

func (s *Store) persist(ctx context.Context, rec *Record) {
	if err := s.storage.Save(ctx, rec); err != nil {
		s.logger.Error(ctx, "failed to persist session", "err", err)
	}
}
