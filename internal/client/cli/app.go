// Package cli implements the interactive storefront client: a REPL whose
// commands map to the views of the web storefront, with protected views gated
// by the route guard.
package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"gamestore/internal/client/api"
	"gamestore/internal/client/config"
	"gamestore/internal/client/guard"
	"gamestore/internal/client/session"
	"gamestore/internal/client/validation"
	"gamestore/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionFacade is the slice of the session facade the commands need.
// The real session.Facade satisfies it; tests provide a stub.
type sessionFacade interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, in validation.RegisterInput) error
	Logout(ctx context.Context) error
}

type App struct {
	config  *config.Config
	store   *session.Store
	facade  sessionFacade
	guard   *guard.Guard
	gateway *api.Client
	reader  *bufio.Reader

	// currentView is the path of the view being shown; the facade's
	// post-auth navigation lands here.
	currentView string

	closeStorage func() error
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	transport := api.NewTransport(http.DefaultTransport, logger)
	gateway := api.New(c.APIBaseURL, transport, c.RequestTimeout, logger)

	var storage session.Storage
	closeStorage := func() error { return nil }
	if c.Ephemeral {
		storage = session.NewMemoryStorage()
	} else {
		sqliteStorage, err := session.OpenSQLite(ctx, c.SessionDBPath)
		if err != nil {
			log.Printf("error initializing session database: %s", err.Error())
			return nil, err
		}
		storage = sqliteStorage
		closeStorage = sqliteStorage.Close
	}

	store := session.NewStore(gateway, storage, logger)
	transport.Bind(store)

	a := &App{
		config:       c,
		store:        store,
		guard:        guard.New(store, guard.DefaultRules),
		gateway:      gateway,
		reader:       bufio.NewReader(os.Stdin),
		currentView:  guard.HomePath,
		closeStorage: closeStorage,
	}
	a.facade = session.NewFacade(store, a)
	return a, nil
}

// Navigate implements session.Navigator.
func (a *App) Navigate(path string) {
	a.currentView = path
}

func (a *App) Run(ctx context.Context) {
	defer a.closeStorage()

	if err := a.store.Rehydrate(ctx); err != nil {
		log.Printf("starting without a persisted session: %s", err.Error())
	}
	if u := a.store.CurrentUser(); u != nil {
		log.Printf("Welcome back, %s", u.FullName)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.store.Authenticated()
}

func (a *App) getStatus() string {
	if u := a.store.CurrentUser(); u != nil {
		return "(" + u.Email + ")"
	}
	return ""
}
