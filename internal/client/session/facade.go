package session

import (
	"context"

	"gamestore/internal/client/validation"
)

// Navigator switches the application to the view addressed by path.
type Navigator interface {
	Navigate(path string)
}

// Facade layers the application's navigation flow on top of the Store's pure
// state contract: login and register go home on success, logout goes home
// unconditionally. Kept separate so the Store stays testable without a
// navigation dependency.
type Facade struct {
	store *Store
	nav   Navigator
}

func NewFacade(store *Store, nav Navigator) *Facade {
	return &Facade{store: store, nav: nav}
}

func (f *Facade) Login(ctx context.Context, email, password string) error {
	if err := f.store.Login(ctx, email, password); err != nil {
		return err
	}
	f.nav.Navigate("/")
	return nil
}

func (f *Facade) Register(ctx context.Context, in validation.RegisterInput) error {
	if err := f.store.Register(ctx, in); err != nil {
		return err
	}
	f.nav.Navigate("/")
	return nil
}

// Logout clears the session and navigates home even when clearing the
// persisted record fails; the error is still returned.
func (f *Facade) Logout(ctx context.Context) error {
	err := f.store.Logout(ctx)
	f.nav.Navigate("/")
	return err
}
