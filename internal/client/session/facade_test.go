package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamestore/internal/client/validation"
)

type fakeNavigator struct {
	paths []string
}

func (f *fakeNavigator) Navigate(path string) { f.paths = append(f.paths, path) }

func TestFacadeLogin_NavigatesHomeOnSuccess(t *testing.T) {
	gw := &fakeGateway{loginResp: authResponse("alice@example.com", "T1", "R1")}
	nav := &fakeNavigator{}
	f := NewFacade(NewStore(gw, NewMemoryStorage(), testLogger()), nav)

	require.NoError(t, f.Login(context.Background(), "alice@example.com", "secret123"))
	assert.Equal(t, []string{"/"}, nav.paths)
}

func TestFacadeLogin_StaysPutOnFailure(t *testing.T) {
	gw := &fakeGateway{loginErr: errors.New("boom")}
	nav := &fakeNavigator{}
	f := NewFacade(NewStore(gw, NewMemoryStorage(), testLogger()), nav)

	require.Error(t, f.Login(context.Background(), "alice@example.com", "wrong1"))
	assert.Empty(t, nav.paths, "failed login must not navigate")
}

func TestFacadeRegister_NavigatesHomeOnSuccess(t *testing.T) {
	gw := &fakeGateway{registerResp: authResponse("bob@example.com", "T1", "R1")}
	nav := &fakeNavigator{}
	f := NewFacade(NewStore(gw, NewMemoryStorage(), testLogger()), nav)

	err := f.Register(context.Background(), validation.RegisterInput{
		Email: "bob@example.com", Password: "Abcdef12", ConfirmPassword: "Abcdef12", FullName: "Bob Example",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/"}, nav.paths)
}

func TestFacadeLogout_AlwaysNavigatesHome(t *testing.T) {
	gw := &fakeGateway{loginResp: authResponse("alice@example.com", "T1", "R1")}
	nav := &fakeNavigator{}
	store := NewStore(gw, NewMemoryStorage(), testLogger())
	f := NewFacade(store, nav)
	require.NoError(t, store.Login(context.Background(), "alice@example.com", "secret123"))

	require.NoError(t, f.Logout(context.Background()))
	assert.Equal(t, []string{"/"}, nav.paths)
	assert.False(t, store.Authenticated())
}
