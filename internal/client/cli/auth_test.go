package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"gamestore/internal/client/session"
	"gamestore/internal/client/validation"
	"gamestore/internal/logging"
)

func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword

	ti, pi := 0, 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if ti >= len(texts) {
			return "", io.EOF
		}
		v := texts[ti]
		ti++
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) (string, error) {
		if pi >= len(passwords) {
			return "", io.EOF
		}
		v := passwords[pi]
		pi++
		return v, nil
	}

	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeFacade struct {
	loginEmail string
	loginPass  string
	loginErr   error

	registerIn  validation.RegisterInput
	registerErr error

	logoutCalled bool
	logoutErr    error
}

func (f *fakeFacade) Login(_ context.Context, email, password string) error {
	f.loginEmail, f.loginPass = email, password
	return f.loginErr
}

func (f *fakeFacade) Register(_ context.Context, in validation.RegisterInput) error {
	f.registerIn = in
	return f.registerErr
}

func (f *fakeFacade) Logout(_ context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}

func testApp(f *fakeFacade) *App {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return &App{
		facade: f,
		store:  session.NewStore(nil, session.NewMemoryStorage(), logger),
	}
}

func TestLogin_Success(t *testing.T) {
	stubInputs(t, []string{"Alice@Example.com"}, []string{"secret123"})

	f := &fakeFacade{}
	a := testApp(f)

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginEmail != "alice@example.com" {
		t.Fatalf("email not normalized: %q", f.loginEmail)
	}
	if f.loginPass != "secret123" {
		t.Fatalf("password mismatch: %q", f.loginPass)
	}
}

func TestLogin_ValidationFailureSkipsFacade(t *testing.T) {
	stubInputs(t, []string{"not-an-email"}, []string{"secret123"})

	f := &fakeFacade{}
	a := testApp(f)

	err := a.Login(context.Background())
	if err == nil {
		t.Fatalf("want validation error")
	}
	var v validation.Violations
	if !errors.As(err, &v) {
		t.Fatalf("want Violations, got %T", err)
	}
	if f.loginEmail != "" {
		t.Fatalf("facade must not be called on invalid input")
	}
}

func TestLogin_FacadeErrorPropagates(t *testing.T) {
	stubInputs(t, []string{"alice@example.com"}, []string{"secret123"})

	f := &fakeFacade{loginErr: errors.New("backend down")}
	a := testApp(f)

	if err := a.Login(context.Background()); err == nil {
		t.Fatalf("want error from facade")
	}
}

func TestRegister_Success(t *testing.T) {
	stubInputs(t, []string{"Bob Example", "bob@example.com"}, []string{"Abcdef12", "Abcdef12"})

	f := &fakeFacade{}
	a := testApp(f)

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if f.registerIn.Email != "bob@example.com" {
		t.Fatalf("email mismatch: %q", f.registerIn.Email)
	}
	if f.registerIn.FullName != "Bob Example" {
		t.Fatalf("full name mismatch: %q", f.registerIn.FullName)
	}
}

func TestRegister_PasswordMismatchSkipsFacade(t *testing.T) {
	stubInputs(t, []string{"Bob Example", "bob@example.com"}, []string{"Abcdef12", "Abcdef13"})

	f := &fakeFacade{}
	a := testApp(f)

	if err := a.Register(context.Background()); err == nil {
		t.Fatalf("want validation error")
	}
	if f.registerIn.Email != "" {
		t.Fatalf("facade must not be called on mismatched passwords")
	}
}

func TestLogout(t *testing.T) {
	f := &fakeFacade{}
	a := testApp(f)

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !f.logoutCalled {
		t.Fatalf("facade Logout not called")
	}
}

func TestLogout_ErrorPropagates(t *testing.T) {
	f := &fakeFacade{logoutErr: errors.New("clear failed")}
	a := testApp(f)

	if err := a.Logout(context.Background()); err == nil {
		t.Fatalf("want error from facade")
	}
}
