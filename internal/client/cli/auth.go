package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"

	"gamestore/internal/client/validation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, validates them locally and, only if they
// pass, hands them to the session facade. On success the facade navigates
// home; on failure the form stays open and the backend's message is shown.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}

	in, err := validation.ValidateLogin(validation.LoginInput{Email: email, Password: password})
	if err != nil {
		printViolations(err)
		return err
	}

	if err := a.facade.Login(ctx, in.Email, in.Password); err != nil {
		log.Printf("Login unsuccessful: %s", a.store.State().Err)
		return err
	}

	fmt.Println("Logged in.")
	return nil
}

// Register prompts for the registration form, validates it locally and
// submits it. Field violations are printed per field and nothing is sent.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}

	in, err := validation.ValidateRegister(validation.RegisterInput{
		FullName:        fullName,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		printViolations(err)
		return err
	}

	if err := a.facade.Register(ctx, in); err != nil {
		log.Printf("Registration unsuccessful: %s", a.store.State().Err)
		return err
	}

	fmt.Println("Account created, you are now logged in.")
	return nil
}

// Logout clears the session. Idempotent; safe to call when logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.facade.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func printViolations(err error) {
	var v validation.Violations
	if !errors.As(err, &v) {
		log.Printf("error: %v", err)
		return
	}

	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Printf("  %s: %s\n", f, v[f])
	}
}
