// Package validation checks the shape of login and registration input before
// anything is sent to the backend. All checks are pure functions of their
// input; a failed check never results in a network call.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Violations maps a field name to a human-readable message describing why the
// field was rejected. It implements error so callers can propagate it, but
// UIs are expected to inspect the map and render messages per field.
type Violations map[string]string

func (v Violations) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed")
	for _, f := range fields {
		b.WriteString("; ")
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(v[f])
	}
	return b.String()
}

// LoginInput is the candidate payload for a login attempt.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput is the candidate payload for a registration attempt.
// ConfirmPassword never leaves the client.
type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateLogin returns the normalized input (trimmed, email lowercased) or
// the per-field violations.
func ValidateLogin(in LoginInput) (LoginInput, error) {
	out := LoginInput{
		Email:    normalizeEmail(in.Email),
		Password: in.Password,
	}

	v := Violations{}
	checkEmail(v, out.Email)
	switch {
	case out.Password == "":
		v["password"] = "Password is required"
	case len(out.Password) < 6:
		v["password"] = "Password must be at least 6 characters"
	}

	if len(v) > 0 {
		return LoginInput{}, v
	}
	return out, nil
}

// ValidateRegister returns the normalized input or the per-field violations.
// A password/confirmation mismatch is reported on the confirmation field, not
// on the password itself.
func ValidateRegister(in RegisterInput) (RegisterInput, error) {
	out := RegisterInput{
		FullName:        strings.TrimSpace(in.FullName),
		Email:           normalizeEmail(in.Email),
		Password:        in.Password,
		ConfirmPassword: in.ConfirmPassword,
	}

	v := Violations{}
	switch {
	case out.FullName == "":
		v["full_name"] = "Full name is required"
	case len(out.FullName) < 3:
		v["full_name"] = "Full name must be at least 3 characters"
	case len(out.FullName) > 100:
		v["full_name"] = "Full name cannot exceed 100 characters"
	}

	checkEmail(v, out.Email)

	switch {
	case out.Password == "":
		v["password"] = "Password is required"
	case len(out.Password) < 8:
		v["password"] = "Password must be at least 8 characters"
	case !hasRequiredClasses(out.Password):
		v["password"] = "Password must contain at least one uppercase letter, one lowercase letter and one digit"
	}

	switch {
	case out.ConfirmPassword == "":
		v["confirmPassword"] = "Please confirm your password"
	case out.ConfirmPassword != out.Password:
		v["confirmPassword"] = "Passwords do not match"
	}

	if len(v) > 0 {
		return RegisterInput{}, v
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(v Violations, email string) {
	switch {
	case email == "":
		v["email"] = "Email is required"
	case !emailRe.MatchString(email):
		v["email"] = "Invalid email address"
	}
}

func hasRequiredClasses(password string) bool {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
