// Package guard decides whether protected views may render based on the
// current session state.
//
// This is client-side defense only: it keeps the UI honest but proves
// nothing. Every protected backend endpoint enforces authorization itself.
package guard

import (
	"strings"

	"gamestore/internal/client/models"
)

// State is the guard's decision about a view.
type State int

const (
	// StatePending means the session has not been rehydrated yet; protected
	// content must not render.
	StatePending State = iota
	// StateDenied means rehydrated but unauthenticated, or the role
	// requirement is not met; redirect to the safe default view.
	StateDenied
	// StateGranted means authenticated and any role requirement satisfied.
	StateGranted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateDenied:
		return "denied"
	case StateGranted:
		return "granted"
	}
	return "unknown"
}

// Session is the slice of session state the guard reads.
type Session interface {
	Hydrated() bool
	Authenticated() bool
	CurrentUser() *models.User
}

// Rule declares a protected path prefix. AdminOnly rules additionally require
// the admin role, checked only after authentication is confirmed.
type Rule struct {
	Prefix    string
	AdminOnly bool
}

// DefaultRules mirrors the storefront's protected views.
var DefaultRules = []Rule{
	{Prefix: "/profile"},
	{Prefix: "/orders"},
	{Prefix: "/checkout"},
	{Prefix: "/admin", AdminOnly: true},
}

// Decision is the outcome of a Check. RedirectTo is set only when denied.
type Decision struct {
	State      State
	RedirectTo string
}

// HomePath is the safe default view denied navigations land on.
const HomePath = "/"

type Guard struct {
	session Session
	rules   []Rule
}

func New(session Session, rules []Rule) *Guard {
	return &Guard{session: session, rules: rules}
}

// Check is the single authorization entry point, invoked at every protected
// view before it renders. Unprotected paths are always granted.
func (g *Guard) Check(path string) Decision {
	rule, protected := g.match(path)
	if !protected {
		return Decision{State: StateGranted}
	}

	if !g.session.Hydrated() {
		return Decision{State: StatePending}
	}
	if !g.session.Authenticated() {
		return Decision{State: StateDenied, RedirectTo: HomePath}
	}
	if rule.AdminOnly && !g.session.CurrentUser().IsAdmin() {
		return Decision{State: StateDenied, RedirectTo: HomePath}
	}
	return Decision{State: StateGranted}
}

func (g *Guard) match(path string) (Rule, bool) {
	for _, r := range g.rules {
		if strings.HasPrefix(path, r.Prefix) {
			return r, true
		}
	}
	return Rule{}, false
}
