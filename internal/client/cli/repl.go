package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	Catalog(ctx context.Context) error
	Profile(ctx context.Context) error
	Orders(ctx context.Context) error
	Checkout(ctx context.Context) error
	Admin(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the storefront CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The same reader serves the interactive
// prompts inside command handlers, so piped input is consumed in order and
// never buffered away by a second reader. Unknown commands are reported back
// to the user. The loop exits on EOF or when the user types "exit" or "quit".
//
// View commands (home, catalog, profile, orders, checkout, admin) go through
// the route guard before rendering; the auth commands do not.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("store %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, catalog, profile, orders, checkout, admin, status, logout, exit")
			} else {
				printlnFn("Available commands: home, catalog, login, register, status, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "home":
			_ = a.Home(ctx)

		case "catalog":
			_ = a.Catalog(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "orders":
			_ = a.Orders(ctx)

		case "checkout":
			_ = a.Checkout(ctx)

		case "admin":
			_ = a.Admin(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
