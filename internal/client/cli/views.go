package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gamestore/internal/client/api"
	"gamestore/internal/client/guard"
)

// openView is the single entry point for every view: the guard decides, and
// only a granted view renders. Denied views redirect to the safe default.
func (a *App) openView(ctx context.Context, path string, render func(ctx context.Context) error) error {
	decision := a.guard.Check(path)
	switch decision.State {
	case guard.StatePending:
		fmt.Println("Session is still loading, try again.")
		return nil
	case guard.StateDenied:
		fmt.Println("You need to be signed in to open this page.")
		a.Navigate(decision.RedirectTo)
		return nil
	}

	a.Navigate(path)
	return render(ctx)
}

func (a *App) Home(ctx context.Context) error {
	return a.openView(ctx, "/", func(context.Context) error {
		fmt.Println("GameStore — your favorite games, one command away.")
		fmt.Println("Type 'catalog' to browse or 'help' for all commands.")
		return nil
	})
}

// Catalog lists the public game catalog. No authentication required; the
// bearer token is still attached when a session exists.
func (a *App) Catalog(ctx context.Context) error {
	return a.openView(ctx, "/catalog", func(ctx context.Context) error {
		search, err := getSimpleText(a.reader, "Search (empty for all)", os.Stdout)
		if err != nil {
			return err
		}

		list, err := a.gateway.ListGames(ctx, api.GamesQuery{Search: search, Limit: 20})
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}

		if len(list.Items) == 0 {
			fmt.Println("No games found.")
			return nil
		}
		for _, g := range list.Items {
			fmt.Printf("  %-40s $%s\n", g.Name, g.Price)
		}
		fmt.Printf("Showing %d of %d games\n", len(list.Items), list.Total)
		return nil
	})
}

func (a *App) Profile(ctx context.Context) error {
	return a.openView(ctx, "/profile", func(ctx context.Context) error {
		u := a.store.CurrentUser()
		fmt.Printf("  Name:    %s\n", u.FullName)
		fmt.Printf("  Email:   %s\n", u.Email)
		fmt.Printf("  Role:    %s\n", u.Role)
		fmt.Printf("  Since:   %s\n", u.CreatedAt.Format("2006-01-02"))
		return nil
	})
}

func (a *App) Orders(ctx context.Context) error {
	return a.openView(ctx, "/orders", func(context.Context) error {
		fmt.Println("You have no orders yet.")
		return nil
	})
}

func (a *App) Checkout(ctx context.Context) error {
	return a.openView(ctx, "/checkout", func(context.Context) error {
		fmt.Println("Your cart is empty.")
		return nil
	})
}

// Admin is gated on the admin role, evaluated only after authentication.
func (a *App) Admin(ctx context.Context) error {
	return a.openView(ctx, "/admin", func(context.Context) error {
		fmt.Println("Admin dashboard — catalog management is done via the web UI.")
		return nil
	})
}

// Status shows the current session state, including the access token's
// expiry read from its claims.
func (a *App) Status(ctx context.Context) error {
	state := a.store.State()
	if !state.Authenticated {
		fmt.Println("Not signed in.")
		return nil
	}

	fmt.Printf("Signed in as %s (%s)\n", state.User.Email, state.User.Role)
	if exp, ok := a.store.AccessTokenExpiry(); ok {
		if remaining := time.Until(exp); remaining > 0 {
			fmt.Printf("Access token expires in %s\n", remaining.Round(time.Second))
		} else {
			fmt.Println("Access token expired; it will be refreshed on the next request.")
		}
	}
	return nil
}
