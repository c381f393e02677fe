package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Home(ctx context.Context) error {
	f.calls = append(f.calls, "home")
	return nil
}
func (f *fakeExec) Catalog(ctx context.Context) error {
	f.calls = append(f.calls, "catalog")
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeExec) Orders(ctx context.Context) error {
	f.calls = append(f.calls, "orders")
	return nil
}
func (f *fakeExec) Checkout(ctx context.Context) error {
	f.calls = append(f.calls, "checkout")
	return nil
}
func (f *fakeExec) Admin(ctx context.Context) error {
	f.calls = append(f.calls, "admin")
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}

func TestRunREPL_CommandDispatch(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"catalog",
		"profile",
		"orders",
		"status",
		"",
		"nosuchcommand",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(input))

	want := []string{"login", "catalog", "profile", "orders", "status", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("calls mismatch at %d: got %v, want %v", i, exec.calls, want)
		}
	}
}

func TestRunREPL_QuitWithoutCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("quit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "(a@b.co)" }, bufio.NewReader(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_EOFStopsLoop(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("home\n")
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(input))

	if len(exec.calls) != 1 || exec.calls[0] != "home" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

// Commands and the prompts they trigger read from the same buffered reader,
// so a fully piped script is consumed in order.
func TestRunREPL_PipedInputSharedWithPrompts(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	origGP := getPassword
	getPassword = func(_ string, _ io.Writer) (string, error) { return "secret123", nil }
	t.Cleanup(func() { getPassword = origGP })

	input := strings.NewReader("login\nalice@example.com\nexit\n")
	reader := bufio.NewReader(input)

	f := &fakeFacade{}
	a := testApp(f)
	a.reader = reader

	runREPL(context.Background(), a, a.getStatus, reader)

	if f.loginEmail != "alice@example.com" {
		t.Fatalf("login prompt did not read from the shared reader: %q", f.loginEmail)
	}
}
