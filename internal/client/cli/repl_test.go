package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool
	meErr    error

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Me(ctx context.Context) error {
	f.calls = append(f.calls, "me")
	return f.meErr
}
func (f *fakeExec) Ping(ctx context.Context) error { f.calls = append(f.calls, "ping"); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrints(t)

	input := strings.Join([]string{
		"help",
		"register",
		"login",
		"help",
		"me",
		"ping",
		"logout",
		"foobar",
		"exit",
		"me",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	want := []string{"register", "login", "me", "ping", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := capturePrints(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, rdr("help\nquit\n"))
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, rdr("help\nquit\n"))

	out := strings.Join(*lines, "")
	if !strings.Contains(out, "register, login, ping, exit") {
		t.Fatalf("missing logged-out help: %q", out)
	}
	if !strings.Contains(out, "me, ping, logout, exit") {
		t.Fatalf("missing logged-in help: %q", out)
	}
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{loggedIn: true, meErr: errors.New("Token expired")}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("me\n"))

	if !strings.Contains(strings.Join(*lines, ""), "Error: Token expired") {
		t.Fatalf("error not printed: %q", *lines)
	}
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("\n   \nping"))

	if len(exec.calls) != 1 || exec.calls[0] != "ping" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
