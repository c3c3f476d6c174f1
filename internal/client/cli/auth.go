package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gqlauth/internal/client/client"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in, use 'login' first")

func (a *App) readCredentials() (string, string, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", "", err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", "", err
	}

	return userName, password, nil
}

// Register prompts for a username and password and creates the account.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}

	u, err := a.api.Register(ctx, userName, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d)\n", u.Username, u.ID)
	return nil
}

// Login prompts for credentials and keeps the issued token for later calls.
// A failed login leaves the previous session untouched.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	a.token = token
	a.userName = userName
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Me prints the account behind the current token. A rejected token ends the
// local session.
func (a *App) Me(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	u, err := a.api.Me(ctx, a.token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.clearSession()
		}
		return err
	}

	printUser(a.out, u)
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return err
	}
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "pong")
	return nil
}

// Logout forgets the token. Tokens are stateless, so nothing is sent to the server.
func (a *App) Logout(context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	a.clearSession()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) clearSession() {
	a.token = ""
	a.userName = ""
}

func printUser(w io.Writer, u *client.User) {
	fmt.Fprintf(w, "id:       %d\n", u.ID)
	fmt.Fprintf(w, "username: %s\n", u.Username)
	fmt.Fprintf(w, "created:  %s\n", u.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "updated:  %s\n", u.UpdatedAt.Format(time.RFC3339))
}
