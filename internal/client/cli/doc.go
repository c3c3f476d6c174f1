// Package cli provides the interactive command-line client for the GraphQL
// account API.
//
// It wires configuration, the GraphQL client and a small REPL. A background
// watcher pings the server and shows whether it is online in the prompt.
//
// Commands:
//   - register / login / logout
//   - me: show the account behind the current token
//   - ping
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
