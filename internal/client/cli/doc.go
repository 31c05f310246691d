// Package cli provides the interactive TruFund command-line client.
//
// It wires configuration, the local session database, the API client and the
// interaction flows into an interactive REPL. Typical flow: restore a
// persisted session, start a background connectivity watcher, and execute
// user commands.
//
// Key features:
//   - SignUp (registration form, emailed code, activation)
//   - Login / Logout / WhoAmI
//   - Loan requests
//   - Ping (backend reachability)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
