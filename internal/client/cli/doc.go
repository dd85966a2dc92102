// Package cli provides the interactive Gymmi command-line client.
//
// It wires configuration, the local token store, the HTTP API client, the
// auth service and the reachability monitor, then runs a small REPL.
// Typical flow: restore the previous session from the stored token, then
// let the user register, log in, inspect the profile or log out.
//
// Key features:
//   - Register with an optional fitness profile
//   - Login / Logout
//   - Show and refresh the current profile
//   - Session, token and connectivity status
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
