// Package cli is the interactive libhub command-line client.
//
// NewApp opens the local session database, restores a saved login and
// wires the API services; Run starts the REPL and blocks until the user
// exits. Library and admin commands need a session; a 401 from the server
// ends it.
package cli
