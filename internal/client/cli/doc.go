// Package cli is the terminal front end of the wisata admin client: a small
// REPL that owns the session guard, a route navigator standing in for the
// dashboard's router, and the table view driven by the remote data-table
// driver.
package cli
