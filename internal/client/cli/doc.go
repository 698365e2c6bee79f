// Package cli provides sellerctl, the interactive seller admin client.
//
// It signs in against the backend, then runs a REPL in which sellers manage
// their own password and profile and the master account browses and
// moderates the seller directory. Results are printed as indented JSON.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
