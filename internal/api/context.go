// ABOUTME: Request context key types and constants for the api package.
// ABOUTME: Used by middleware to inject auth state and by handlers to read it.
package api

type contextKey int

const (
	// ctxIdentity holds the *session.Identity projected from the session
	// cookie. Absent when the request carries no usable session.
	ctxIdentity contextKey = iota
	// ctxProvenIdentity holds the session.Identity taken from an authorized
	// verdict. Only Require sets it, so its presence proves the check ran.
	ctxProvenIdentity
)
