package model

import "errors"

// Session error taxonomy. Classification happens once, at the upstream
// boundary; everything inward matches on these sentinels.
var (
	// ErrNoCredential: no local marker, resolved to guest with zero
	// network calls.
	ErrNoCredential = errors.New("no credential present")

	// ErrUnauthorized: upstream rejected the credential as invalid or
	// expired. Session must be cleared and the client redirected.
	ErrUnauthorized = errors.New("credential invalid or expired")

	// ErrTransient: network or server failure unrelated to credential
	// validity. Last-known identity is preserved.
	ErrTransient = errors.New("transient upstream failure")

	// ErrMutationRejected: a save/rate/chat call failed for the caller
	// only. Session state is untouched.
	ErrMutationRejected = errors.New("mutation rejected by upstream")
)
