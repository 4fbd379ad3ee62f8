package domain

import "errors"

// Sentinel errors shared by the repository layer and its callers.
var (
	// ErrStoreUnavailable is returned by every repository method when the
	// database connection could not be established. Handlers degrade
	// instead of failing the request.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so the login page cannot be used to probe for accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNotFound = errors.New("record not found")
)
