package errors

import "errors"

// Startup errors.
var (
	ErrMissingConfig = errors.New("missing required environment variables")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Request errors.
var (
	ErrMissingCode = errors.New("missing authorization code")
)

// Graph API errors.
var (
	ErrAPIRequest     = errors.New("API request failed")
	ErrAPIResponse    = errors.New("unexpected API response")
	ErrNoPageAccounts = errors.New("no managed pages on account")
)
