package services

import "errors"

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrMessageNotFound = errors.New("message not found")

	// ErrAccountExists is the conflict condition: a unique index on
	// username or email rejected the insert.
	ErrAccountExists = errors.New("username or email already in use")
)
