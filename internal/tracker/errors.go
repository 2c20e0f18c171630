package tracker

import "errors"

var (
	// ErrNoUsers indicates a cycle was requested with nobody registered.
	ErrNoUsers = errors.New("no registered users")
	// ErrEmptyHandle indicates a registration without a handle.
	ErrEmptyHandle = errors.New("handle is required")
	// ErrHandleNotFound indicates the judge platform could not resolve a handle.
	ErrHandleNotFound = errors.New("handle not found")
	// ErrAlreadyRegistered indicates a duplicate registration in batch mode.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrUserNotFound indicates no stored user has the requested key.
	ErrUserNotFound = errors.New("user not found")
)
