// Package store provides persistence for tracked users.
package store

import (
	"context"

	"github.com/ashureev/boj-daily/internal/domain"
)

// Repository defines the interface for persisting user records.
type Repository interface {
	// ListUsers returns every decodable user in registration order. Records
	// that fail to decode or validate are logged and skipped.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// GetUser retrieves a user by storage key, or nil when absent.
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// UpsertUser creates or replaces a user record, keeping its position in
	// registration order when it already exists.
	UpsertUser(ctx context.Context, user *domain.User) error

	// SaveUsers writes back a whole population in one transaction. Users
	// removed since they were read are not recreated.
	SaveUsers(ctx context.Context, users []*domain.User) error

	// DeleteUser removes a user and reports whether one existed.
	DeleteUser(ctx context.Context, id string) (bool, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
