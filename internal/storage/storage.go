// Package storage holds the session store. Sessions are ephemeral game
// state with a bounded lifetime, not durable records.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/vanyalambert/New-Harry-Potter/pkg/state"
)

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the service connection
	Close() error
}

// Storage defines the interface for session persistence
type Storage interface {
	HealthChecker
	Closer

	// SaveSession saves a session under its ID
	SaveSession(ctx context.Context, id uuid.UUID, session *state.Session) error

	// LoadSession retrieves a session by ID.
	// Returns nil if the session doesn't exist.
	LoadSession(ctx context.Context, id uuid.UUID) (*state.Session, error)

	// DeleteSession removes a session by ID
	DeleteSession(ctx context.Context, id uuid.UUID) error
}
