package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/violeta/pkg/gdsf"
)

// Storage persists one GDSF design document per wizard session.
// Loading a session that has no document returns (nil, nil).
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Document operations
	LoadDocument(ctx context.Context, id uuid.UUID) (*gdsf.Result, error)
	SaveDocument(ctx context.Context, id uuid.UUID, doc *gdsf.Result) error
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	ListSessions(ctx context.Context) ([]uuid.UUID, error)
}
