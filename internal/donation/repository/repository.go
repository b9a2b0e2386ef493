package repository

import (
	"context"
	"errors"

	"github.com/donation-inventory/api/internal/donation"
)

var (
	ErrNotFound = errors.New("donation not found")
)

// Repository is the set of storage operations available inside a session.
type Repository interface {
	List(ctx context.Context) ([]*donation.Donation, error)
	Get(ctx context.Context, id int64) (*donation.Donation, error)
	// Create persists d and sets d.ID to the id assigned by the store.
	Create(ctx context.Context, d *donation.Donation) error
	// Save overwrites the stored record with the same id.
	Save(ctx context.Context, d *donation.Donation) error
	Delete(ctx context.Context, id int64) error
}

// Session is a Repository bound to one scoped store connection.
// Close must be called exactly once when the caller is done.
type Session interface {
	Repository
	Close()
}

// Store opens sessions against a backing database.
type Store interface {
	Session(ctx context.Context) (Session, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	// Name is the driver name reported by readiness checks.
	Name() string
}
