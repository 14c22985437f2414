package repositories

import (
	"context"

	"cleanconnect/internal/database"
	"cleanconnect/internal/models"
)

// MutateFunc edits a loaded record in place. Returning an error aborts the
// write and the error is passed back to the caller unchanged.
type MutateFunc[T models.Entity] func(item *T) error

// SeedFunc produces the initial records of a collection. It is only called
// when the collection is empty.
type SeedFunc[T models.Entity] func() ([]T, error)

// Store is the generic keyed-record contract every collection is kept behind.
// List returns records in insertion order.
type Store[T models.Entity] interface {
	Collection() string
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, item T) (T, error)
	Mutate(ctx context.Context, id string, fn MutateFunc[T]) (T, error)
	Delete(ctx context.Context, id string) error
	EnsureSeed(ctx context.Context, seed SeedFunc[T]) (int, error)
}

// NewStore picks the backend for a collection from the configured database.
func NewStore[T models.Entity](db database.DB, collection string) Store[T] {
	if db.SQL == nil {
		return NewMemoryStore[T](collection)
	}
	return NewPostgresStore[T](db, collection)
}
