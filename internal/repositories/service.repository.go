package repositories

import (
	"context"

	"cleanconnect/internal/database"
	. "cleanconnect/internal/models"
)

type ServiceRepository interface {
	Store[Service]
	ListByCleaner(ctx context.Context, cleanerID string) ([]Service, error)
}

type serviceRepository struct {
	Store[Service]
}

func NewServiceRepository(db database.DB) ServiceRepository {
	return &serviceRepository{Store: NewStore[Service](db, ServiceCollection)}
}

func (r *serviceRepository) ListByCleaner(ctx context.Context, cleanerID string) ([]Service, error) {
	return filter(ctx, r.Store, func(s Service) bool { return s.CleanerID == cleanerID })
}

// filter lists a collection keeping the records match accepts, in order.
func filter[T Entity](ctx context.Context, store Store[T], match func(T) bool) ([]T, error) {
	items, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}
