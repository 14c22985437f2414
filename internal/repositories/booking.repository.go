package repositories

import (
	"context"

	"cleanconnect/internal/database"
	. "cleanconnect/internal/models"
)

type BookingRepository interface {
	Store[Booking]
	ListByClient(ctx context.Context, clientID string) ([]Booking, error)
	ListByCleaner(ctx context.Context, cleanerID string) ([]Booking, error)
}

type bookingRepository struct {
	Store[Booking]
}

func NewBookingRepository(db database.DB) BookingRepository {
	return &bookingRepository{Store: NewStore[Booking](db, BookingCollection)}
}

func (r *bookingRepository) ListByClient(ctx context.Context, clientID string) ([]Booking, error) {
	return filter(ctx, r.Store, func(b Booking) bool { return b.ClientID == clientID })
}

func (r *bookingRepository) ListByCleaner(ctx context.Context, cleanerID string) ([]Booking, error) {
	return filter(ctx, r.Store, func(b Booking) bool { return b.CleanerID == cleanerID })
}
