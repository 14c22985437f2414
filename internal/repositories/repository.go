package repositories

import (
	"context"

	"cleanconnect/internal/database"
	"cleanconnect/internal/models"
)

type Repository struct {
	User    UserRepository
	Service ServiceRepository
	Booking BookingRepository
	Review  ReviewRepository
	Payment PaymentRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:    NewUserRepository(db),
		Service: NewServiceRepository(db),
		Booking: NewBookingRepository(db),
		Review:  NewReviewRepository(db),
		Payment: NewPaymentRepository(db),
	}
}

// SeedData holds the initial records for every collection.
type SeedData struct {
	Users    SeedFunc[models.User]
	Services SeedFunc[models.Service]
	Bookings SeedFunc[models.Booking]
	Reviews  SeedFunc[models.Review]
	Payments SeedFunc[models.Payment]
}

// EnsureSeed seeds each empty collection. Collections that already hold
// records are left untouched.
func (r Repository) EnsureSeed(ctx context.Context, data SeedData) error {
	if _, err := r.User.EnsureSeed(ctx, data.Users); err != nil {
		return err
	}
	if _, err := r.Service.EnsureSeed(ctx, data.Services); err != nil {
		return err
	}
	if _, err := r.Booking.EnsureSeed(ctx, data.Bookings); err != nil {
		return err
	}
	if _, err := r.Review.EnsureSeed(ctx, data.Reviews); err != nil {
		return err
	}
	if _, err := r.Payment.EnsureSeed(ctx, data.Payments); err != nil {
		return err
	}
	return nil
}
