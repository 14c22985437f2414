package repositories

import (
	"context"

	"cleanconnect/internal/database"
	. "cleanconnect/internal/models"
)

type PaymentRepository interface {
	Store[Payment]
	ListPending(ctx context.Context) ([]Payment, error)
	FindPending(ctx context.Context, cleanerID string, paymentType PaymentType) (Payment, bool, error)
}

type paymentRepository struct {
	Store[Payment]
}

func NewPaymentRepository(db database.DB) PaymentRepository {
	return &paymentRepository{Store: NewStore[Payment](db, PaymentCollection)}
}

func (r *paymentRepository) ListPending(ctx context.Context) ([]Payment, error) {
	return filter(ctx, r.Store, func(p Payment) bool { return p.IsPending() })
}

func (r *paymentRepository) FindPending(
	ctx context.Context,
	cleanerID string,
	paymentType PaymentType,
) (Payment, bool, error) {
	pending, err := filter(ctx, r.Store, func(p Payment) bool {
		return p.IsPending() && p.CleanerID == cleanerID && p.Type == paymentType
	})
	if err != nil || len(pending) == 0 {
		return Payment{}, false, err
	}
	return pending[0], true, nil
}
