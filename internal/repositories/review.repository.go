package repositories

import (
	"context"

	"cleanconnect/internal/database"
	. "cleanconnect/internal/models"
)

type ReviewRepository interface {
	Store[Review]
	ListByCleaner(ctx context.Context, cleanerID string) ([]Review, error)
}

type reviewRepository struct {
	Store[Review]
}

func NewReviewRepository(db database.DB) ReviewRepository {
	return &reviewRepository{Store: NewStore[Review](db, ReviewCollection)}
}

func (r *reviewRepository) ListByCleaner(ctx context.Context, cleanerID string) ([]Review, error) {
	return filter(ctx, r.Store, func(review Review) bool { return review.CleanerID == cleanerID })
}
