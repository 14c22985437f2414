package reviewsController

import (
	"context"
	"errors"
	"math"
	"time"

	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/services"
	"cleanconnect/internal/types"
	"cleanconnect/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	BookingID string `json:"bookingId"`
	CleanerID string `json:"cleanerId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type ReviewsController struct {
	reviewRepo  repositories.ReviewRepository
	bookingRepo repositories.BookingRepository
	userRepo    repositories.UserRepository
	transaction *services.TransactionService
	clock       func() time.Time
	log         logger.Logger
}

type ReviewsControllerInterface interface {
	Create(ctx context.Context, client *models.User, req CreateReviewRequest) (models.Review, error)
}

func New(repos repositories.Repository, services services.Service) ReviewsControllerInterface {
	return &ReviewsController{
		reviewRepo:  repos.Review,
		bookingRepo: repos.Booking,
		userRepo:    repos.User,
		transaction: services.Transaction,
		clock:       services.Clock,
		log:         logger.New("reviewsController"),
	}
}

// Create stores a review for an approved booking, links it to the booking and
// refreshes the cleaner's rating, all in one unit of work.
func (rc *ReviewsController) Create(
	ctx context.Context,
	client *models.User,
	req CreateReviewRequest,
) (models.Review, error) {
	log := rc.log.TraceFromContext(ctx).Function("Create")

	req.Comment = utils.CleanText(req.Comment)
	if req.BookingID == "" || req.Rating == 0 || req.Comment == "" {
		return models.Review{}, log.ErrorWithType(types.ErrValidation, "Missing required review fields.")
	}
	if req.Rating < models.MinRating || req.Rating > models.MaxRating {
		return models.Review{}, log.ErrorWithType(types.ErrValidation, "Rating must be between 1 and 5.", "rating", req.Rating)
	}

	review := models.Review{
		ID:              uuid.NewString(),
		BookingID:       req.BookingID,
		ClientID:        client.ID,
		AuthorName:      client.Name,
		AuthorAvatarURL: client.AvatarURL,
		Rating:          req.Rating,
		Comment:         req.Comment,
		Date:            rc.clock(),
	}

	err := rc.transaction.Atomically(ctx, func(ctx context.Context) error {
		booking, err := rc.bookingRepo.Mutate(ctx, req.BookingID, func(booking *models.Booking) error {
			switch {
			case booking.ClientID != client.ID:
				return log.ErrorWithType(types.ErrForbidden, "You can only review your own bookings.", "bookingID", booking.ID)
			case req.CleanerID != "" && req.CleanerID != booking.CleanerID:
				return log.ErrorWithType(types.ErrValidation, "The cleaner does not match this booking.", "bookingID", booking.ID)
			case booking.Status != models.BookingStatusApproved:
				return log.ErrorWithType(types.ErrConflict, "Only approved bookings can be reviewed.", "bookingID", booking.ID)
			case booking.HasReview():
				return log.ErrorWithType(types.ErrConflict, "This booking has already been reviewed.", "bookingID", booking.ID)
			}
			booking.ReviewID = review.ID
			booking.UpdatedAt = review.Date
			return nil
		})
		if errors.Is(err, types.ErrNotFound) {
			return log.ErrorWithType(types.ErrNotFound, "Booking not found.", "bookingID", req.BookingID)
		}
		if err != nil {
			return err
		}

		review.CleanerID = booking.CleanerID
		if _, err := rc.reviewRepo.Create(ctx, review); err != nil {
			return log.Err("failed to create review", err, "bookingID", req.BookingID)
		}

		return rc.refreshRating(ctx, log, booking.CleanerID)
	})
	if err != nil {
		return models.Review{}, err
	}

	log.Info("Review created", "reviewID", review.ID, "bookingID", review.BookingID, "cleanerID", review.CleanerID)
	return review, nil
}

func (rc *ReviewsController) refreshRating(ctx context.Context, log logger.Logger, cleanerID string) error {
	reviews, err := rc.reviewRepo.ListByCleaner(ctx, cleanerID)
	if err != nil {
		return log.Err("failed to list cleaner reviews", err, "cleanerID", cleanerID)
	}

	_, err = rc.userRepo.Mutate(ctx, cleanerID, func(user *models.User) error {
		if !user.IsCleaner() {
			return nil
		}
		user.Rating = AverageRating(reviews)
		user.ReviewsCount = len(reviews)
		return nil
	})
	if errors.Is(err, types.ErrNotFound) {
		log.Warn("Reviewed cleaner no longer exists", "cleanerID", cleanerID)
		return nil
	}
	if err != nil {
		return log.Err("failed to update cleaner rating", err, "cleanerID", cleanerID)
	}
	return nil
}

// AverageRating is the mean rating rounded to one decimal place.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	return math.Round(float64(total)/float64(len(reviews))*10) / 10
}
