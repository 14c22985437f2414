package bookingsController

import (
	"context"
	"errors"
	"time"

	"cleanconnect/internal/events"
	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/services"
	"cleanconnect/internal/types"
	"cleanconnect/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	CleanerID   string           `json:"cleanerId"`
	ServiceID   string           `json:"serviceId"`
	BookingDate string           `json:"bookingDate" validate:"omitempty,date"`
	Address     string           `json:"address"`
	TotalCost   *decimal.Decimal `json:"totalCost"`
}

type CleanerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ServiceSummary struct {
	Name string `json:"name"`
}

// ClientBooking is a booking as the client dashboard shows it.
type ClientBooking struct {
	models.Booking
	Cleaner CleanerSummary `json:"cleaner"`
	Service ServiceSummary `json:"service"`
}

type BookingsController struct {
	bookingRepo repositories.BookingRepository
	userRepo    repositories.UserRepository
	serviceRepo repositories.ServiceRepository
	eventBus    *events.EventBus
	clock       func() time.Time
	validator   *utils.Validator
	log         logger.Logger
}

type BookingsControllerInterface interface {
	Create(ctx context.Context, client *models.User, req CreateBookingRequest) (models.Booking, error)
	ListForClient(ctx context.Context, client *models.User) ([]ClientBooking, error)
	UpdateStatus(ctx context.Context, cleaner *models.User, bookingID string, status models.BookingStatus) (models.Booking, error)
	Approve(ctx context.Context, client *models.User, bookingID string) (models.Booking, error)
	Cancel(ctx context.Context, client *models.User, bookingID string) (models.Booking, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
) BookingsControllerInterface {
	return &BookingsController{
		bookingRepo: repos.Booking,
		userRepo:    repos.User,
		serviceRepo: repos.Service,
		eventBus:    eventBus,
		clock:       services.Clock,
		validator:   utils.NewValidator(),
		log:         logger.New("bookingsController"),
	}
}

func (bc *BookingsController) Create(
	ctx context.Context,
	client *models.User,
	req CreateBookingRequest,
) (models.Booking, error) {
	log := bc.log.TraceFromContext(ctx).Function("Create")

	if req.CleanerID == "" || req.ServiceID == "" || req.BookingDate == "" || req.Address == "" ||
		req.TotalCost == nil {
		return models.Booking{}, log.ErrorWithType(types.ErrValidation, "Missing required booking information.")
	}

	if client.Role != models.RoleClient {
		return models.Booking{}, log.ErrorWithType(types.ErrForbidden, "Only clients can book a cleaner.", "userID", client.ID)
	}

	if err := bc.validator.Struct(req); err != nil {
		return models.Booking{}, log.ErrorWithType(types.ErrValidation, err.Error())
	}
	if req.TotalCost.IsNegative() {
		return models.Booking{}, log.ErrorWithType(types.ErrValidation, "totalCost must not be negative")
	}

	service, err := bc.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return models.Booking{}, log.Err("failed to load service", err, "serviceID", req.ServiceID)
	}
	if err != nil || service.CleanerID != req.CleanerID {
		return models.Booking{}, log.ErrorWithType(
			types.ErrValidation,
			"The selected service is not offered by this cleaner.",
			"serviceID", req.ServiceID,
			"cleanerID", req.CleanerID,
		)
	}

	now := bc.clock()
	booking := models.Booking{
		ID:          uuid.NewString(),
		ClientID:    client.ID,
		CleanerID:   req.CleanerID,
		ServiceID:   req.ServiceID,
		BookingDate: req.BookingDate,
		Status:      models.BookingStatusPending,
		Address:     utils.CleanText(req.Address),
		TotalCost:   *req.TotalCost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := bc.bookingRepo.Create(ctx, booking); err != nil {
		return models.Booking{}, log.Err("failed to create booking", err)
	}

	log.Info("Booking created", "bookingID", booking.ID, "clientID", client.ID, "cleanerID", booking.CleanerID)
	bc.notify(log, booking)
	return booking, nil
}

func (bc *BookingsController) ListForClient(ctx context.Context, client *models.User) ([]ClientBooking, error) {
	log := bc.log.TraceFromContext(ctx).Function("ListForClient")

	bookings, err := bc.bookingRepo.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, log.Err("failed to list bookings", err, "clientID", client.ID)
	}

	users, err := bc.userRepo.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list users", err)
	}
	services, err := bc.serviceRepo.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list services", err)
	}

	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	serviceNames := make(map[string]string, len(services))
	for _, service := range services {
		serviceNames[service.ID] = service.Name
	}

	enriched := make([]ClientBooking, 0, len(bookings))
	for _, booking := range bookings {
		cleaner := CleanerSummary{ID: booking.CleanerID, Name: names[booking.CleanerID]}
		if cleaner.Name == "" {
			cleaner = CleanerSummary{Name: "Unknown Cleaner"}
		}

		serviceName, ok := serviceNames[booking.ServiceID]
		if !ok {
			serviceName = "Unknown Service"
		}

		enriched = append(enriched, ClientBooking{
			Booking: booking,
			Cleaner: cleaner,
			Service: ServiceSummary{Name: serviceName},
		})
	}

	return enriched, nil
}

// UpdateStatus applies a cleaner's decision. The completed alias is stored as
// awaiting_approval.
func (bc *BookingsController) UpdateStatus(
	ctx context.Context,
	cleaner *models.User,
	bookingID string,
	status models.BookingStatus,
) (models.Booking, error) {
	log := bc.log.TraceFromContext(ctx).Function("UpdateStatus")

	next := status.Normalize()
	if !next.IsCleanerSettable() {
		return models.Booking{}, log.ErrorWithType(types.ErrValidation, "Invalid status provided.", "status", status)
	}

	return bc.transition(ctx, log, bookingID, func(booking *models.Booking) error {
		if booking.CleanerID != cleaner.ID {
			return log.ErrorWithType(
				types.ErrForbidden,
				"You do not have permission to update this booking.",
				"bookingID", bookingID,
				"userID", cleaner.ID,
			)
		}
		if !booking.Status.CanTransitionTo(next) {
			return log.ErrorWithType(
				types.ErrConflict,
				"Cannot change a "+string(booking.Status)+" booking to "+string(next)+".",
				"bookingID", bookingID,
			)
		}
		booking.Status = next
		return nil
	})
}

func (bc *BookingsController) Approve(
	ctx context.Context,
	client *models.User,
	bookingID string,
) (models.Booking, error) {
	log := bc.log.TraceFromContext(ctx).Function("Approve")

	return bc.transition(ctx, log, bookingID, func(booking *models.Booking) error {
		if booking.ClientID != client.ID {
			return log.ErrorWithType(types.ErrForbidden, "Permission denied.", "bookingID", bookingID, "userID", client.ID)
		}
		if booking.Status != models.BookingStatusAwaitingApproval {
			return log.ErrorWithType(types.ErrConflict, "This booking is not awaiting approval.", "bookingID", bookingID)
		}
		booking.Status = models.BookingStatusApproved
		return nil
	})
}

func (bc *BookingsController) Cancel(
	ctx context.Context,
	client *models.User,
	bookingID string,
) (models.Booking, error) {
	log := bc.log.TraceFromContext(ctx).Function("Cancel")

	return bc.transition(ctx, log, bookingID, func(booking *models.Booking) error {
		if booking.ClientID != client.ID {
			return log.ErrorWithType(
				types.ErrForbidden,
				"You do not have permission to cancel this booking.",
				"bookingID", bookingID,
				"userID", client.ID,
			)
		}
		if !booking.Status.CanTransitionTo(models.BookingStatusCancelled) {
			return log.ErrorWithType(types.ErrConflict, "This booking can no longer be cancelled.", "bookingID", bookingID)
		}
		booking.Status = models.BookingStatusCancelled
		return nil
	})
}

// transition runs fn against the locked booking and notifies both parties on success.
func (bc *BookingsController) transition(
	ctx context.Context,
	log logger.Logger,
	bookingID string,
	fn repositories.MutateFunc[models.Booking],
) (models.Booking, error) {
	booking, err := bc.bookingRepo.Mutate(ctx, bookingID, func(booking *models.Booking) error {
		if err := fn(booking); err != nil {
			return err
		}
		booking.UpdatedAt = bc.clock()
		return nil
	})
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return models.Booking{}, log.ErrorWithType(types.ErrNotFound, "Booking not found.", "bookingID", bookingID)
		}
		return models.Booking{}, err
	}

	log.Info("Booking status changed", "bookingID", booking.ID, "status", booking.Status)
	bc.notify(log, booking)
	return booking, nil
}

func (bc *BookingsController) notify(log logger.Logger, booking models.Booking) {
	err := bc.eventBus.PublishNotification(
		events.BOOKING_STATUS,
		[]string{booking.ClientID, booking.CleanerID},
		map[string]any{
			"bookingId": booking.ID,
			"status":    string(booking.Status),
		},
	)
	if err != nil {
		log.Warn("failed to publish booking notification", "bookingID", booking.ID, "error", err)
	}
}
