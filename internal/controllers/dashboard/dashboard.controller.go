package dashboardController

import (
	"context"
	"errors"
	"time"

	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/services"
	"cleanconnect/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
)

// NewClientWindow is how far back a booking counts toward newClients.
const NewClientWindow = 30 * 24 * time.Hour

type CleanerStats struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	CompletedBookings int             `json:"completedBookings"`
	Rating            float64         `json:"rating"`
	ReviewsCount      int             `json:"reviewsCount"`
	NewClients        int             `json:"newClients"`
}

type ClientSummary struct {
	Name string `json:"name"`
}

type ServiceSummary struct {
	Name string `json:"name"`
}

// CleanerBooking is a booking as the cleaner dashboard shows it.
type CleanerBooking struct {
	models.Booking
	Client  ClientSummary  `json:"client"`
	Service ServiceSummary `json:"service"`
}

type DashboardController struct {
	userRepo    repositories.UserRepository
	bookingRepo repositories.BookingRepository
	serviceRepo repositories.ServiceRepository
	clock       func() time.Time
	log         logger.Logger
}

type DashboardControllerInterface interface {
	CleanerStats(ctx context.Context, cleaner *models.User) (CleanerStats, error)
	CleanerBookings(ctx context.Context, cleaner *models.User) ([]CleanerBooking, error)
}

func New(repos repositories.Repository, services services.Service) DashboardControllerInterface {
	return &DashboardController{
		userRepo:    repos.User,
		bookingRepo: repos.Booking,
		serviceRepo: repos.Service,
		clock:       services.Clock,
		log:         logger.New("dashboardController"),
	}
}

func (dc *DashboardController) CleanerStats(ctx context.Context, cleaner *models.User) (CleanerStats, error) {
	log := dc.log.TraceFromContext(ctx).Function("CleanerStats")

	current, err := dc.userRepo.Get(ctx, cleaner.ID)
	if errors.Is(err, types.ErrNotFound) || (err == nil && !current.IsCleaner()) {
		return CleanerStats{}, log.ErrorWithType(types.ErrNotFound, "Cleaner not found", "userID", cleaner.ID)
	}
	if err != nil {
		return CleanerStats{}, log.Err("failed to load cleaner", err, "userID", cleaner.ID)
	}

	bookings, err := dc.bookingRepo.ListByCleaner(ctx, cleaner.ID)
	if err != nil {
		return CleanerStats{}, log.Err("failed to list bookings", err, "cleanerID", cleaner.ID)
	}

	return computeStats(current, bookings, dc.clock()), nil
}

func computeStats(cleaner models.User, bookings []models.Booking, now time.Time) CleanerStats {
	stats := CleanerStats{
		TotalRevenue: decimal.Zero,
		Rating:       cleaner.Rating,
		ReviewsCount: cleaner.ReviewsCount,
	}

	since := now.Add(-NewClientWindow)
	recentClients := make(map[string]struct{})
	for _, booking := range bookings {
		if booking.Status == models.BookingStatusApproved {
			stats.TotalRevenue = stats.TotalRevenue.Add(booking.TotalCost)
			stats.CompletedBookings++
		}
		if !booking.CreatedAt.Before(since) {
			recentClients[booking.ClientID] = struct{}{}
		}
	}
	stats.NewClients = len(recentClients)

	return stats
}

func (dc *DashboardController) CleanerBookings(ctx context.Context, cleaner *models.User) ([]CleanerBooking, error) {
	log := dc.log.TraceFromContext(ctx).Function("CleanerBookings")

	bookings, err := dc.bookingRepo.ListByCleaner(ctx, cleaner.ID)
	if err != nil {
		return nil, log.Err("failed to list bookings", err, "cleanerID", cleaner.ID)
	}

	users, err := dc.userRepo.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list users", err)
	}
	services, err := dc.serviceRepo.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list services", err)
	}

	clientNames := make(map[string]string, len(users))
	for _, user := range users {
		clientNames[user.ID] = user.Name
	}
	serviceNames := make(map[string]string, len(services))
	for _, service := range services {
		serviceNames[service.ID] = service.Name
	}

	enriched := make([]CleanerBooking, 0, len(bookings))
	for _, booking := range bookings {
		clientName := clientNames[booking.ClientID]
		if clientName == "" {
			clientName = "Unknown Client"
		}
		serviceName, ok := serviceNames[booking.ServiceID]
		if !ok {
			serviceName = "Unknown Service"
		}

		enriched = append(enriched, CleanerBooking{
			Booking: booking,
			Client:  ClientSummary{Name: clientName},
			Service: ServiceSummary{Name: serviceName},
		})
	}

	return enriched, nil
}
