package cleanersController

import (
	"context"
	"errors"
	"sort"
	"time"

	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/services"
	"cleanconnect/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
)

// DefaultStartingPrice is shown for cleaners that list no services yet.
var DefaultStartingPrice = decimal.NewFromInt(5000)

type ListQuery struct {
	Query       string
	State       string
	City        string
	Specialties []string
	Limit       int
}

type CleanerListing struct {
	models.User
	StartingPrice decimal.Decimal `json:"startingPrice"`
}

type CleanerDetail struct {
	models.User
	Services []models.Service `json:"services"`
	Reviews  []models.Review  `json:"reviews"`
}

type CleanersController struct {
	userRepo    repositories.UserRepository
	serviceRepo repositories.ServiceRepository
	reviewRepo  repositories.ReviewRepository
	clock       func() time.Time
	log         logger.Logger
}

type CleanersControllerInterface interface {
	List(ctx context.Context, query ListQuery) ([]CleanerListing, error)
	Get(ctx context.Context, id string) (CleanerDetail, error)
}

func New(repos repositories.Repository, services services.Service) CleanersControllerInterface {
	return &CleanersController{
		userRepo:    repos.User,
		serviceRepo: repos.Service,
		reviewRepo:  repos.Review,
		clock:       services.Clock,
		log:         logger.New("cleanersController"),
	}
}

func (cc *CleanersController) List(ctx context.Context, query ListQuery) ([]CleanerListing, error) {
	log := cc.log.TraceFromContext(ctx).Function("List")

	cleaners, err := cc.userRepo.ListCleaners(ctx)
	if err != nil {
		return nil, log.Err("failed to list cleaners", err)
	}

	matches := make([]models.User, 0, len(cleaners))
	for _, cleaner := range cleaners {
		if matchesQuery(cleaner, query) {
			matches = append(matches, cleaner)
		}
	}

	now := cc.clock()
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].IsFeatured(now) && !matches[j].IsFeatured(now)
	})

	if query.Limit > 0 && len(matches) > query.Limit {
		matches = matches[:query.Limit]
	}

	services, err := cc.serviceRepo.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list services", err)
	}
	startingPrices := make(map[string]decimal.Decimal)
	for _, service := range services {
		if _, seen := startingPrices[service.CleanerID]; !seen {
			startingPrices[service.CleanerID] = service.Price
		}
	}

	listings := make([]CleanerListing, 0, len(matches))
	for _, cleaner := range matches {
		price, ok := startingPrices[cleaner.ID]
		if !ok {
			price = DefaultStartingPrice
		}
		listings = append(listings, CleanerListing{User: cleaner.Sanitized(), StartingPrice: price})
	}

	return listings, nil
}

func (cc *CleanersController) Get(ctx context.Context, id string) (CleanerDetail, error) {
	log := cc.log.TraceFromContext(ctx).Function("Get")

	cleaner, err := cc.userRepo.Get(ctx, id)
	if errors.Is(err, types.ErrNotFound) || (err == nil && !cleaner.IsCleaner()) {
		return CleanerDetail{}, log.ErrorWithType(types.ErrNotFound, "Cleaner not found", "cleanerID", id)
	}
	if err != nil {
		return CleanerDetail{}, log.Err("failed to load cleaner", err, "cleanerID", id)
	}

	services, err := cc.serviceRepo.ListByCleaner(ctx, id)
	if err != nil {
		return CleanerDetail{}, log.Err("failed to list cleaner services", err, "cleanerID", id)
	}

	reviews, err := cc.reviewRepo.ListByCleaner(ctx, id)
	if err != nil {
		return CleanerDetail{}, log.Err("failed to list cleaner reviews", err, "cleanerID", id)
	}

	return CleanerDetail{
		User:     cleaner.Sanitized(),
		Services: services,
		Reviews:  reviews,
	}, nil
}

func matchesQuery(cleaner models.User, query ListQuery) bool {
	if !cleaner.HasSpecialties(query.Specialties) {
		return false
	}
	if query.State != "" && cleaner.State != query.State {
		return false
	}
	if query.City != "" && cleaner.City != query.City {
		return false
	}
	return cleaner.MatchesQuery(query.Query)
}
