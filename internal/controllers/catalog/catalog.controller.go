package catalogController

import (
	"context"
	"errors"

	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/types"
	"cleanconnect/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateServiceRequest struct {
	Name        string           `json:"name"        validate:"required"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"       validate:"required"`
	PriceUnit   models.PriceUnit `json:"priceUnit"   validate:"required,oneof=per_hour flat_rate"`
}

// UpdateServiceRequest changes only the fields that are present.
type UpdateServiceRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Price       *decimal.Decimal  `json:"price"`
	PriceUnit   *models.PriceUnit `json:"priceUnit"   validate:"omitempty,oneof=per_hour flat_rate"`
}

type DeleteResult struct {
	Message string `json:"message"`
}

type CatalogController struct {
	serviceRepo repositories.ServiceRepository
	validator   *utils.Validator
	log         logger.Logger
}

type CatalogControllerInterface interface {
	ListOwn(ctx context.Context, cleaner *models.User) ([]models.Service, error)
	Create(ctx context.Context, cleaner *models.User, req CreateServiceRequest) (models.Service, error)
	Update(ctx context.Context, cleaner *models.User, serviceID string, req UpdateServiceRequest) (models.Service, error)
	Delete(ctx context.Context, cleaner *models.User, serviceID string) (DeleteResult, error)
}

func New(repos repositories.Repository) CatalogControllerInterface {
	return &CatalogController{
		serviceRepo: repos.Service,
		validator:   utils.NewValidator(),
		log:         logger.New("catalogController"),
	}
}

func (cc *CatalogController) ListOwn(ctx context.Context, cleaner *models.User) ([]models.Service, error) {
	services, err := cc.serviceRepo.ListByCleaner(ctx, cleaner.ID)
	if err != nil {
		return nil, cc.log.TraceFromContext(ctx).Function("ListOwn").Err("failed to list services", err, "cleanerID", cleaner.ID)
	}
	return services, nil
}

func (cc *CatalogController) Create(
	ctx context.Context,
	cleaner *models.User,
	req CreateServiceRequest,
) (models.Service, error) {
	log := cc.log.TraceFromContext(ctx).Function("Create")

	if !cleaner.IsCleaner() {
		return models.Service{}, log.ErrorWithType(types.ErrForbidden, "Only cleaners can offer services.", "userID", cleaner.ID)
	}

	req.Name = utils.CleanText(req.Name)
	if err := cc.validator.Struct(req); err != nil {
		return models.Service{}, log.ErrorWithType(types.ErrValidation, err.Error())
	}
	if req.Price.IsNegative() {
		return models.Service{}, log.ErrorWithType(types.ErrValidation, "price must not be negative")
	}

	service := models.Service{
		ID:          uuid.NewString(),
		CleanerID:   cleaner.ID,
		Name:        req.Name,
		Description: utils.CleanText(req.Description),
		Price:       *req.Price,
		PriceUnit:   req.PriceUnit,
	}

	if _, err := cc.serviceRepo.Create(ctx, service); err != nil {
		return models.Service{}, log.Err("failed to create service", err, "cleanerID", cleaner.ID)
	}

	log.Info("Service created", "serviceID", service.ID, "cleanerID", cleaner.ID)
	return service, nil
}

func (cc *CatalogController) Update(
	ctx context.Context,
	cleaner *models.User,
	serviceID string,
	req UpdateServiceRequest,
) (models.Service, error) {
	log := cc.log.TraceFromContext(ctx).Function("Update")

	if err := cc.validator.Struct(req); err != nil {
		return models.Service{}, log.ErrorWithType(types.ErrValidation, err.Error())
	}
	if req.Name != nil && utils.CleanText(*req.Name) == "" {
		return models.Service{}, log.ErrorWithType(types.ErrValidation, "name is required")
	}
	if req.Price != nil && req.Price.IsNegative() {
		return models.Service{}, log.ErrorWithType(types.ErrValidation, "price must not be negative")
	}

	notOwned := func() error {
		return log.ErrorWithType(
			types.ErrNotFound,
			"Service not found or you do not have permission to edit it.",
			"serviceID", serviceID,
			"userID", cleaner.ID,
		)
	}

	service, err := cc.serviceRepo.Mutate(ctx, serviceID, func(service *models.Service) error {
		if service.CleanerID != cleaner.ID {
			return notOwned()
		}
		if req.Name != nil {
			service.Name = utils.CleanText(*req.Name)
		}
		if req.Description != nil {
			service.Description = utils.CleanText(*req.Description)
		}
		if req.Price != nil {
			service.Price = *req.Price
		}
		if req.PriceUnit != nil {
			service.PriceUnit = *req.PriceUnit
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return models.Service{}, notOwned()
		}
		return models.Service{}, err
	}

	return service, nil
}

func (cc *CatalogController) Delete(
	ctx context.Context,
	cleaner *models.User,
	serviceID string,
) (DeleteResult, error) {
	log := cc.log.TraceFromContext(ctx).Function("Delete")

	notOwned := func() error {
		return log.ErrorWithType(
			types.ErrNotFound,
			"Service not found or you do not have permission to delete it.",
			"serviceID", serviceID,
			"userID", cleaner.ID,
		)
	}

	service, err := cc.serviceRepo.Get(ctx, serviceID)
	if errors.Is(err, types.ErrNotFound) {
		return DeleteResult{}, notOwned()
	}
	if err != nil {
		return DeleteResult{}, log.Err("failed to load service", err, "serviceID", serviceID)
	}
	if service.CleanerID != cleaner.ID {
		return DeleteResult{}, notOwned()
	}

	if err := cc.serviceRepo.Delete(ctx, serviceID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return DeleteResult{}, notOwned()
		}
		return DeleteResult{}, log.Err("failed to delete service", err, "serviceID", serviceID)
	}

	log.Info("Service deleted", "serviceID", serviceID, "cleanerID", cleaner.ID)
	return DeleteResult{Message: "Service deleted successfully"}, nil
}
