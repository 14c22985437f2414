package profileController

import (
	"context"
	"errors"

	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/types"
	"cleanconnect/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

// ClientProfileUpdate changes only the fields that are present.
type ClientProfileUpdate struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	AvatarURL  *string `json:"avatarUrl"`
	IDImageURL *string `json:"idImageUrl"`
}

// CleanerProfileUpdate ignores empty values, except companyName which may be cleared.
type CleanerProfileUpdate struct {
	Name                   string             `json:"name"`
	Bio                    string             `json:"bio"`
	State                  string             `json:"state"`
	City                   string             `json:"city"`
	CleanerType            models.CleanerType `json:"cleanerType"            validate:"omitempty,oneof=individual company"`
	CompanyName            *string            `json:"companyName"`
	Specialties            []string           `json:"specialties"`
	IDImageURL             string             `json:"idImageUrl"`
	WorkGallery            []string           `json:"workGallery"`
	CompanyRegistrationURL string             `json:"companyRegistrationUrl"`
}

type ProfileController struct {
	userRepo  repositories.UserRepository
	validator *utils.Validator
	log       logger.Logger
}

type ProfileControllerInterface interface {
	Get(ctx context.Context, user *models.User) (models.User, error)
	UpdateClient(ctx context.Context, user *models.User, req ClientProfileUpdate) (models.User, error)
	UpdateCleaner(ctx context.Context, user *models.User, req CleanerProfileUpdate) (models.User, error)
}

func New(repos repositories.Repository) ProfileControllerInterface {
	return &ProfileController{
		userRepo:  repos.User,
		validator: utils.NewValidator(),
		log:       logger.New("profileController"),
	}
}

func (pc *ProfileController) Get(ctx context.Context, user *models.User) (models.User, error) {
	log := pc.log.TraceFromContext(ctx).Function("Get")

	current, err := pc.userRepo.Get(ctx, user.ID)
	if errors.Is(err, types.ErrNotFound) {
		return models.User{}, log.ErrorWithType(types.ErrNotFound, "User not found", "userID", user.ID)
	}
	if err != nil {
		return models.User{}, log.Err("failed to load user", err, "userID", user.ID)
	}
	return current.Sanitized(), nil
}

func (pc *ProfileController) UpdateClient(
	ctx context.Context,
	user *models.User,
	req ClientProfileUpdate,
) (models.User, error) {
	log := pc.log.TraceFromContext(ctx).Function("UpdateClient")

	if req.Name != nil {
		*req.Name = utils.CleanText(*req.Name)
		if *req.Name == "" {
			return models.User{}, log.ErrorWithType(types.ErrValidation, "name is required")
		}
	}
	if req.Email != nil {
		*req.Email = utils.CleanText(*req.Email)
		if *req.Email == "" {
			return models.User{}, log.ErrorWithType(types.ErrValidation, "email is required")
		}
	}
	if err := pc.validator.Struct(req); err != nil {
		return models.User{}, log.ErrorWithType(types.ErrValidation, err.Error())
	}

	if req.Email != nil {
		existing, found, err := pc.userRepo.FindByEmail(ctx, *req.Email)
		if err != nil {
			return models.User{}, log.Err("failed to check email", err)
		}
		if found && existing.ID != user.ID {
			return models.User{}, log.ErrorWithType(types.ErrConflict, "User with this email already exists")
		}
	}

	updated, err := pc.userRepo.Mutate(ctx, user.ID, func(current *models.User) error {
		if req.Name != nil {
			current.Name = *req.Name
		}
		if req.Email != nil {
			current.Email = *req.Email
		}
		if req.AvatarURL != nil {
			current.AvatarURL = *req.AvatarURL
		}
		if req.IDImageURL != nil {
			current.IDImageURL = *req.IDImageURL
		}
		return nil
	})
	if errors.Is(err, types.ErrNotFound) {
		return models.User{}, log.ErrorWithType(types.ErrNotFound, "User not found", "userID", user.ID)
	}
	if err != nil {
		return models.User{}, log.Err("failed to update profile", err, "userID", user.ID)
	}

	return updated.Sanitized(), nil
}

func (pc *ProfileController) UpdateCleaner(
	ctx context.Context,
	user *models.User,
	req CleanerProfileUpdate,
) (models.User, error) {
	log := pc.log.TraceFromContext(ctx).Function("UpdateCleaner")

	if err := pc.validator.Struct(req); err != nil {
		return models.User{}, log.ErrorWithType(types.ErrValidation, err.Error())
	}

	updated, err := pc.userRepo.Mutate(ctx, user.ID, func(current *models.User) error {
		if !current.IsCleaner() {
			return log.ErrorWithType(types.ErrValidation, "Profile update failed: user is not a cleaner.", "userID", user.ID)
		}
		applyCleanerUpdate(current, req)
		return nil
	})
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return models.User{}, log.ErrorWithType(types.ErrNotFound, "Cleaner not found", "userID", user.ID)
		}
		return models.User{}, err
	}

	log.Info("Cleaner profile updated", "userID", updated.ID)
	return updated.Sanitized(), nil
}

func applyCleanerUpdate(user *models.User, req CleanerProfileUpdate) {
	if name := utils.CleanText(req.Name); name != "" {
		user.Name = name
	}
	if bio := utils.CleanText(req.Bio); bio != "" {
		user.Bio = bio
	}
	if req.State != "" {
		user.State = req.State
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.CleanerType != "" {
		user.CleanerType = req.CleanerType
	}
	if req.CompanyName != nil {
		user.CompanyName = utils.CleanText(*req.CompanyName)
	}
	if req.Specialties != nil {
		user.Specialties = req.Specialties
	}
	if req.IDImageURL != "" {
		user.IDImageURL = req.IDImageURL
	}
	if req.WorkGallery != nil {
		user.WorkGallery = req.WorkGallery
	}
	if req.CompanyRegistrationURL != "" {
		user.CompanyRegistrationURL = req.CompanyRegistrationURL
	}
	user.RebuildLocation()
}
