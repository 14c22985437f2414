package authController

import (
	"context"
	"net/url"
	"time"

	"cleanconnect/internal/models"
	"cleanconnect/internal/repositories"
	"cleanconnect/internal/services"
	"cleanconnect/internal/types"
	"cleanconnect/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name                   string             `json:"name"`
	Email                  string             `json:"email"                  validate:"omitempty,email"`
	Password               string             `json:"password"`
	Role                   models.Role        `json:"role"                   validate:"omitempty,oneof=client cleaner"`
	CleanerType            models.CleanerType `json:"cleanerType"            validate:"omitempty,oneof=individual company"`
	CompanyName            string             `json:"companyName"`
	Specialties            []string           `json:"specialties"`
	State                  string             `json:"state"`
	City                   string             `json:"city"`
	IDImageURL             string             `json:"idImageUrl"`
	WorkGallery            []string           `json:"workGallery"`
	CompanyRegistrationURL string             `json:"companyRegistrationUrl"`
	AvatarURL              string             `json:"avatarUrl"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the signed-in user with the bearer token to use next.
type AuthResponse struct {
	models.User
	Token string `json:"token"`
}

type AuthController struct {
	userRepo    repositories.UserRepository
	authService *services.AuthService
	clock       func() time.Time
	validator   *utils.Validator
	log         logger.Logger
}

type AuthControllerInterface interface {
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
}

func New(repos repositories.Repository, services services.Service) AuthControllerInterface {
	return &AuthController{
		userRepo:    repos.User,
		authService: services.Auth,
		clock:       services.Clock,
		validator:   utils.NewValidator(),
		log:         logger.New("authController"),
	}
}

func (ac *AuthController) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	log := ac.log.TraceFromContext(ctx).Function("Register")

	req.Name = utils.CleanText(req.Name)
	req.Email = utils.CleanText(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return AuthResponse{}, log.ErrorWithType(types.ErrValidation, "Name, email, and password are required")
	}

	if err := ac.validator.Struct(req); err != nil {
		return AuthResponse{}, log.ErrorWithType(types.ErrValidation, err.Error())
	}

	_, exists, err := ac.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return AuthResponse{}, log.Err("failed to check for existing user", err)
	}
	if exists {
		return AuthResponse{}, log.ErrorWithType(types.ErrConflict, "User with this email already exists")
	}

	passwordHash, err := ac.authService.HashPassword(req.Password)
	if err != nil {
		return AuthResponse{}, err
	}

	user := newUser(req, passwordHash, ac.clock())
	if _, err := ac.userRepo.Create(ctx, user); err != nil {
		return AuthResponse{}, log.Err("failed to create user", err, "email", req.Email)
	}

	log.Info("User registered", "userID", user.ID, "role", user.Role)
	return ac.respond(user)
}

func (ac *AuthController) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	log := ac.log.TraceFromContext(ctx).Function("Login")

	req.Email = utils.CleanText(req.Email)
	if req.Email == "" || req.Password == "" {
		return AuthResponse{}, log.ErrorWithType(types.ErrValidation, "Email and password are required")
	}

	user, found, err := ac.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return AuthResponse{}, log.Err("failed to look up user", err)
	}
	if !found || !ac.authService.CheckPassword(user.PasswordHash, req.Password) {
		return AuthResponse{}, log.ErrorWithType(types.ErrNotFound, "Invalid credentials")
	}

	return ac.respond(user)
}

func (ac *AuthController) respond(user models.User) (AuthResponse, error) {
	token, err := ac.authService.IssueToken(user)
	if err != nil {
		return AuthResponse{}, err
	}
	return AuthResponse{User: user.Sanitized(), Token: token}, nil
}

func newUser(req RegisterRequest, passwordHash string, now time.Time) models.User {
	role := req.Role
	if role == "" {
		role = models.RoleClient
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		AvatarURL:    req.AvatarURL,
		Role:         role,
		PasswordHash: passwordHash,
		IDImageURL:   req.IDImageURL,
		CreatedAt:    now,
	}

	if role != models.RoleCleaner {
		if user.AvatarURL == "" {
			user.AvatarURL = "https://api.dicebear.com/8.x/adventurer/svg?seed=" + url.QueryEscape(req.Name)
		}
		return user
	}

	if user.AvatarURL == "" {
		user.AvatarURL = "https://api.dicebear.com/8.x/lorelei/svg?seed=" + url.QueryEscape(req.Name)
	}

	cleanerType := req.CleanerType
	if cleanerType == "" {
		cleanerType = models.CleanerTypeIndividual
	}

	location := models.DefaultCleanerLocation
	if req.City != "" && req.State != "" {
		location = req.City + ", " + req.State
	}

	user.CleanerProfile = &models.CleanerProfile{
		Bio:                    models.DefaultCleanerBio,
		Location:               location,
		State:                  req.State,
		City:                   req.City,
		WorkGallery:            nonNil(req.WorkGallery),
		CleanerType:            cleanerType,
		CompanyName:            req.CompanyName,
		Specialties:            nonNil(req.Specialties),
		CompanyRegistrationURL: req.CompanyRegistrationURL,
	}
	return user
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
